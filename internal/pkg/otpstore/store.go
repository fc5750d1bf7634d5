// Package otpstore provides a keyed, TTL-based store for pending approval
// codes. The default backend keeps codes in process memory; a Redis backend
// is available for deployments with more than one API instance.
package otpstore

import (
	"context"
	"fmt"
	"time"
)

// Key identifies a pending approval: one code per (assignment, approver) pair.
type Key struct {
	AssignmentID int64
	ApproverID   int64
}

func (k Key) String() string {
	return fmt.Sprintf("approval-otp:%d:%d", k.AssignmentID, k.ApproverID)
}

// Entry is a pending approval code together with the remark and signature
// supplied when the code was requested.
type Entry struct {
	Code      string    `json:"code"`
	Remark    string    `json:"remark"`
	Signature string    `json:"signature"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the entry's TTL has elapsed.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Store is a keyed TTL store for pending approval codes.
// Get returns (nil, nil) when no live entry exists for the key; callers treat
// a missing entry the same as an expired one.
type Store interface {
	Put(ctx context.Context, key Key, entry Entry) error
	Get(ctx context.Context, key Key) (*Entry, error)
	Delete(ctx context.Context, key Key) error
}
