package models

import (
	"time"
)

// Notification is a per-user dashboard row written alongside each lifecycle
// transition. It is only ever mutated by marking it read.
type Notification struct {
	ID           int64            `json:"id" db:"id"`
	UserID       int64            `json:"userId" db:"user_id"`
	AssignmentID int64            `json:"assignmentId" db:"assignment_id"`
	Message      string           `json:"message" db:"message"`
	Type         NotificationType `json:"type" db:"type"`
	Read         bool             `json:"read" db:"read"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
}
