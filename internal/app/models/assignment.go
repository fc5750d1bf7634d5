package models

import (
	"time"
)

// Assignment defines the assignment model based on the 'assignments' table.
// StudentID is the immutable owner; ReviewerID is the current assignee and is
// set exactly while the status is SUBMITTED or FORWARDED.
type Assignment struct {
	ID          int64              `json:"id" db:"id" example:"7"`
	Title       string             `json:"title" db:"title" example:"Graph Coloring Survey"`
	Description string             `json:"description" db:"description"`
	Category    AssignmentCategory `json:"category" db:"category" example:"THESIS"`
	Status      AssignmentStatus   `json:"status" db:"status" example:"SUBMITTED"`
	FilePath    string             `json:"filePath,omitempty" db:"file_path"`
	StudentID   int64              `json:"studentId" db:"student_id"`
	ReviewerID  *int64             `json:"reviewerId,omitempty" db:"reviewer_id"`
	CreatedAt   time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" db:"updated_at"`
	SubmittedAt *time.Time         `json:"submittedAt,omitempty" db:"submitted_at"`

	Student  *User                `json:"student,omitempty"`  // relation, no db tag
	Reviewer *User                `json:"reviewer,omitempty"` // relation, no db tag
	History  []*AssignmentHistory `json:"history,omitempty"`  // relation, no db tag
}

// AssignedTo reports whether the given user is the assignment's current reviewer.
func (a *Assignment) AssignedTo(userID int64) bool {
	return a.ReviewerID != nil && *a.ReviewerID == userID
}

// AssignmentHistory is one entry of the append-only transition log.
// Entries are never mutated or deleted; exactly one is written per transition.
type AssignmentHistory struct {
	ID           int64         `json:"id" db:"id"`
	AssignmentID int64         `json:"assignmentId" db:"assignment_id"`
	ReviewerID   int64         `json:"reviewerId" db:"reviewer_id"` // the acting user
	Action       HistoryAction `json:"action" db:"action"`
	Remark       *string       `json:"remark,omitempty" db:"remark"`
	Signature    *string       `json:"-" db:"signature"` // hashed, excluded from JSON
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`

	Reviewer *User `json:"reviewer,omitempty"` // relation, no db tag
}
