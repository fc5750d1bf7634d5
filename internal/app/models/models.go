package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent   RoleType = "STUDENT"
	RoleProfessor RoleType = "PROFESSOR"
	RoleHOD       RoleType = "HOD"
	RoleAdmin     RoleType = "ADMIN"
)

// Valid reports whether the role is a known role.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleHOD, RoleAdmin:
		return true
	}
	return false
}

// IsReviewer reports whether the role can be assigned assignments for review.
func (r RoleType) IsReviewer() bool {
	return r == RoleProfessor || r == RoleHOD
}

// AssignmentCategory defines the kind of work being submitted
type AssignmentCategory string

const (
	CategoryAssignment AssignmentCategory = "ASSIGNMENT"
	CategoryThesis     AssignmentCategory = "THESIS"
	CategoryReport     AssignmentCategory = "REPORT"
)

// Valid reports whether the category is a known category.
func (c AssignmentCategory) Valid() bool {
	switch c {
	case CategoryAssignment, CategoryThesis, CategoryReport:
		return true
	}
	return false
}

// AssignmentStatus is the closed set of lifecycle states. Only these values
// ever reach the transition logic or the database.
type AssignmentStatus string

const (
	StatusDraft     AssignmentStatus = "DRAFT"
	StatusSubmitted AssignmentStatus = "SUBMITTED"
	StatusForwarded AssignmentStatus = "FORWARDED"
	StatusApproved  AssignmentStatus = "APPROVED"
	StatusRejected  AssignmentStatus = "REJECTED"
)

// Valid reports whether the status is a known lifecycle state.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusForwarded, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// UnderReview reports whether the assignment currently has an active reviewer.
func (s AssignmentStatus) UnderReview() bool {
	return s == StatusSubmitted || s == StatusForwarded
}

// Label returns the human-readable label for the status.
func (s AssignmentStatus) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusSubmitted:
		return "Awaiting Review"
	case StatusForwarded:
		return "Forwarded"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}

// Color returns the presentation color key for the status.
func (s AssignmentStatus) Color() string {
	switch s {
	case StatusDraft:
		return "gray"
	case StatusSubmitted:
		return "blue"
	case StatusForwarded:
		return "purple"
	case StatusApproved:
		return "green"
	case StatusRejected:
		return "red"
	}
	return "gray"
}

// HistoryAction is the action recorded in an assignment history entry
type HistoryAction string

const (
	ActionSubmitted HistoryAction = "SUBMITTED"
	ActionApproved  HistoryAction = "APPROVED"
	ActionRejected  HistoryAction = "REJECTED"
	ActionForwarded HistoryAction = "FORWARDED"
)

// NotificationType categorizes dashboard notifications
type NotificationType string

const (
	NotificationSubmitted NotificationType = "ASSIGNMENT_SUBMITTED"
	NotificationApproved  NotificationType = "ASSIGNMENT_APPROVED"
	NotificationRejected  NotificationType = "ASSIGNMENT_REJECTED"
	NotificationForwarded NotificationType = "ASSIGNMENT_FORWARDED"
)
