package dto

import (
	"time"

	"github.com/kaanyildiz/assignflow/internal/app/models"
)

// NotificationResponse is one dashboard notification row
type NotificationResponse struct {
	ID           int64                   `json:"id"`
	AssignmentID int64                   `json:"assignmentId"`
	Message      string                  `json:"message"`
	Type         models.NotificationType `json:"type" example:"ASSIGNMENT_REJECTED"`
	Read         bool                    `json:"read"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// NewNotificationResponse converts a Notification model to its response DTO
func NewNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		AssignmentID: n.AssignmentID,
		Message:      n.Message,
		Type:         n.Type,
		Read:         n.Read,
		CreatedAt:    n.CreatedAt,
	}
}

// UnreadCountResponse carries the unread notification count
type UnreadCountResponse struct {
	Count int64 `json:"count" example:"3"`
}
