package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification event types. Each lifecycle/bid transition emits exactly
// one of these per recipient.
const (
	NotificationTypeServiceRequest   = "service_request"
	NotificationTypeBidReceived      = "bid_received"
	NotificationTypeBidAccepted      = "bid_accepted"
	NotificationTypeServiceStarted   = "service_started"
	NotificationTypeServiceCompleted = "service_completed"
)

type Notification struct {
	BaseModel
	RecipientID string         `gorm:"type:uuid;not null;index" json:"recipientId"`
	Type        string         `gorm:"not null" json:"type"`
	Title       string         `gorm:"not null" json:"title"`
	Body        string         `json:"body"`
	Data        datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // deep-link payload, e.g. {"serviceRequestId": "..."}
	IsRead      bool           `gorm:"default:false" json:"isRead"`
	ReadAt      *time.Time     `json:"readAt,omitempty"`
}
