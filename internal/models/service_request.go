package models

import "time"

// ServiceRequest is the central record of the marketplace: a vehicle
// owner asking for help, moving through
// pending -> accepted -> in-progress -> completed (or canceled).
//
// MechanicID and FinalPrice are set together, exactly once, by bid
// acceptance. A request with one set and the other empty is corrupt.
type ServiceRequest struct {
	BaseModel
	UserID           string          `gorm:"type:uuid;not null;index" json:"userId"`
	MechanicID       *string         `gorm:"type:uuid;index" json:"mechanicId,omitempty"`
	ServiceID        string          `gorm:"type:uuid;not null" json:"serviceId"`
	Vehicle          Vehicle         `gorm:"embedded;embeddedPrefix:vehicle_" json:"vehicle"`
	Location         GeoPoint        `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	IssueDescription string          `gorm:"not null" json:"issueDescription"`
	PreferredTime    time.Time       `gorm:"not null" json:"preferredTime"`
	Status           RequestStatus   `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	EstimatedPrice   *float64        `json:"estimatedPrice,omitempty"`
	FinalPrice       *float64        `json:"finalPrice,omitempty"`
	IsEmergency      bool            `gorm:"default:false;index" json:"isEmergency"`
	Priority         RequestPriority `gorm:"type:varchar(10);default:'medium'" json:"priority"`
}

// Bid is a mechanic's offer against an open service request. For any
// request at most one bid is ever accepted; accepting one rejects all
// of its siblings in the same transaction.
type Bid struct {
	BaseModel
	ServiceRequestID string    `gorm:"type:uuid;not null;index" json:"serviceRequestId"`
	MechanicID       string    `gorm:"type:uuid;not null;index" json:"mechanicId"`
	BidAmount        float64   `gorm:"not null" json:"bidAmount"`
	Message          string    `json:"message,omitempty"`
	Status           BidStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}
