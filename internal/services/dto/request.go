package dto

import (
	"time"

	"github.com/mesametamaarkhan/theekkardo/internal/models"
)

// --- Request payloads ---

type VehiclePayload struct {
	Make        string `json:"make" validate:"required"`
	Model       string `json:"model" validate:"required"`
	Year        int    `json:"year" validate:"required,min=1950"`
	PlateNumber string `json:"plateNumber" validate:"required"`
}

type LocationPayload struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

type CreateRequestRequest struct {
	ServiceID        string          `json:"serviceId" validate:"required"`
	Vehicle          VehiclePayload  `json:"vehicle" validate:"required"`
	Location         LocationPayload `json:"location" validate:"required"`
	IssueDescription string          `json:"issueDescription" validate:"required,max=2000"`
	PreferredTime    time.Time       `json:"preferredTime" validate:"required"`
	EstimatedPrice   *float64        `json:"estimatedPrice,omitempty" validate:"omitempty,gt=0"`
}

type CreateEmergencyRequest struct {
	CreateRequestRequest
	Priority models.RequestPriority `json:"priority" validate:"required,oneof=low medium high"`
}

type UpdateStatusRequest struct {
	Status models.RequestStatus `json:"status" validate:"required"`
}

// --- Responses ---

// RequestDetail is the full request view with display projections for
// the owner, the assigned mechanic and the requested service.
type RequestDetail struct {
	*models.ServiceRequest
	Owner    *models.UserProfile `json:"owner,omitempty"`
	Mechanic *models.UserProfile `json:"mechanic,omitempty"`
	Service  *models.Service     `json:"service,omitempty"`
}
