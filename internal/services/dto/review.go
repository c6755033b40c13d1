package dto

import "github.com/mesametamaarkhan/theekkardo/internal/models"

type SubmitReviewRequest struct {
	ServiceRequestID string `json:"serviceRequestId" validate:"required"`
	MechanicID       string `json:"mechanicId" validate:"required"`
	Rating           int    `json:"rating" validate:"required,min=1,max=5"`
	Comment          string `json:"review" validate:"required,max=2000"`
}

// ReviewParty is the name-only projection attached to a review, for
// both the reviewer and the reviewed mechanic.
type ReviewParty struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

type ReviewWithParties struct {
	*models.Review
	Reviewer *ReviewParty `json:"user,omitempty"`
	Mechanic *ReviewParty `json:"mechanic,omitempty"`
}
