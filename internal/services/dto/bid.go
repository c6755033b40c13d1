package dto

import "github.com/mesametamaarkhan/theekkardo/internal/models"

type PlaceBidRequest struct {
	ServiceRequestID string  `json:"serviceRequestId" validate:"required"`
	BidAmount        float64 `json:"bidAmount" validate:"required,gt=0"`
	Message          string  `json:"message" validate:"omitempty,max=1000"`
}

// BidderProfile is the subset of mechanic fields shown next to a bid.
type BidderProfile struct {
	ID           string  `json:"id"`
	FullName     string  `json:"fullName"`
	Rating       float64 `json:"rating"`
	ProfileImage string  `json:"profileImage,omitempty"`
	Verified     bool    `json:"verified"`
}

type BidWithMechanic struct {
	*models.Bid
	Mechanic *BidderProfile `json:"mechanic,omitempty"`
}

// RequestBids is the combined view returned for a request's bid board.
type RequestBids struct {
	Bids           []BidWithMechanic `json:"bids"`
	ServiceRequest *RequestDetail    `json:"serviceRequest"`
}
