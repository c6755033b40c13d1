package handlers

import (
	"github.com/mesametamaarkhan/theekkardo/internal/services"
	"github.com/mesametamaarkhan/theekkardo/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Requests      *RequestHandler
	Bids          *BidHandler
	Notifications *NotificationHandler
	Catalog       *CatalogHandler
	Reviews       *ReviewHandler
}

func NewAppHandlers(svcs *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		Requests:      NewRequestHandler(base, svcs.RequestService),
		Bids:          NewBidHandler(base, svcs.BidService),
		Notifications: NewNotificationHandler(base, svcs.NotificationService),
		Catalog:       NewCatalogHandler(base, svcs.CatalogService),
		Reviews:       NewReviewHandler(base, svcs.ReviewService),
	}
}
