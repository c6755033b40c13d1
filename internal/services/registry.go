package services

// ServiceContainer bundles every service for wiring in app and tests.
type ServiceContainer struct {
	RequestService      RequestService
	BidService          BidService
	NotificationService NotificationService
	CatalogService      CatalogService
	ReviewService       ReviewService
}
