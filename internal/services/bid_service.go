package services

import (
	"context"

	"github.com/mesametamaarkhan/theekkardo/internal/apperrors"
	"github.com/mesametamaarkhan/theekkardo/internal/logger"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/repositories"
	"github.com/mesametamaarkhan/theekkardo/internal/services/dto"
)

// BidService is the bidding engine: competing bids against an open
// request and the single-winner resolution.
type BidService interface {
	PlaceBid(ctx context.Context, mechanicID string, req *dto.PlaceBidRequest) (*models.Bid, error)
	AcceptBid(ctx context.Context, actor dto.Actor, bidID string) (*models.ServiceRequest, error)
	ListBidsForRequest(ctx context.Context, serviceRequestID string) (*dto.RequestBids, error)
}

type bidService struct {
	bidRepo     repositories.BidRepository
	requestRepo repositories.RequestRepository
	userRepo    repositories.UserRepository
	serviceRepo repositories.ServiceRepository
	notifier    NotificationService
}

func NewBidService(
	bidRepo repositories.BidRepository,
	requestRepo repositories.RequestRepository,
	userRepo repositories.UserRepository,
	serviceRepo repositories.ServiceRepository,
	notifier NotificationService,
) BidService {
	return &bidService{
		bidRepo:     bidRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		serviceRepo: serviceRepo,
		notifier:    notifier,
	}
}

func (s *bidService) PlaceBid(ctx context.Context, mechanicID string, req *dto.PlaceBidRequest) (*models.Bid, error) {
	if req.BidAmount <= 0 {
		return nil, apperrors.NewBadRequestError("Bid amount must be positive")
	}

	request, err := s.requestRepo.FindByID(ctx, req.ServiceRequestID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	mechanic, err := s.userRepo.FindByID(ctx, mechanicID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Mechanic")
		}
		return nil, apperrors.InternalError(err)
	}

	bid := &models.Bid{
		ServiceRequestID: req.ServiceRequestID,
		MechanicID:       mechanicID,
		BidAmount:        req.BidAmount,
		Message:          req.Message,
		Status:           models.BidStatusPending,
	}

	if err := s.bidRepo.Create(ctx, bid); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.notifier.NotifyBidReceived(ctx, request, bid, mechanic); err != nil {
		logger.CtxWithError(ctx, "bid received notification failed", err, "bid_id", bid.ID)
	}

	return bid, nil
}

func (s *bidService) AcceptBid(ctx context.Context, actor dto.Actor, bidID string) (*models.ServiceRequest, error) {
	bid, err := s.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrBidNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	request, err := s.requestRepo.FindByID(ctx, bid.ServiceRequestID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Only the request owner (or an admin) decides the winner.
	if !actor.IsAdmin() && actor.ID != request.UserID {
		return nil, apperrors.ErrForbidden
	}

	if err := s.bidRepo.ResolveAcceptance(ctx, bid); err != nil {
		if apperrors.Is(err, repositories.ErrBidConflict) {
			return nil, apperrors.ErrBidConflict
		}
		return nil, apperrors.InternalError(err)
	}

	request.MechanicID = &bid.MechanicID
	request.FinalPrice = &bid.BidAmount
	request.Status = models.RequestStatusAccepted
	bid.Status = models.BidStatusAccepted

	if err := s.notifier.NotifyBidAccepted(ctx, request, bid); err != nil {
		logger.CtxWithError(ctx, "bid accepted notification failed", err, "bid_id", bid.ID)
	}

	return request, nil
}

func (s *bidService) ListBidsForRequest(ctx context.Context, serviceRequestID string) (*dto.RequestBids, error) {
	request, err := s.requestRepo.FindByID(ctx, serviceRequestID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	bids, err := s.bidRepo.ListByRequest(ctx, serviceRequestID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := &dto.RequestBids{
		Bids:           make([]dto.BidWithMechanic, 0, len(bids)),
		ServiceRequest: buildRequestDetail(ctx, request, s.userRepo, s.serviceRepo),
	}

	for i := range bids {
		bid := &bids[i]
		entry := dto.BidWithMechanic{Bid: bid}
		if mechanic, err := s.userRepo.FindByID(ctx, bid.MechanicID); err == nil {
			entry.Mechanic = &dto.BidderProfile{
				ID:           mechanic.ID,
				FullName:     mechanic.FullName,
				Rating:       mechanic.Rating,
				ProfileImage: mechanic.ProfileImage,
				Verified:     mechanic.Verified,
			}
		} else if !isNotFound(err) {
			logger.CtxWarn(ctx, "failed to load bidder projection", "bid_id", bid.ID, "error", err.Error())
		}
		result.Bids = append(result.Bids, entry)
	}

	return result, nil
}
