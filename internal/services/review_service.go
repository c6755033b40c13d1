package services

import (
	"context"

	"github.com/mesametamaarkhan/theekkardo/internal/apperrors"
	"github.com/mesametamaarkhan/theekkardo/internal/logger"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/repositories"
	"github.com/mesametamaarkhan/theekkardo/internal/services/dto"
)

// ReviewService owns post-service reviews: submission, per-party
// listings and owner-only deletion. Ratings are stored as written;
// nothing here recomputes User.Rating.
type ReviewService interface {
	Submit(ctx context.Context, userID string, req *dto.SubmitReviewRequest) (*models.Review, error)
	GetByID(ctx context.Context, id string) (*dto.ReviewWithParties, error)
	ListByMechanic(ctx context.Context, mechanicID string) ([]dto.ReviewWithParties, error)
	ListByUser(ctx context.Context, userID string) ([]dto.ReviewWithParties, error)
	Delete(ctx context.Context, actor dto.Actor, id string) error
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	requestRepo repositories.RequestRepository
	userRepo    repositories.UserRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	requestRepo repositories.RequestRepository,
	userRepo repositories.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

func (s *reviewService) Submit(ctx context.Context, userID string, req *dto.SubmitReviewRequest) (*models.Review, error) {
	if _, err := s.requestRepo.FindByID(ctx, req.ServiceRequestID); err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.userRepo.FindByID(ctx, req.MechanicID); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Mechanic")
		}
		return nil, apperrors.InternalError(err)
	}

	review := &models.Review{
		ServiceRequestID: req.ServiceRequestID,
		UserID:           userID,
		MechanicID:       req.MechanicID,
		Rating:           req.Rating,
		Comment:          req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return review, nil
}

func (s *reviewService) GetByID(ctx context.Context, id string) (*dto.ReviewWithParties, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	detail := s.withParties(ctx, review)
	return &detail, nil
}

func (s *reviewService) ListByMechanic(ctx context.Context, mechanicID string) ([]dto.ReviewWithParties, error) {
	reviews, err := s.reviewRepo.ListByMechanic(ctx, mechanicID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(reviews) == 0 {
		return nil, apperrors.NewNotFoundError("No reviews found")
	}
	return s.withPartiesAll(ctx, reviews), nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID string) ([]dto.ReviewWithParties, error) {
	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(reviews) == 0 {
		return nil, apperrors.NewNotFoundError("No reviews found")
	}
	return s.withPartiesAll(ctx, reviews), nil
}

// Delete removes a review. Only its author may delete it.
func (s *reviewService) Delete(ctx context.Context, actor dto.Actor, id string) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return apperrors.ErrReviewNotFound
		}
		return apperrors.InternalError(err)
	}
	if review.UserID != actor.ID {
		return apperrors.ErrForbidden
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *reviewService) withPartiesAll(ctx context.Context, reviews []models.Review) []dto.ReviewWithParties {
	out := make([]dto.ReviewWithParties, 0, len(reviews))
	for i := range reviews {
		out = append(out, s.withParties(ctx, &reviews[i]))
	}
	return out
}

// withParties attaches name projections for reviewer and mechanic. A
// dangling reference degrades to a nil projection, as elsewhere.
func (s *reviewService) withParties(ctx context.Context, review *models.Review) dto.ReviewWithParties {
	detail := dto.ReviewWithParties{Review: review}

	if user, err := s.userRepo.FindByID(ctx, review.UserID); err == nil {
		detail.Reviewer = &dto.ReviewParty{ID: user.ID, FullName: user.FullName}
	} else if !isNotFound(err) {
		logger.CtxWarn(ctx, "failed to load reviewer projection", "review_id", review.ID, "error", err.Error())
	}

	if mechanic, err := s.userRepo.FindByID(ctx, review.MechanicID); err == nil {
		detail.Mechanic = &dto.ReviewParty{ID: mechanic.ID, FullName: mechanic.FullName}
	} else if !isNotFound(err) {
		logger.CtxWarn(ctx, "failed to load mechanic projection", "review_id", review.ID, "error", err.Error())
	}

	return detail
}
