package services

import (
	"context"

	"github.com/mesametamaarkhan/theekkardo/internal/apperrors"
	"github.com/mesametamaarkhan/theekkardo/internal/logger"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/repositories"
	"github.com/mesametamaarkhan/theekkardo/internal/services/dto"
)

// RequestService owns the service-request lifecycle: creation, the
// status state machine and the list/detail reads.
type RequestService interface {
	Create(ctx context.Context, ownerID string, req *dto.CreateRequestRequest) (*models.ServiceRequest, error)
	CreateEmergency(ctx context.Context, ownerID string, req *dto.CreateEmergencyRequest) (*models.ServiceRequest, error)
	UpdateStatus(ctx context.Context, actor dto.Actor, requestID string, newStatus models.RequestStatus) (*models.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (*dto.RequestDetail, error)
	ListPending(ctx context.Context) ([]models.ServiceRequest, error)
	ListAll(ctx context.Context) ([]models.ServiceRequest, error)
	ListByUser(ctx context.Context, userID string) ([]models.ServiceRequest, error)
	ListByMechanic(ctx context.Context, mechanicID string) ([]models.ServiceRequest, error)
	ListEmergency(ctx context.Context, pendingOnly bool) ([]models.ServiceRequest, error)
}

type requestService struct {
	requestRepo repositories.RequestRepository
	userRepo    repositories.UserRepository
	serviceRepo repositories.ServiceRepository
	notifier    NotificationService
}

func NewRequestService(
	requestRepo repositories.RequestRepository,
	userRepo repositories.UserRepository,
	serviceRepo repositories.ServiceRepository,
	notifier NotificationService,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		serviceRepo: serviceRepo,
		notifier:    notifier,
	}
}

func (s *requestService) Create(ctx context.Context, ownerID string, req *dto.CreateRequestRequest) (*models.ServiceRequest, error) {
	return s.create(ctx, ownerID, req, false, models.PriorityMedium)
}

func (s *requestService) CreateEmergency(ctx context.Context, ownerID string, req *dto.CreateEmergencyRequest) (*models.ServiceRequest, error) {
	return s.create(ctx, ownerID, &req.CreateRequestRequest, true, req.Priority)
}

func (s *requestService) create(ctx context.Context, ownerID string, req *dto.CreateRequestRequest, emergency bool, priority models.RequestPriority) (*models.ServiceRequest, error) {
	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.InternalError(err)
	}

	request := &models.ServiceRequest{
		UserID:    ownerID,
		ServiceID: req.ServiceID,
		Vehicle: models.Vehicle{
			Make:        req.Vehicle.Make,
			Model:       req.Vehicle.Model,
			Year:        req.Vehicle.Year,
			PlateNumber: req.Vehicle.PlateNumber,
		},
		Location: models.GeoPoint{
			Lat: req.Location.Lat,
			Lng: req.Location.Lng,
		},
		IssueDescription: req.IssueDescription,
		PreferredTime:    req.PreferredTime,
		Status:           models.RequestStatusPending,
		EstimatedPrice:   req.EstimatedPrice,
		IsEmergency:      emergency,
		Priority:         priority,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.notifier.NotifyNewRequest(ctx, request, owner); err != nil {
		logger.CtxWithError(ctx, "new request notification fan-out failed", err, "request_id", request.ID)
	}

	return request, nil
}

func (s *requestService) UpdateStatus(ctx context.Context, actor dto.Actor, requestID string, newStatus models.RequestStatus) (*models.ServiceRequest, error) {
	if !newStatus.IsValid() {
		return nil, apperrors.NewBadRequestError("Unknown status: " + string(newStatus))
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !s.canMutate(actor, request) {
		return nil, apperrors.ErrForbidden
	}

	if !request.Status.CanTransitionTo(newStatus) {
		return nil, apperrors.InvalidTransitionError(string(request.Status), string(newStatus))
	}

	// The previous status guards the write; a concurrent transition
	// turns this into a conflict rather than a silent overwrite.
	if err := s.requestRepo.UpdateStatusFrom(ctx, requestID, request.Status, newStatus); err != nil {
		if apperrors.Is(err, repositories.ErrStaleStatus) {
			return nil, apperrors.InvalidTransitionError(string(request.Status), string(newStatus))
		}
		return nil, apperrors.InternalError(err)
	}
	request.Status = newStatus

	switch newStatus {
	case models.RequestStatusInProgress:
		if err := s.notifier.NotifyServiceStarted(ctx, request); err != nil {
			logger.CtxWithError(ctx, "service started notification failed", err, "request_id", request.ID)
		}
	case models.RequestStatusCompleted:
		if err := s.notifier.NotifyServiceCompleted(ctx, request); err != nil {
			logger.CtxWithError(ctx, "service completed notification failed", err, "request_id", request.ID)
		}
	}

	return request, nil
}

// canMutate allows the request owner, the assigned mechanic and admins
// to drive the lifecycle.
func (s *requestService) canMutate(actor dto.Actor, request *models.ServiceRequest) bool {
	if actor.IsAdmin() || actor.ID == request.UserID {
		return true
	}
	return request.MechanicID != nil && actor.ID == *request.MechanicID
}

func (s *requestService) GetByID(ctx context.Context, id string) (*dto.RequestDetail, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return buildRequestDetail(ctx, request, s.userRepo, s.serviceRepo), nil
}

func (s *requestService) ListPending(ctx context.Context) ([]models.ServiceRequest, error) {
	return s.requestRepo.ListPending(ctx)
}

func (s *requestService) ListAll(ctx context.Context) ([]models.ServiceRequest, error) {
	return s.requestRepo.ListAll(ctx)
}

func (s *requestService) ListByUser(ctx context.Context, userID string) ([]models.ServiceRequest, error) {
	return s.requestRepo.ListByUser(ctx, userID)
}

func (s *requestService) ListByMechanic(ctx context.Context, mechanicID string) ([]models.ServiceRequest, error) {
	return s.requestRepo.ListByMechanic(ctx, mechanicID)
}

func (s *requestService) ListEmergency(ctx context.Context, pendingOnly bool) ([]models.ServiceRequest, error) {
	return s.requestRepo.ListEmergency(ctx, pendingOnly)
}
