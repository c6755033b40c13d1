package services

import (
	"context"

	"github.com/mesametamaarkhan/theekkardo/internal/apperrors"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/repositories"
)

// CatalogService exposes the read-only service catalog clients browse
// before filing a request.
type CatalogService interface {
	List(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id string) (*models.Service, error)
}

type catalogService struct {
	serviceRepo repositories.ServiceRepository
}

func NewCatalogService(serviceRepo repositories.ServiceRepository) CatalogService {
	return &catalogService{serviceRepo: serviceRepo}
}

func (s *catalogService) List(ctx context.Context) ([]models.Service, error) {
	return s.serviceRepo.List(ctx)
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*models.Service, error) {
	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Service")
		}
		return nil, apperrors.InternalError(err)
	}
	return service, nil
}
