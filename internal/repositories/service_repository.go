package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/mesametamaarkhan/theekkardo/internal/models"
)

type ServiceRepository interface {
	FindByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
}

type ServiceRepositoryImpl struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &ServiceRepositoryImpl{db: db}
}

func (r *ServiceRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepositoryImpl) List(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}
