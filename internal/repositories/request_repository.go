package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mesametamaarkhan/theekkardo/internal/models"
)

// ErrStaleStatus is returned when a guarded status update loses a race:
// the request left the expected status between read and write.
var ErrStaleStatus = errors.New("service request status changed concurrently")

type RequestRepository interface {
	Create(ctx context.Context, req *models.ServiceRequest) error
	FindByID(ctx context.Context, id string) (*models.ServiceRequest, error)
	ListPending(ctx context.Context) ([]models.ServiceRequest, error)
	ListAll(ctx context.Context) ([]models.ServiceRequest, error)
	ListByUser(ctx context.Context, userID string) ([]models.ServiceRequest, error)
	ListByMechanic(ctx context.Context, mechanicID string) ([]models.ServiceRequest, error)
	ListEmergency(ctx context.Context, pendingOnly bool) ([]models.ServiceRequest, error)

	// UpdateStatusFrom writes newStatus only while the row still holds
	// fromStatus. Returns ErrStaleStatus when the guard fails.
	UpdateStatusFrom(ctx context.Context, id string, fromStatus, newStatus models.RequestStatus) error

	// CancelStale cancels pending requests whose preferred time passed
	// more than maxAge ago. Returns the number of rows touched.
	CancelStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

type RequestRepositoryImpl struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &RequestRepositoryImpl{db: db}
}

func (r *RequestRepositoryImpl) Create(ctx context.Context, req *models.ServiceRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepositoryImpl) FindByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepositoryImpl) ListPending(ctx context.Context) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", models.RequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *RequestRepositoryImpl) ListAll(ctx context.Context) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *RequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *RequestRepositoryImpl) ListByMechanic(ctx context.Context, mechanicID string) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("mechanic_id = ?", mechanicID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *RequestRepositoryImpl) ListEmergency(ctx context.Context, pendingOnly bool) ([]models.ServiceRequest, error) {
	query := r.db.WithContext(ctx).Where("is_emergency = ?", true)
	if pendingOnly {
		query = query.Where("status = ?", models.RequestStatusPending)
	}

	var requests []models.ServiceRequest
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *RequestRepositoryImpl) UpdateStatusFrom(ctx context.Context, id string, fromStatus, newStatus models.RequestStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", newStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *RequestRepositoryImpl) CancelStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	res := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("status = ? AND preferred_time < ?", models.RequestStatusPending, cutoff).
		Update("status", models.RequestStatusCanceled)
	return res.RowsAffected, res.Error
}
