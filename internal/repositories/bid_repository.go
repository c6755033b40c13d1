package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mesametamaarkhan/theekkardo/internal/models"
)

// ErrBidConflict is returned when acceptance loses the race: the
// request was already resolved by a different bid.
var ErrBidConflict = errors.New("service request already resolved by another bid")

type BidRepository interface {
	Create(ctx context.Context, bid *models.Bid) error
	FindByID(ctx context.Context, id string) (*models.Bid, error)
	ListByRequest(ctx context.Context, serviceRequestID string) ([]models.Bid, error)

	// ResolveAcceptance atomically marks bid as the winner of its
	// service request: assigns mechanic and final price on the request,
	// accepts the bid and rejects every sibling. The pending->accepted
	// write on the request is the serialization point; a caller whose
	// bid did not win gets ErrBidConflict. Re-resolving the winning bid
	// is a no-op.
	ResolveAcceptance(ctx context.Context, bid *models.Bid) error
}

type BidRepositoryImpl struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) BidRepository {
	return &BidRepositoryImpl{db: db}
}

func (r *BidRepositoryImpl) Create(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *BidRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Bid, error) {
	var bid models.Bid
	if err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepositoryImpl) ListByRequest(ctx context.Context, serviceRequestID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("service_request_id = ?", serviceRequestID).
		Order("created_at ASC").
		Find(&bids).Error
	return bids, err
}

func (r *BidRepositoryImpl) ResolveAcceptance(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ServiceRequest{}).
			Where("id = ? AND status = ?", bid.ServiceRequestID, models.RequestStatusPending).
			Updates(map[string]interface{}{
				"mechanic_id": bid.MechanicID,
				"final_price": bid.BidAmount,
				"status":      models.RequestStatusAccepted,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// The request already left pending. Only a re-acceptance of
			// the bid that won may proceed; everyone else lost the race.
			var req models.ServiceRequest
			if err := tx.First(&req, "id = ?", bid.ServiceRequestID).Error; err != nil {
				return err
			}
			if req.Status != models.RequestStatusAccepted ||
				req.MechanicID == nil || *req.MechanicID != bid.MechanicID ||
				bid.Status != models.BidStatusAccepted {
				return ErrBidConflict
			}
		}

		if err := tx.Model(&models.Bid{}).
			Where("id = ?", bid.ID).
			Update("status", models.BidStatusAccepted).Error; err != nil {
			return err
		}

		return tx.Model(&models.Bid{}).
			Where("service_request_id = ? AND id <> ?", bid.ServiceRequestID, bid.ID).
			Update("status", models.BidStatusRejected).Error
	})
}
