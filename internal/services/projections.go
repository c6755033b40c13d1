package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mesametamaarkhan/theekkardo/internal/logger"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/repositories"
	"github.com/mesametamaarkhan/theekkardo/internal/services/dto"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// buildRequestDetail attaches owner/mechanic/service projections to a
// request. A dangling reference (e.g. a deleted user) degrades to a
// nil projection instead of failing the whole read.
func buildRequestDetail(
	ctx context.Context,
	req *models.ServiceRequest,
	userRepo repositories.UserRepository,
	serviceRepo repositories.ServiceRepository,
) *dto.RequestDetail {
	detail := &dto.RequestDetail{ServiceRequest: req}

	if owner, err := userRepo.FindByID(ctx, req.UserID); err == nil {
		detail.Owner = owner.Profile()
	} else if !isNotFound(err) {
		logger.CtxWarn(ctx, "failed to load request owner projection", "request_id", req.ID, "error", err.Error())
	}

	if req.MechanicID != nil {
		if mechanic, err := userRepo.FindByID(ctx, *req.MechanicID); err == nil {
			detail.Mechanic = mechanic.Profile()
		} else if !isNotFound(err) {
			logger.CtxWarn(ctx, "failed to load mechanic projection", "request_id", req.ID, "error", err.Error())
		}
	}

	if service, err := serviceRepo.FindByID(ctx, req.ServiceID); err == nil {
		detail.Service = service
	} else if !isNotFound(err) {
		logger.CtxWarn(ctx, "failed to load service projection", "request_id", req.ID, "error", err.Error())
	}

	return detail
}
