package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mesametamaarkhan/theekkardo/internal/apperrors"
	"github.com/mesametamaarkhan/theekkardo/internal/logger"
	"github.com/mesametamaarkhan/theekkardo/internal/middleware"
	"github.com/mesametamaarkhan/theekkardo/internal/services/dto"
	"github.com/mesametamaarkhan/theekkardo/internal/validator"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON binds the JSON body into obj and runs the rule
// validator. Writes the error response itself and returns false on
// failure.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWarn(ctx, "failed to bind JSON body", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// BindAndValidateQuery binds query parameters into obj. Writes the
// error response itself and returns false on failure.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWarn(c.Request.Context(), "failed to bind query parameters", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return true
}

// HandleServiceError maps a service-layer error onto the wire.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode < 500 {
			logger.CtxWarn(ctx, "service error",
				"error", appErr.Message,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
		return
	}

	logger.CtxWithError(ctx, "internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// CurrentActor returns the authenticated caller or writes a 401.
func (h *BaseHandler) CurrentActor(c *gin.Context) (dto.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		logger.CtxWarn(c.Request.Context(), "unauthorized access: no actor in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return dto.Actor{}, false
	}
	return dto.Actor{ID: actor.ID, Email: actor.Email, Role: actor.Role}, true
}
