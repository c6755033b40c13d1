package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesametamaarkhan/theekkardo/internal/logger"
	"github.com/mesametamaarkhan/theekkardo/internal/middleware"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/services"
	"github.com/mesametamaarkhan/theekkardo/internal/services/dto"
)

// RequestHandler serves the service-request lifecycle endpoints.
type RequestHandler struct {
	*BaseHandler
	requestService services.RequestService
}

func NewRequestHandler(base *BaseHandler, requestService services.RequestService) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    base,
		requestService: requestService,
	}
}

// RegisterRoutes wires the lifecycle endpoints onto the service-request
// group. Static segments must be registered alongside :id; gin resolves
// them with static-first priority.
func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", middleware.RequireRoles(models.UserRoleUser), h.CreateServiceRequest)
	rg.POST("/emergency", middleware.RequireRoles(models.UserRoleUser), h.CreateEmergencyRequest)

	rg.GET("", h.GetPendingRequests)
	rg.GET("/all", middleware.RequireRoles(models.UserRoleAdmin), h.GetAllRequests)
	rg.GET("/emergency/all", h.GetEmergencyRequests)
	rg.GET("/emergency/pending", h.GetPendingEmergencyRequests)
	rg.GET("/user-requests", h.GetUserRequests)
	rg.GET("/mechanic-requests", middleware.RequireRoles(models.UserRoleMechanic), h.GetMechanicRequests)
	rg.GET("/:id", h.GetRequestByID)
	rg.PUT("/update-status/:id", h.UpdateRequestStatus)
}

// CreateServiceRequest handles POST /service-request.
func (h *RequestHandler) CreateServiceRequest(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	created, err := h.requestService.Create(c.Request.Context(), actor.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "service request created",
		"requestID", created.ID,
		"serviceID", created.ServiceID,
	)
	c.JSON(http.StatusOK, gin.H{
		"message":        "Service request created successfully",
		"serviceRequest": created,
	})
}

// CreateEmergencyRequest handles POST /service-request/emergency.
func (h *RequestHandler) CreateEmergencyRequest(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	var req dto.CreateEmergencyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	created, err := h.requestService.CreateEmergency(c.Request.Context(), actor.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "emergency service request created",
		"requestID", created.ID,
		"priority", created.Priority,
	)
	c.JSON(http.StatusOK, gin.H{
		"message":        "Emergency service request created successfully",
		"serviceRequest": created,
	})
}

// GetPendingRequests handles GET /service-request.
func (h *RequestHandler) GetPendingRequests(c *gin.Context) {
	requests, err := h.requestService.ListPending(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"serviceRequests": requests})
}

// GetAllRequests handles GET /service-request/all.
func (h *RequestHandler) GetAllRequests(c *gin.Context) {
	requests, err := h.requestService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"serviceRequests": requests})
}

// GetEmergencyRequests handles GET /service-request/emergency/all.
func (h *RequestHandler) GetEmergencyRequests(c *gin.Context) {
	requests, err := h.requestService.ListEmergency(c.Request.Context(), false)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"serviceRequests": requests})
}

// GetPendingEmergencyRequests handles GET /service-request/emergency/pending.
func (h *RequestHandler) GetPendingEmergencyRequests(c *gin.Context) {
	requests, err := h.requestService.ListEmergency(c.Request.Context(), true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"serviceRequests": requests})
}

// GetUserRequests handles GET /service-request/user-requests, the
// caller's own requests as owner.
func (h *RequestHandler) GetUserRequests(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListByUser(c.Request.Context(), actor.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"serviceRequests": requests})
}

// GetMechanicRequests handles GET /service-request/mechanic-requests,
// the requests assigned to the calling mechanic.
func (h *RequestHandler) GetMechanicRequests(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListByMechanic(c.Request.Context(), actor.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"serviceRequests": requests})
}

// GetRequestByID handles GET /service-request/:id.
func (h *RequestHandler) GetRequestByID(c *gin.Context) {
	detail, err := h.requestService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"serviceRequest": detail})
}

// UpdateRequestStatus handles PUT /service-request/update-status/:id.
func (h *RequestHandler) UpdateRequestStatus(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	updated, err := h.requestService.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "service request status updated",
		"requestID", updated.ID,
		"status", updated.Status,
	)
	c.JSON(http.StatusOK, gin.H{
		"message":        "Service request status updated successfully",
		"serviceRequest": updated,
	})
}
