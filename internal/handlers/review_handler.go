package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesametamaarkhan/theekkardo/internal/middleware"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
	"github.com/mesametamaarkhan/theekkardo/internal/services"
	"github.com/mesametamaarkhan/theekkardo/internal/services/dto"
)

// ReviewHandler serves the post-service review endpoints.
type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", middleware.RequireRoles(models.UserRoleUser), h.SubmitReview)
	rg.GET("/mechanic/:id", h.GetReviewsForMechanic)
	rg.GET("/user/:id", h.GetReviewsByUser)
	rg.GET("/:id", h.GetReviewByID)
	rg.DELETE("/:id", h.DeleteReview)
}

// SubmitReview handles POST /review.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), actor.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review added successfully",
		"review":  review,
	})
}

// GetReviewsForMechanic handles GET /review/mechanic/:id.
func (h *ReviewHandler) GetReviewsForMechanic(c *gin.Context) {
	reviews, err := h.reviewService.ListByMechanic(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// GetReviewsByUser handles GET /review/user/:id.
func (h *ReviewHandler) GetReviewsByUser(c *gin.Context) {
	reviews, err := h.reviewService.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// GetReviewByID handles GET /review/:id.
func (h *ReviewHandler) GetReviewByID(c *gin.Context) {
	review, err := h.reviewService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// DeleteReview handles DELETE /review/:id. Only the author may delete.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
