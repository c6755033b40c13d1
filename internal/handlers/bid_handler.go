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

// BidHandler serves the bidding endpoints. Bids live under the
// service-request group because every bid belongs to one request.
type BidHandler struct {
	*BaseHandler
	bidService services.BidService
}

func NewBidHandler(base *BaseHandler, bidService services.BidService) *BidHandler {
	return &BidHandler{
		BaseHandler: base,
		bidService:  bidService,
	}
}

func (h *BidHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/place-bid", middleware.RequireRoles(models.UserRoleMechanic), h.PlaceBid)
	rg.GET("/bids/:serviceRequestId", h.GetBidsForRequest)
	rg.PUT("/accept-bid/:bidId", h.AcceptBid)
}

// PlaceBid handles POST /service-request/place-bid.
func (h *BidHandler) PlaceBid(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	var req dto.PlaceBidRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	bid, err := h.bidService.PlaceBid(c.Request.Context(), actor.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "bid placed",
		"bidID", bid.ID,
		"requestID", bid.ServiceRequestID,
		"amount", bid.BidAmount,
	)
	c.JSON(http.StatusOK, gin.H{
		"message": "Bid placed successfully",
		"bid":     bid,
	})
}

// GetBidsForRequest handles GET /service-request/bids/:serviceRequestId.
func (h *BidHandler) GetBidsForRequest(c *gin.Context) {
	board, err := h.bidService.ListBidsForRequest(c.Request.Context(), c.Param("serviceRequestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// AcceptBid handles PUT /service-request/accept-bid/:bidId.
func (h *BidHandler) AcceptBid(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	updated, err := h.bidService.AcceptBid(c.Request.Context(), actor, c.Param("bidId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "bid accepted",
		"requestID", updated.ID,
		"mechanicID", updated.MechanicID,
	)
	c.JSON(http.StatusOK, gin.H{
		"message":        "Bid accepted successfully",
		"serviceRequest": updated,
	})
}
