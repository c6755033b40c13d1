package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mesametamaarkhan/theekkardo/internal/services"
)

// CatalogHandler serves the read-only service catalog.
type CatalogHandler struct {
	*BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(base *BaseHandler, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    base,
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetServices)
	rg.GET("/:id", h.GetServiceByID)
}

// GetServices handles GET /services.
func (h *CatalogHandler) GetServices(c *gin.Context) {
	list, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": list})
}

// GetServiceByID handles GET /services/:id.
func (h *CatalogHandler) GetServiceByID(c *gin.Context) {
	svc, err := h.catalogService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": svc})
}
