package apperrors

import (
	"github.com/gin-gonic/gin"

	"github.com/mesametamaarkhan/theekkardo/internal/logger"
)

// ErrorResponse is the error envelope every endpoint returns.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes err as a JSON error response on c.
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", err, "path", c.Request.URL.Path)
	}
	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}
