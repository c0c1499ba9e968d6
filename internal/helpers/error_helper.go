package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/farellandr/eventhub/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: message})
}

// RespondWithServiceError writes the status that matches err's class.
// Unclassified errors are logged and reported as 500 without detail.
func RespondWithServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		_ = c.Error(err)
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		RespondWithError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
