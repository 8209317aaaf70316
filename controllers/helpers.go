package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/999NK/teste2nutria-sub000/logger"
	"github.com/999NK/teste2nutria-sub000/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// dateQuery returns the ?date= param, defaulting to the current nutritional
// day only when the param is absent. A present-but-malformed value is left
// for the service layer to reject with ErrInvalidDate.
func dateQuery(c *gin.Context) string {
	if v := c.Query("date"); v != "" {
		return v
	}
	return services.ResolveDay(time.Now())
}

// respondError maps service errors onto the API's status codes. Unexpected
// errors are logged with context and surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrInvalidDate), errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
