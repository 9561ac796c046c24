package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/promptserve/errors"
)

// Liveness confirms the process is alive and able to serve HTTP.
func Liveness(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "alive",
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// NotFound renders unknown routes with the standard error envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apperrors.NotFound("route", c.Request.URL.Path).ToResponse())
	}
}

// MethodNotAllowed renders a known path hit with the wrong method.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := apperrors.New(apperrors.ErrCodeInvalidInput, "Method not allowed", http.StatusMethodNotAllowed).
			WithDetail("method", c.Request.Method)
		c.JSON(http.StatusMethodNotAllowed, err.ToResponse())
	}
}
