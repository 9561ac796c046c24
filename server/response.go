package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/promptserve/errors"
)

// RespondWithError renders err with the standard error envelope. An
// *apperrors.AppError keeps its status; anything else becomes a 500.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// RespondOK sends a 200 response with body as-is.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}
