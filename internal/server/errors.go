package server

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pointraillabs/pointrail/pkg/apperrors"
	"go.uber.org/zap"
)

// AbortWithError writes the response for err. Anything that is not an
// *apperrors.Error is treated as an internal fault: the caller gets a generic
// message and the cause lands in the log only.
func AbortWithError(c *gin.Context, log *zap.Logger, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("internal server error", err)
		log.Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus(), gin.H{
		"error": gin.H{
			"kind":    appErr.Kind,
			"message": appErr.Message,
		},
	})
}

func invalidRequestError() *apperrors.Error {
	return apperrors.Validation("invalid request body")
}
