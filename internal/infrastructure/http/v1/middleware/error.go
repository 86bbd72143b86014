package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/infrastructure/http/v1/dto"
	"stockbook/pkg/logger"
)

// ErrorHandler converts errors registered on the gin context into JSON
// responses. It is the single place that shapes error bodies; handlers
// only call c.Error and abort.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Another handler already wrote the response.
		if c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		ctx := c.Request.Context()

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.HTTPStatus >= 500 {
				logger.Error(ctx, "request failed",
					"code", appErr.Code,
					"error", appErr.Error(),
				)
			}
			c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			})
			return
		}

		logger.Error(ctx, "unhandled error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    apperror.CodeInternal,
			Message: "internal server error",
			Details: map[string]any{
				"request_id": appctx.GetRequestID(ctx),
			},
		})
	}
}
