// Package middleware provides HTTP middleware for the Stockbook API.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/infrastructure/http/v1/dto"
	"stockbook/pkg/logger"
)

// Recovery recovers from panics and converts them to internal errors.
// Recovery sits outside ErrorHandler in the chain, so a panic unwinds
// past it and nothing downstream can shape the response; the 500 body
// is written here.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				ctx := c.Request.Context()
				logger.Error(ctx, "panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				appErr := apperror.NewInternal(fmt.Errorf("panic: %v", r))
				_ = c.Error(appErr)
				if !c.Writer.Written() {
					c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
						Code:    appErr.Code,
						Message: appErr.Message,
					})
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
