package middleware

import (
	"net/http"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders errors attached with c.Error and fills in bodies for
// unmatched routes.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			apiErr, ok := common.IsAPIError(err)
			if !ok {
				logger.Error("Unhandled application error",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(RequestIDContextKey)),
				)
				apiErr = common.ErrInternalServer.WithCause(err)
			}
			c.AbortWithStatusJSON(apiErr.StatusCode, common.ErrorBody(apiErr))
			return
		}

		if c.Writer.Written() {
			return
		}
		switch c.Writer.Status() {
		case http.StatusNotFound:
			notFound := common.ErrNotFound.WithMessage("The requested endpoint does not exist.")
			c.AbortWithStatusJSON(notFound.StatusCode, common.ErrorBody(notFound))
		case http.StatusMethodNotAllowed:
			notAllowed := common.NewAPIError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "The method is not allowed for the requested URL.")
			c.AbortWithStatusJSON(notAllowed.StatusCode, common.ErrorBody(notAllowed))
		}
	}
}
