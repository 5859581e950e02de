package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerContextKey is where request-scoped loggers are stored in the gin context.
const LoggerContextKey = "logger"

// SuccessResponse wraps single-resource API responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the failure envelope written for err.
func ErrorBody(apiErr *APIError) gin.H {
	body := gin.H{
		"success": false,
		"code":    apiErr.Code,
		"message": apiErr.Message,
	}
	if apiErr.Err != "" {
		body["error"] = apiErr.Err
	}
	if apiErr.Details != nil {
		body["details"] = apiErr.Details
	}
	return body
}

// RespondWithError sends a JSON error response.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		if l, exists := c.Get(LoggerContextKey); exists {
			if logger, ok := l.(*zap.Logger); ok {
				logger.Error("Unhandled internal error being wrapped", zap.Error(err))
			}
		}
		apiErr = ErrInternalServer.WithCause(err)
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, ErrorBody(apiErr))
}

// RespondSuccess sends a JSON success response.
func RespondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondOK sends a 200 OK response.
func RespondOK(c *gin.Context, message string, data interface{}) {
	RespondSuccess(c, http.StatusOK, message, data)
}

// RespondCreated sends a 201 Created response.
func RespondCreated(c *gin.Context, message string, data interface{}) {
	RespondSuccess(c, http.StatusCreated, message, data)
}

// ListResponse is the envelope for listing collections.
type ListResponse struct {
	Success  bool        `json:"success"`
	Listings interface{} `json:"listings"`
	Total    int         `json:"total"`
	Message  string      `json:"message,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// RespondList sends a listing collection.
func RespondList(c *gin.Context, listings interface{}, total int, message string) {
	c.JSON(http.StatusOK, ListResponse{
		Success:  true,
		Listings: listings,
		Total:    total,
		Message:  message,
	})
}

// RespondDegradedList answers a list read that failed with an empty success,
// keeping the store diagnostic in the error field.
func RespondDegradedList(c *gin.Context, emptyListings interface{}, message string, cause error) {
	resp := ListResponse{Success: true, Listings: emptyListings, Message: message}
	if cause != nil {
		resp.Error = cause.Error()
	}
	c.JSON(http.StatusOK, resp)
}
