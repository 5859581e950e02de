package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/database"

	"github.com/go-playground/validator/v10"
)

// APIError represents a standard structure for API errors. Err carries the
// underlying diagnostic verbatim; the owner portal shows it to the user.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Err        string      `json:"error,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Err != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// WithMessage returns a copy of e with a specific message.
func (e *APIError) WithMessage(message string) *APIError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithDetails returns a copy of e carrying details.
func (e *APIError) WithDetails(details interface{}) *APIError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithCause returns a copy of e carrying err's text in the error field.
func (e *APIError) WithCause(err error) *APIError {
	cp := *e
	if err != nil {
		cp.Err = err.Error()
	}
	return &cp
}

var (
	ErrBadRequest         = NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "The request is invalid.")
	ErrNotFound           = NewAPIError(http.StatusNotFound, "NOT_FOUND", "The requested resource could not be found.")
	ErrConflict           = NewAPIError(http.StatusConflict, "CONFLICT", "A conflict occurred with the current state of the resource.")
	ErrInternalServer     = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred on the server.")
	ErrServiceUnavailable = NewAPIError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "The database is currently unavailable.")
	ErrBadGateway         = NewAPIError(http.StatusBadGateway, "UPSTREAM_ERROR", "An upstream service failed.")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NewValidationAPIError reports rejected input before any store interaction.
func NewValidationAPIError(message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    message,
		Details:    details,
	}
}

// StoreError turns a repository failure into an APIError. Errors that already
// are APIErrors pass through untouched.
func StoreError(err error, message string) *APIError {
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr
	}

	var base *APIError
	switch database.Classify(err) {
	case database.KindDuplicate:
		base = ErrConflict
	case database.KindForeignKey:
		base = NewAPIError(http.StatusBadRequest, "FOREIGN_KEY_VIOLATION", "A referenced record does not exist.")
	case database.KindNotNull:
		base = NewAPIError(http.StatusBadRequest, "NOT_NULL_VIOLATION", "A required column was empty.")
	case database.KindConstraint:
		base = NewAPIError(http.StatusBadRequest, "CONSTRAINT_VIOLATION", "A value violates a database constraint.")
	case database.KindConnection:
		base = ErrServiceUnavailable
	default:
		base = ErrInternalServer
	}
	if message != "" {
		base = base.WithMessage(message)
	}
	return base.WithCause(err)
}

// FormatValidationErrors converts validator.ValidationErrors into a map.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMap := make(map[string]string)
	for _, e := range errs {
		field := e.Field()
		name := strings.ToLower(field)
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", name)
		case "email":
			message = fmt.Sprintf("The %s field must be a valid email address.", name)
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s.", name, e.Param())
		case "max":
			message = fmt.Sprintf("The %s field may not be greater than %s.", name, e.Param())
		case "oneof":
			message = fmt.Sprintf("The %s field must be one of the following values: %s.", name, e.Param())
		case "uuid", "uuid4":
			message = fmt.Sprintf("The %s field must be a valid UUID.", name)
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
		}
		errorMap[field] = message
	}
	return errorMap
}

// BindingError converts a gin binding failure into a 400.
func BindingError(err error) *APIError {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return NewValidationAPIError("Input validation failed.", FormatValidationErrors(ve))
	}
	return ErrBadRequest.WithMessage("Invalid request body.").WithCause(err)
}
