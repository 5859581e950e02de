package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStoreError_MapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}, http.StatusConflict},
		{&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}, http.StatusBadRequest},
		{&pgconn.PgError{Code: "23502", Message: "null value in column"}, http.StatusBadRequest},
		{&pgconn.PgError{Code: "22001", Message: "value too long for type character varying(20)"}, http.StatusBadRequest},
		{errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
		{errors.New("relation does not exist"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		apiErr := StoreError(fmt.Errorf("failed to create property: %w", tc.err), "Failed to create property.")
		assert.Equal(t, tc.status, apiErr.StatusCode, tc.err.Error())
		assert.Equal(t, "Failed to create property.", apiErr.Message)
		assert.Contains(t, apiErr.Err, tc.err.Error(), "diagnostic must be carried verbatim")
	}
}

func TestStoreError_PassesAPIErrorsThrough(t *testing.T) {
	notFound := ErrNotFound.WithMessage("Property not found.")
	assert.Same(t, notFound, StoreError(fmt.Errorf("wrapped: %w", notFound), "ignored"))
}

func TestAPIError_CopiesDoNotMutateSentinels(t *testing.T) {
	_ = ErrBadRequest.WithDetails("x").WithMessage("changed")
	assert.Nil(t, ErrBadRequest.Details)
	assert.Equal(t, "The request is invalid.", ErrBadRequest.Message)
}

func TestErrorBody(t *testing.T) {
	body := ErrorBody(ErrInternalServer.WithCause(errors.New("pq: boom")))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "pq: boom", body["error"])
	_, hasDetails := body["details"]
	assert.False(t, hasDetails)
}
