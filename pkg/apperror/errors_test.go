package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{Validation("bad input", nil), http.StatusBadRequest},
		{NotFound("user", nil), http.StatusNotFound},
		{Conflict("taken", nil), http.StatusConflict},
		{PreconditionFailed("missing report", nil), http.StatusPreconditionFailed},
		{Unauthorized("", nil), http.StatusUnauthorized},
		{Forbidden("", nil), http.StatusForbidden},
		{Upstream("storage down", nil), http.StatusBadGateway},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "doctor not found", NotFound("doctor", nil).Message)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	err := NotFound("user", cause)
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Conflict("slot taken", nil))
	assert.True(t, Is(err, CodeConflict))
	assert.False(t, Is(err, CodeNotFound))
	assert.False(t, Is(errors.New("plain"), CodeConflict))
	assert.False(t, Is(nil, CodeConflict))
}

func TestInternalHidesCause(t *testing.T) {
	err := Internal(errors.New("duplicate key value violates unique constraint"))
	assert.Equal(t, "internal server error", err.Message)
}
