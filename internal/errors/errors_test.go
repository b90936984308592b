package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeAlreadyConfigured, http.StatusConflict},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeValidation, http.StatusBadRequest},
		{Code("SOMETHING_NEW"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.code.HTTPStatus())
		})
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := errors.New("badger: key not found")
	err := TokenExpired("reset code expired or already used").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "reset code expired")
	assert.Contains(t, err.Error(), "key not found")

	// The wrapped cause never reaches the response payload
	assert.Equal(t, "reset code expired or already used", err.Message)
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("login: %w", InvalidCredentials("invalid email or password"))
	assert.ErrorIs(t, err, InvalidCredentials("different message"))
	assert.NotErrorIs(t, err, Forbidden("nope"))
}
