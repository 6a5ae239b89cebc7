package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelErrorFormat(t *testing.T) {
	err := New(ErrServiceNotFound, "service not found")
	assert.Equal(t, "[SERVICE_NOT_FOUND] service not found", err.Error())

	err = NewWithDetails(ErrGatewayHTTP, "provider request failed", "status 403")
	assert.Equal(t, "[GATEWAY_HTTP] provider request failed: status 403", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrGatewayNetwork, "provider unreachable", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, HasCode(err, ErrGatewayNetwork))
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrServiceNotFound, http.StatusNotFound},
		{ErrNotFound, http.StatusNotFound},
		{ErrAuthFailed, http.StatusUnauthorized},
		{ErrValidationFailed, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrActionPending, http.StatusConflict},
		{ErrAPIKeyRequired, http.StatusConflict},
		{ErrGatewayNetwork, http.StatusBadGateway},
		{ErrGatewayHTTP, http.StatusBadGateway},
		{ErrGatewayDecode, http.StatusBadGateway},
		{ErrTimeout, http.StatusRequestTimeout},
		{ErrInternal, http.StatusInternalServerError},
		{ErrPersistence, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, New(tt.code, "test").GetHTTPStatus())
		})
	}
}

func TestExplicitHTTPStatusWins(t *testing.T) {
	err := New(ErrInternal, "test")
	err.HTTPStatus = http.StatusTeapot
	assert.Equal(t, http.StatusTeapot, err.GetHTTPStatus())
}

func TestCodeHelpers(t *testing.T) {
	err := New(ErrActionPending, "pending")
	assert.True(t, IsPanelError(err))
	assert.Equal(t, ErrActionPending, GetCode(err))
	assert.True(t, HasCode(err, ErrActionPending))
	assert.False(t, HasCode(err, ErrInternal))

	plain := fmt.Errorf("plain")
	assert.False(t, IsPanelError(plain))
	assert.Equal(t, ErrorCode(""), GetCode(plain))
}

func TestActionAlreadyPending(t *testing.T) {
	err := ActionAlreadyPending("svc-1", "restart")
	require.True(t, HasCode(err, ErrActionPending))
	assert.Contains(t, err.Error(), "svc-1")
	assert.Contains(t, err.Error(), "restart")
}

func TestGatewayHTTPErrorContext(t *testing.T) {
	err := GatewayHTTPError(403, "invalid token")
	require.True(t, HasCode(err, ErrGatewayHTTP))
	assert.Equal(t, 403, err.Context["provider_status"])
	assert.Contains(t, err.Error(), "invalid token")
}

func TestAPIKeyRequired(t *testing.T) {
	err := APIKeyRequired()
	assert.True(t, HasCode(err, ErrAPIKeyRequired))
	assert.Equal(t, http.StatusConflict, err.GetHTTPStatus())
}

func TestValidationFailedMessage(t *testing.T) {
	err := ValidationFailed("password", "", "too short (minimum 8 characters)")
	assert.True(t, HasCode(err, ErrValidationFailed))
	assert.Contains(t, err.Error(), "password")
	assert.Contains(t, err.Error(), "too short")
}
