package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindMapping(t *testing.T) {
	cases := []struct {
		kind   Kind
		code   string
		status int
	}{
		{KindValidation, "VALIDATION_FAILED", http.StatusBadRequest},
		{KindInvalidState, "INVALID_STATE", http.StatusBadRequest},
		{KindUnauthenticated, "UNAUTHORIZED", http.StatusUnauthorized},
		{KindForbidden, "FORBIDDEN", http.StatusForbidden},
		{KindNotFound, "NOT_FOUND", http.StatusNotFound},
		{KindConflict, "CONFLICT", http.StatusConflict},
		{KindStoreUnavailable, "STORE_UNAVAILABLE", http.StatusServiceUnavailable},
		{KindInternal, "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.kind.Code())
			assert.Equal(t, tc.status, tc.kind.HTTPStatus())
		})
	}
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	wrapped := fmt.Errorf("loading job: %w", NewNotFound("job", nil))
	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, KindNotFound, de.Kind)
	assert.Equal(t, "job not found", de.Message)

	plain := errors.New("boom")
	de = ToDomainError(plain)
	assert.Equal(t, KindInternal, de.Kind)
	assert.ErrorIs(t, de, plain)
}

func TestIsKind(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewStoreUnavailable(cause)

	assert.True(t, IsKind(err, KindStoreUnavailable))
	assert.False(t, IsKind(err, KindInternal))
	assert.False(t, IsKind(cause, KindStoreUnavailable))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "data store unavailable")
}
