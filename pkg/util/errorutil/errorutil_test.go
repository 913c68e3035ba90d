package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"domain error passes through", NewUnauthorizedCode("TOKEN_EXPIRED", "token expired"), "TOKEN_EXPIRED", http.StatusUnauthorized},
		{"wrapped domain error", fmt.Errorf("login: %w", NewForbidden("nope")), "FORBIDDEN", http.StatusForbidden},
		{"no rows", fmt.Errorf("lookup: %w", pgx.ErrNoRows), "NOT_FOUND", http.StatusNotFound},
		{"fiber bad request", fiber.NewError(http.StatusBadRequest, "invalid payload"), "VALIDATION_FAILED", http.StatusBadRequest},
		{"fiber unauthorized", fiber.NewError(http.StatusUnauthorized, "Unauthorized"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"anything else", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorHidesCauseFromMessage(t *testing.T) {
	de := ToDomainError(errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorContains(t, de, "password authentication failed")
}
