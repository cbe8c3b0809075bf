package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"negocio/internal/core/apperror"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperror.Kind
		code string
	}{
		{"no rows", pgx.ErrNoRows, apperror.KindNotFound, apperror.CodeNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "products_name_key"}, apperror.KindConflict, apperror.CodeDuplicate},
		{"fk", &pgconn.PgError{Code: "23503"}, apperror.KindConflict, apperror.CodeConflict},
		{"check", &pgconn.PgError{Code: "23514"}, apperror.KindValidation, apperror.CodeValidation},
		{"serialization", &pgconn.PgError{Code: "40001"}, apperror.KindConflict, apperror.CodeConcurrentModification},
		{"unknown", errors.New("boom"), apperror.KindInternal, apperror.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(fmt.Errorf("wrap: %w", tt.err), "product", "x")
			appErr, ok := apperror.AsAppError(mapped)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}

	assert.Nil(t, MapError(nil, "product", "x"))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"})))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("boom")))
}
