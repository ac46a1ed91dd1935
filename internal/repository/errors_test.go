package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, mapError(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "applications_job_id_candidate_id_key"}
	err := mapError(unique)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "applications_job_id_candidate_id_key")

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "applications_job_id_fkey"}
	assert.ErrorIs(t, mapError(fk), ErrNotFound)

	other := &pgconn.PgError{Code: "22001"}
	assert.Equal(t, other, mapError(other))

	plain := errors.New("boom")
	assert.Equal(t, plain, mapError(plain))
}

func TestMapErrorStoreUnavailable(t *testing.T) {
	err := mapError(context.DeadlineExceeded)
	assert.True(t, apperrors.IsKind(err, apperrors.KindStoreUnavailable))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
