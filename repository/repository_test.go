package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, mapError(nil))
	})

	t.Run("no rows becomes ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, mapError(pgx.ErrNoRows), ErrNotFound)
	})

	t.Run("unique violation becomes ErrDuplicate", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "habit_entries_user_date"}
		assert.ErrorIs(t, mapError(err), ErrDuplicate)
	})

	t.Run("wrapped unique violation still detected", func(t *testing.T) {
		err := fmt.Errorf("insert habit: %w", &pgconn.PgError{Code: "23505"})
		assert.ErrorIs(t, mapError(err), ErrDuplicate)
	})

	t.Run("serialization failure becomes ErrSerialization", func(t *testing.T) {
		err := &pgconn.PgError{Code: "40001"}
		assert.ErrorIs(t, mapError(err), ErrSerialization)
	})

	t.Run("other errors pass through unchanged", func(t *testing.T) {
		err := errors.New("connection refused")
		assert.Equal(t, err, mapError(err))
	})
}
