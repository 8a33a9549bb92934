package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letehaha/budget-tracker-be-sub001/internal/database"
)

func TestTransactor_WithinTx(t *testing.T) {
	t.Run("Commit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE accounts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = database.NewTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
			_, err := database.Conn(ctx, db).ExecContext(ctx, "UPDATE accounts SET name = 'x'")
			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		wantErr := errors.New("leg failed")
		err = database.NewTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NestedJoinsOuter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		tr := database.NewTransactor(db)
		err = tr.WithinTx(context.Background(), func(ctx context.Context) error {
			return tr.WithinTx(ctx, func(inner context.Context) error {
				assert.Equal(t, database.Conn(ctx, db), database.Conn(inner, db))
				return nil
			})
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConn_WithoutTx(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, db, database.Conn(context.Background(), db))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
}
