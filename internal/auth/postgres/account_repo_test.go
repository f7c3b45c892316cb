// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classplan/classplan/internal/auth"
)

var accountCols = []string{
	"id", "email", "password_hash", "display_name", "role", "active",
	"failed_attempts", "locked_until", "created_at", "updated_at",
}

func testAccount() *auth.Account {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &auth.Account{
		ID:           ulid.Make(),
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		DisplayName:  "Ada Lovelace",
		Role:         auth.RoleCoordinator,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func accountRow(a *auth.Account) *pgxmock.Rows {
	return pgxmock.NewRows(accountCols).AddRow(
		a.ID.String(), a.Email, a.PasswordHash, a.DisplayName, string(a.Role),
		a.Active, a.FailedAttempts, a.LockedUntil, a.CreatedAt, a.UpdatedAt,
	)
}

func TestAccountRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface, a *auth.Account)
		wantErr   error
	}{
		{
			name: "inserts account",
			setupMock: func(mock pgxmock.PgxPoolIface, a *auth.Account) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(
						a.ID.String(), a.Email, a.PasswordHash, a.DisplayName,
						string(a.Role), a.Active, a.FailedAttempts, a.LockedUntil,
						a.CreatedAt, a.UpdatedAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "unique violation maps to duplicate email",
			setupMock: func(mock pgxmock.PgxPoolIface, a *auth.Account) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(
						a.ID.String(), a.Email, a.PasswordHash, a.DisplayName,
						string(a.Role), a.Active, a.FailedAttempts, a.LockedUntil,
						a.CreatedAt, a.UpdatedAt,
					).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: auth.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			account := testAccount()
			tt.setupMock(mock, account)

			repo := NewAccountRepository(mock)
			err = repo.Create(context.Background(), account)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	t.Run("returns stored account", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		account := testAccount()
		mock.ExpectQuery(`SELECT (.+) FROM accounts`).
			WithArgs(account.Email).
			WillReturnRows(accountRow(account))

		repo := NewAccountRepository(mock)
		got, err := repo.GetByEmail(context.Background(), account.Email)
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
		assert.Equal(t, account.Email, got.Email)
		assert.Equal(t, account.Role, got.Role)
		assert.True(t, got.Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM accounts`).
			WithArgs("missing@x.com").
			WillReturnError(pgx.ErrNoRows)

		repo := NewAccountRepository(mock)
		_, err = repo.GetByEmail(context.Background(), "missing@x.com")
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("corrupt id surfaces", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		account := testAccount()
		rows := pgxmock.NewRows(accountCols).AddRow(
			"not-a-ulid", account.Email, account.PasswordHash, account.DisplayName,
			string(account.Role), account.Active, account.FailedAttempts,
			account.LockedUntil, account.CreatedAt, account.UpdatedAt,
		)
		mock.ExpectQuery(`SELECT (.+) FROM accounts`).
			WithArgs(account.Email).
			WillReturnRows(rows)

		repo := NewAccountRepository(mock)
		_, err = repo.GetByEmail(context.Background(), account.Email)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ulid")
	})
}

func TestAccountRepository_GetByID(t *testing.T) {
	t.Run("returns stored account", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		account := testAccount()
		mock.ExpectQuery(`SELECT (.+) FROM accounts`).
			WithArgs(account.ID.String()).
			WillReturnRows(accountRow(account))

		repo := NewAccountRepository(mock)
		got, err := repo.GetByID(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Equal(t, account.Email, got.Email)
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		id := ulid.Make()
		mock.ExpectQuery(`SELECT (.+) FROM accounts`).
			WithArgs(id.String()).
			WillReturnError(pgx.ErrNoRows)

		repo := NewAccountRepository(mock)
		_, err = repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestAccountRepository_Update(t *testing.T) {
	t.Run("updates existing account", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		account := testAccount()
		mock.ExpectExec(`UPDATE accounts`).
			WithArgs(
				account.ID.String(), account.Email, account.PasswordHash,
				account.DisplayName, string(account.Role), account.Active,
				account.FailedAttempts, account.LockedUntil, account.UpdatedAt,
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewAccountRepository(mock)
		require.NoError(t, repo.Update(context.Background(), account))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		account := testAccount()
		mock.ExpectExec(`UPDATE accounts`).
			WithArgs(
				account.ID.String(), account.Email, account.PasswordHash,
				account.DisplayName, string(account.Role), account.Active,
				account.FailedAttempts, account.LockedUntil, account.UpdatedAt,
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewAccountRepository(mock)
		err = repo.Update(context.Background(), account)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("database error surfaces", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		account := testAccount()
		mock.ExpectExec(`UPDATE accounts`).
			WithArgs(
				account.ID.String(), account.Email, account.PasswordHash,
				account.DisplayName, string(account.Role), account.Active,
				account.FailedAttempts, account.LockedUntil, account.UpdatedAt,
			).
			WillReturnError(errors.New("connection refused"))

		repo := NewAccountRepository(mock)
		err = repo.Update(context.Background(), account)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
