// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classplan/classplan/internal/schedule"
)

var conflictCols = []string{
	"id", "slot_id", "conflict_type", "description", "resolved",
	"created_at", "resolved_at",
}

func testConflict() *schedule.Conflict {
	now := time.Now().UTC().Truncate(time.Microsecond)
	slotID := ulid.Make()
	return &schedule.Conflict{
		ID:          ulid.Make(),
		SlotID:      &slotID,
		Type:        schedule.ConflictTeacherBusy,
		Description: "Teacher double booked on monday",
		CreatedAt:   now,
	}
}

func conflictRow(c *schedule.Conflict) *pgxmock.Rows {
	var slotID *string
	if c.SlotID != nil {
		s := c.SlotID.String()
		slotID = &s
	}
	return pgxmock.NewRows(conflictCols).AddRow(
		c.ID.String(), slotID, string(c.Type), c.Description, c.Resolved,
		c.CreatedAt, c.ResolvedAt,
	)
}

func TestConflictRepository_Create(t *testing.T) {
	t.Run("inserts conflict with slot reference", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		conflict := testConflict()
		mock.ExpectExec(`INSERT INTO conflicts`).
			WithArgs(
				conflict.ID.String(), pgxmock.AnyArg(), string(conflict.Type),
				conflict.Description, conflict.Resolved, conflict.CreatedAt,
				conflict.ResolvedAt,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewConflictRepository(mock)
		require.NoError(t, repo.Create(context.Background(), conflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserts conflict without slot reference", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		conflict := testConflict()
		conflict.SlotID = nil
		mock.ExpectExec(`INSERT INTO conflicts`).
			WithArgs(
				conflict.ID.String(), (*string)(nil), string(conflict.Type),
				conflict.Description, conflict.Resolved, conflict.CreatedAt,
				conflict.ResolvedAt,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewConflictRepository(mock)
		require.NoError(t, repo.Create(context.Background(), conflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConflictRepository_GetByID(t *testing.T) {
	t.Run("returns conflict", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		conflict := testConflict()
		mock.ExpectQuery(`SELECT .+ FROM conflicts`).
			WithArgs(conflict.ID.String()).
			WillReturnRows(conflictRow(conflict))

		repo := NewConflictRepository(mock)
		got, err := repo.GetByID(context.Background(), conflict.ID)
		require.NoError(t, err)

		assert.Equal(t, conflict.ID, got.ID)
		require.NotNil(t, got.SlotID)
		assert.Equal(t, *conflict.SlotID, *got.SlotID)
		assert.False(t, got.Resolved)
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		id := ulid.Make()
		mock.ExpectQuery(`SELECT .+ FROM conflicts`).
			WithArgs(id.String()).
			WillReturnError(pgx.ErrNoRows)

		repo := NewConflictRepository(mock)
		_, err = repo.GetByID(context.Background(), id)
		require.ErrorIs(t, err, schedule.ErrNotFound)
	})
}

func TestConflictRepository_List(t *testing.T) {
	t.Run("all conflicts", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		first := testConflict()
		second := testConflict()
		second.SlotID = nil
		second.Resolved = true
		resolvedAt := second.CreatedAt.Add(time.Hour)
		second.ResolvedAt = &resolvedAt

		rows := conflictRow(first)
		rows.AddRow(
			second.ID.String(), (*string)(nil), string(second.Type),
			second.Description, second.Resolved, second.CreatedAt, second.ResolvedAt,
		)
		mock.ExpectQuery(`SELECT .+ FROM conflicts`).WillReturnRows(rows)

		repo := NewConflictRepository(mock)
		conflicts, err := repo.List(context.Background(), false)
		require.NoError(t, err)
		require.Len(t, conflicts, 2)
		assert.Nil(t, conflicts[1].SlotID)
		assert.True(t, conflicts[1].Resolved)
	})

	t.Run("unresolved only adds filter", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		conflict := testConflict()
		mock.ExpectQuery(`SELECT .+ FROM conflicts\s+WHERE resolved = FALSE`).
			WillReturnRows(conflictRow(conflict))

		repo := NewConflictRepository(mock)
		conflicts, err := repo.List(context.Background(), true)
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConflictRepository_Update(t *testing.T) {
	t.Run("marks resolved", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		conflict := testConflict()
		require.NoError(t, conflict.Resolve(conflict.CreatedAt.Add(time.Hour)))

		mock.ExpectExec(`UPDATE conflicts`).
			WithArgs(
				conflict.ID.String(), string(conflict.Type), conflict.Description,
				conflict.Resolved, conflict.ResolvedAt,
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewConflictRepository(mock)
		require.NoError(t, repo.Update(context.Background(), conflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		conflict := testConflict()
		mock.ExpectExec(`UPDATE conflicts`).
			WithArgs(
				conflict.ID.String(), string(conflict.Type), conflict.Description,
				conflict.Resolved, conflict.ResolvedAt,
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewConflictRepository(mock)
		err = repo.Update(context.Background(), conflict)
		require.ErrorIs(t, err, schedule.ErrNotFound)
	})
}
