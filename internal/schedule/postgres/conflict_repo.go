// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/classplan/classplan/internal/schedule"
)

// ConflictRepository implements schedule.ConflictRepository using
// PostgreSQL.
type ConflictRepository struct {
	db querier
}

// NewConflictRepository creates a new ConflictRepository.
func NewConflictRepository(db querier) *ConflictRepository {
	return &ConflictRepository{db: db}
}

const conflictColumns = `id, slot_id, conflict_type, description, resolved,
	       created_at, resolved_at`

// Create stores a new conflict record.
func (r *ConflictRepository) Create(ctx context.Context, conflict *schedule.Conflict) error {
	var slotID *string
	if conflict.SlotID != nil {
		s := conflict.SlotID.String()
		slotID = &s
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO conflicts (
			id, slot_id, conflict_type, description, resolved,
			created_at, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		conflict.ID.String(),
		slotID,
		string(conflict.Type),
		conflict.Description,
		conflict.Resolved,
		conflict.CreatedAt,
		conflict.ResolvedAt,
	)
	if err != nil {
		return oops.Code("CONFLICT_CREATE_FAILED").
			With("operation", "insert conflict").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a conflict record by identifier.
func (r *ConflictRepository) GetByID(ctx context.Context, id ulid.ULID) (*schedule.Conflict, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+conflictColumns+`
		FROM conflicts
		WHERE id = $1
	`, id.String())

	conflict, err := scanConflict(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CONFLICT_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CONFLICT_GET_FAILED").
			With("operation", "get conflict by id").
			With("id", id.String()).
			Wrap(err)
	}
	return conflict, nil
}

// List returns conflict records newest first, optionally only unresolved
// ones.
func (r *ConflictRepository) List(ctx context.Context, unresolvedOnly bool) ([]*schedule.Conflict, error) {
	query := `
		SELECT ` + conflictColumns + `
		FROM conflicts
	`
	if unresolvedOnly {
		query += ` WHERE resolved = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, oops.Code("CONFLICT_LIST_FAILED").
			With("operation", "list conflicts").
			Wrap(err)
	}

	conflicts, err := collectRows(rows, scanConflict)
	if err != nil {
		return nil, oops.Code("CONFLICT_LIST_FAILED").
			With("operation", "scan conflicts").
			Wrap(err)
	}
	return conflicts, nil
}

// Update persists mutations to an existing conflict record.
func (r *ConflictRepository) Update(ctx context.Context, conflict *schedule.Conflict) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE conflicts
		SET conflict_type = $2, description = $3, resolved = $4, resolved_at = $5
		WHERE id = $1
	`,
		conflict.ID.String(),
		string(conflict.Type),
		conflict.Description,
		conflict.Resolved,
		conflict.ResolvedAt,
	)
	if err != nil {
		return oops.Code("CONFLICT_UPDATE_FAILED").
			With("operation", "update conflict").
			With("id", conflict.ID.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("CONFLICT_NOT_FOUND").
			With("id", conflict.ID.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

func scanConflict(row pgx.Row) (*schedule.Conflict, error) {
	var (
		conflict  schedule.Conflict
		idStr     string
		slotIDStr *string
		typeStr   string
	)
	if err := row.Scan(
		&idStr,
		&slotIDStr,
		&typeStr,
		&conflict.Description,
		&conflict.Resolved,
		&conflict.CreatedAt,
		&conflict.ResolvedAt,
	); err != nil {
		return nil, err
	}

	id, err := parseID(idStr, "CONFLICT_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	conflict.ID = id
	conflict.Type = schedule.ConflictType(typeStr)
	if slotIDStr != nil {
		slotID, err := parseID(*slotIDStr, "CONFLICT_CORRUPT_ID")
		if err != nil {
			return nil, err
		}
		conflict.SlotID = &slotID
	}
	return &conflict, nil
}
