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

// GroupRepository implements schedule.GroupRepository using PostgreSQL.
type GroupRepository struct {
	db querier
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(db querier) *GroupRepository {
	return &GroupRepository{db: db}
}

const groupColumns = `id, code, name, program, semester, shift, student_count,
	       term, active, created_at, updated_at`

// Create stores a new group. A unique-index collision on code is reported
// as schedule.ErrDuplicateCode.
func (r *GroupRepository) Create(ctx context.Context, group *schedule.Group) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO groups (
			id, code, name, program, semester, shift, student_count,
			term, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		group.ID.String(),
		group.Code,
		group.Name,
		group.Program,
		group.Semester,
		string(group.Shift),
		group.StudentCount,
		group.Term,
		group.Active,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("GROUP_DUPLICATE_CODE").
				With("code", group.Code).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("GROUP_CREATE_FAILED").
			With("operation", "insert group").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a group by identifier.
func (r *GroupRepository) GetByID(ctx context.Context, id ulid.ULID) (*schedule.Group, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+groupColumns+`
		FROM groups
		WHERE id = $1
	`, id.String())

	group, err := scanGroup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("GROUP_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("GROUP_GET_FAILED").
			With("operation", "get group by id").
			With("id", id.String()).
			Wrap(err)
	}
	return group, nil
}

// List returns groups ordered by code, optionally filtered to one term.
func (r *GroupRepository) List(ctx context.Context, term string) ([]*schedule.Group, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM groups
	`
	var args []any
	if term != "" {
		query += ` WHERE term = $1`
		args = append(args, term)
	}
	query += ` ORDER BY code`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.Code("GROUP_LIST_FAILED").
			With("operation", "list groups").
			Wrap(err)
	}

	groups, err := collectRows(rows, scanGroup)
	if err != nil {
		return nil, oops.Code("GROUP_LIST_FAILED").
			With("operation", "scan groups").
			Wrap(err)
	}
	return groups, nil
}

// Update persists mutations to an existing group.
func (r *GroupRepository) Update(ctx context.Context, group *schedule.Group) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE groups
		SET code = $2, name = $3, program = $4, semester = $5, shift = $6,
		    student_count = $7, term = $8, active = $9, updated_at = $10
		WHERE id = $1
	`,
		group.ID.String(),
		group.Code,
		group.Name,
		group.Program,
		group.Semester,
		string(group.Shift),
		group.StudentCount,
		group.Term,
		group.Active,
		group.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("GROUP_DUPLICATE_CODE").
				With("code", group.Code).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("GROUP_UPDATE_FAILED").
			With("operation", "update group").
			With("id", group.ID.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("GROUP_NOT_FOUND").
			With("id", group.ID.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

// Delete removes a group.
func (r *GroupRepository) Delete(ctx context.Context, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("GROUP_DELETE_FAILED").
			With("operation", "delete group").
			With("id", id.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("GROUP_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

func scanGroup(row pgx.Row) (*schedule.Group, error) {
	var (
		group    schedule.Group
		idStr    string
		shiftStr string
	)
	if err := row.Scan(
		&idStr,
		&group.Code,
		&group.Name,
		&group.Program,
		&group.Semester,
		&shiftStr,
		&group.StudentCount,
		&group.Term,
		&group.Active,
		&group.CreatedAt,
		&group.UpdatedAt,
	); err != nil {
		return nil, err
	}

	id, err := parseID(idStr, "GROUP_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	group.ID = id
	group.Shift = schedule.Shift(shiftStr)
	return &group, nil
}
