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

// AssignmentRepository implements schedule.AssignmentRepository using
// PostgreSQL.
type AssignmentRepository struct {
	db querier
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(db querier) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentColumns = `id, group_id, subject_id, teacher_id, term,
	       created_at, updated_at`

// Create stores a new assignment. A collision on the group, subject, and
// term unique index is reported as schedule.ErrDuplicateCode.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *schedule.Assignment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO assignments (
			id, group_id, subject_id, teacher_id, term, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		assignment.ID.String(),
		assignment.GroupID.String(),
		assignment.SubjectID.String(),
		assignment.TeacherID.String(),
		assignment.Term,
		assignment.CreatedAt,
		assignment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("ASSIGNMENT_DUPLICATE").
				With("group_id", assignment.GroupID.String()).
				With("subject_id", assignment.SubjectID.String()).
				With("term", assignment.Term).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("ASSIGNMENT_CREATE_FAILED").
			With("operation", "insert assignment").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an assignment by identifier.
func (r *AssignmentRepository) GetByID(ctx context.Context, id ulid.ULID) (*schedule.Assignment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignments
		WHERE id = $1
	`, id.String())

	assignment, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ASSIGNMENT_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ASSIGNMENT_GET_FAILED").
			With("operation", "get assignment by id").
			With("id", id.String()).
			Wrap(err)
	}
	return assignment, nil
}

// List returns assignments, optionally filtered to one term.
func (r *AssignmentRepository) List(ctx context.Context, term string) ([]*schedule.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
	`
	var args []any
	if term != "" {
		query += ` WHERE term = $1`
		args = append(args, term)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.Code("ASSIGNMENT_LIST_FAILED").
			With("operation", "list assignments").
			Wrap(err)
	}

	assignments, err := collectRows(rows, scanAssignment)
	if err != nil {
		return nil, oops.Code("ASSIGNMENT_LIST_FAILED").
			With("operation", "scan assignments").
			Wrap(err)
	}
	return assignments, nil
}

// Update persists mutations to an existing assignment.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *schedule.Assignment) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE assignments
		SET group_id = $2, subject_id = $3, teacher_id = $4, term = $5,
		    updated_at = $6
		WHERE id = $1
	`,
		assignment.ID.String(),
		assignment.GroupID.String(),
		assignment.SubjectID.String(),
		assignment.TeacherID.String(),
		assignment.Term,
		assignment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("ASSIGNMENT_DUPLICATE").
				With("group_id", assignment.GroupID.String()).
				With("subject_id", assignment.SubjectID.String()).
				With("term", assignment.Term).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("ASSIGNMENT_UPDATE_FAILED").
			With("operation", "update assignment").
			With("id", assignment.ID.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("ASSIGNMENT_NOT_FOUND").
			With("id", assignment.ID.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

// Delete removes an assignment. Slots cascade in the schema.
func (r *AssignmentRepository) Delete(ctx context.Context, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("ASSIGNMENT_DELETE_FAILED").
			With("operation", "delete assignment").
			With("id", id.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("ASSIGNMENT_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

func scanAssignment(row pgx.Row) (*schedule.Assignment, error) {
	var (
		assignment   schedule.Assignment
		idStr        string
		groupIDStr   string
		subjectIDStr string
		teacherIDStr string
	)
	if err := row.Scan(
		&idStr,
		&groupIDStr,
		&subjectIDStr,
		&teacherIDStr,
		&assignment.Term,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	); err != nil {
		return nil, err
	}

	id, err := parseID(idStr, "ASSIGNMENT_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	groupID, err := parseID(groupIDStr, "ASSIGNMENT_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	subjectID, err := parseID(subjectIDStr, "ASSIGNMENT_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	teacherID, err := parseID(teacherIDStr, "ASSIGNMENT_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	assignment.ID = id
	assignment.GroupID = groupID
	assignment.SubjectID = subjectID
	assignment.TeacherID = teacherID
	return &assignment, nil
}
