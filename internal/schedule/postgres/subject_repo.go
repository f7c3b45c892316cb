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

// SubjectRepository implements schedule.SubjectRepository using PostgreSQL.
type SubjectRepository struct {
	db querier
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(db querier) *SubjectRepository {
	return &SubjectRepository{db: db}
}

const subjectColumns = `id, code, name, credits, weekly_hours, needs_lab,
	       required_room_type, description, active, created_at, updated_at`

// Create stores a new subject. A unique-index collision on code is
// reported as schedule.ErrDuplicateCode.
func (r *SubjectRepository) Create(ctx context.Context, subject *schedule.Subject) error {
	var roomType *string
	if subject.RequiredRoomType != nil {
		s := string(*subject.RequiredRoomType)
		roomType = &s
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO subjects (
			id, code, name, credits, weekly_hours, needs_lab,
			required_room_type, description, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		subject.ID.String(),
		subject.Code,
		subject.Name,
		subject.Credits,
		subject.WeeklyHours,
		subject.NeedsLab,
		roomType,
		subject.Description,
		subject.Active,
		subject.CreatedAt,
		subject.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("SUBJECT_DUPLICATE_CODE").
				With("code", subject.Code).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("SUBJECT_CREATE_FAILED").
			With("operation", "insert subject").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a subject by identifier.
func (r *SubjectRepository) GetByID(ctx context.Context, id ulid.ULID) (*schedule.Subject, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+subjectColumns+`
		FROM subjects
		WHERE id = $1
	`, id.String())

	subject, err := scanSubject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("SUBJECT_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("SUBJECT_GET_FAILED").
			With("operation", "get subject by id").
			With("id", id.String()).
			Wrap(err)
	}
	return subject, nil
}

// List returns all subjects ordered by code.
func (r *SubjectRepository) List(ctx context.Context) ([]*schedule.Subject, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+subjectColumns+`
		FROM subjects
		ORDER BY code
	`)
	if err != nil {
		return nil, oops.Code("SUBJECT_LIST_FAILED").
			With("operation", "list subjects").
			Wrap(err)
	}

	subjects, err := collectRows(rows, scanSubject)
	if err != nil {
		return nil, oops.Code("SUBJECT_LIST_FAILED").
			With("operation", "scan subjects").
			Wrap(err)
	}
	return subjects, nil
}

// Update persists mutations to an existing subject.
func (r *SubjectRepository) Update(ctx context.Context, subject *schedule.Subject) error {
	var roomType *string
	if subject.RequiredRoomType != nil {
		s := string(*subject.RequiredRoomType)
		roomType = &s
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE subjects
		SET code = $2, name = $3, credits = $4, weekly_hours = $5, needs_lab = $6,
		    required_room_type = $7, description = $8, active = $9, updated_at = $10
		WHERE id = $1
	`,
		subject.ID.String(),
		subject.Code,
		subject.Name,
		subject.Credits,
		subject.WeeklyHours,
		subject.NeedsLab,
		roomType,
		subject.Description,
		subject.Active,
		subject.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("SUBJECT_DUPLICATE_CODE").
				With("code", subject.Code).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("SUBJECT_UPDATE_FAILED").
			With("operation", "update subject").
			With("id", subject.ID.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("SUBJECT_NOT_FOUND").
			With("id", subject.ID.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

// Delete removes a subject.
func (r *SubjectRepository) Delete(ctx context.Context, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("SUBJECT_DELETE_FAILED").
			With("operation", "delete subject").
			With("id", id.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("SUBJECT_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

func scanSubject(row pgx.Row) (*schedule.Subject, error) {
	var (
		subject  schedule.Subject
		idStr    string
		roomType *string
	)
	if err := row.Scan(
		&idStr,
		&subject.Code,
		&subject.Name,
		&subject.Credits,
		&subject.WeeklyHours,
		&subject.NeedsLab,
		&roomType,
		&subject.Description,
		&subject.Active,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	); err != nil {
		return nil, err
	}

	id, err := parseID(idStr, "SUBJECT_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	subject.ID = id
	if roomType != nil {
		rt := schedule.RoomType(*roomType)
		subject.RequiredRoomType = &rt
	}
	return &subject, nil
}
