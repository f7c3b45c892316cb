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

// TeacherRepository implements schedule.TeacherRepository using PostgreSQL.
type TeacherRepository struct {
	db querier
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(db querier) *TeacherRepository {
	return &TeacherRepository{db: db}
}

const teacherColumns = `id, account_id, code, department, max_weekly_hours,
	       active, created_at, updated_at`

const availabilityColumns = `id, teacher_id, weekday, start_minute, end_minute, created_at`

// Create stores a new teacher profile. A unique-index collision on code
// or account is reported as schedule.ErrDuplicateCode.
func (r *TeacherRepository) Create(ctx context.Context, profile *schedule.TeacherProfile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO teacher_profiles (
			id, account_id, code, department, max_weekly_hours,
			active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		profile.ID.String(),
		profile.AccountID.String(),
		profile.Code,
		profile.Department,
		profile.MaxWeeklyHours,
		profile.Active,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("TEACHER_DUPLICATE").
				With("code", profile.Code).
				With("account_id", profile.AccountID.String()).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("TEACHER_CREATE_FAILED").
			With("operation", "insert teacher profile").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a teacher profile by identifier.
func (r *TeacherRepository) GetByID(ctx context.Context, id ulid.ULID) (*schedule.TeacherProfile, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+teacherColumns+`
		FROM teacher_profiles
		WHERE id = $1
	`, id.String())

	profile, err := scanTeacher(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("TEACHER_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("TEACHER_GET_FAILED").
			With("operation", "get teacher profile by id").
			With("id", id.String()).
			Wrap(err)
	}
	return profile, nil
}

// GetByAccountID retrieves the profile attached to an account.
func (r *TeacherRepository) GetByAccountID(ctx context.Context, accountID ulid.ULID) (*schedule.TeacherProfile, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+teacherColumns+`
		FROM teacher_profiles
		WHERE account_id = $1
	`, accountID.String())

	profile, err := scanTeacher(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("TEACHER_NOT_FOUND").
			With("account_id", accountID.String()).
			Wrap(schedule.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("TEACHER_GET_FAILED").
			With("operation", "get teacher profile by account").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	return profile, nil
}

// List returns all teacher profiles ordered by code.
func (r *TeacherRepository) List(ctx context.Context) ([]*schedule.TeacherProfile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+teacherColumns+`
		FROM teacher_profiles
		ORDER BY code
	`)
	if err != nil {
		return nil, oops.Code("TEACHER_LIST_FAILED").
			With("operation", "list teacher profiles").
			Wrap(err)
	}

	profiles, err := collectRows(rows, scanTeacher)
	if err != nil {
		return nil, oops.Code("TEACHER_LIST_FAILED").
			With("operation", "scan teacher profiles").
			Wrap(err)
	}
	return profiles, nil
}

// Update persists mutations to an existing teacher profile.
func (r *TeacherRepository) Update(ctx context.Context, profile *schedule.TeacherProfile) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE teacher_profiles
		SET code = $2, department = $3, max_weekly_hours = $4, active = $5,
		    updated_at = $6
		WHERE id = $1
	`,
		profile.ID.String(),
		profile.Code,
		profile.Department,
		profile.MaxWeeklyHours,
		profile.Active,
		profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("TEACHER_DUPLICATE").
				With("code", profile.Code).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("TEACHER_UPDATE_FAILED").
			With("operation", "update teacher profile").
			With("id", profile.ID.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("TEACHER_NOT_FOUND").
			With("id", profile.ID.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

// Delete removes a teacher profile. Availability windows cascade in the
// schema.
func (r *TeacherRepository) Delete(ctx context.Context, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teacher_profiles WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("TEACHER_DELETE_FAILED").
			With("operation", "delete teacher profile").
			With("id", id.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("TEACHER_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

// AddAvailability stores a weekly availability window. A duplicate window
// for the same teacher is reported as schedule.ErrDuplicateCode.
func (r *TeacherRepository) AddAvailability(ctx context.Context, window *schedule.Availability) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO teacher_availability (
			id, teacher_id, weekday, start_minute, end_minute, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`,
		window.ID.String(),
		window.TeacherID.String(),
		string(window.Weekday),
		int(window.Start),
		int(window.End),
		window.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("AVAILABILITY_DUPLICATE").
				With("teacher_id", window.TeacherID.String()).
				With("weekday", string(window.Weekday)).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("AVAILABILITY_CREATE_FAILED").
			With("operation", "insert availability window").
			Wrap(err)
	}
	return nil
}

// ListAvailability returns one teacher's windows ordered by weekday and start.
func (r *TeacherRepository) ListAvailability(ctx context.Context, teacherID ulid.ULID) ([]*schedule.Availability, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+availabilityColumns+`
		FROM teacher_availability
		WHERE teacher_id = $1
		ORDER BY weekday, start_minute
	`, teacherID.String())
	if err != nil {
		return nil, oops.Code("AVAILABILITY_LIST_FAILED").
			With("operation", "list availability windows").
			With("teacher_id", teacherID.String()).
			Wrap(err)
	}

	windows, err := collectRows(rows, scanAvailability)
	if err != nil {
		return nil, oops.Code("AVAILABILITY_LIST_FAILED").
			With("operation", "scan availability windows").
			With("teacher_id", teacherID.String()).
			Wrap(err)
	}
	return windows, nil
}

// RemoveAvailability deletes a window by identifier.
func (r *TeacherRepository) RemoveAvailability(ctx context.Context, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teacher_availability WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("AVAILABILITY_DELETE_FAILED").
			With("operation", "delete availability window").
			With("id", id.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("AVAILABILITY_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

func scanTeacher(row pgx.Row) (*schedule.TeacherProfile, error) {
	var (
		profile      schedule.TeacherProfile
		idStr        string
		accountIDStr string
	)
	if err := row.Scan(
		&idStr,
		&accountIDStr,
		&profile.Code,
		&profile.Department,
		&profile.MaxWeeklyHours,
		&profile.Active,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}

	id, err := parseID(idStr, "TEACHER_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	accountID, err := parseID(accountIDStr, "TEACHER_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	profile.ID = id
	profile.AccountID = accountID
	return &profile, nil
}

func scanAvailability(row pgx.Row) (*schedule.Availability, error) {
	var (
		window       schedule.Availability
		idStr        string
		teacherIDStr string
		weekdayStr   string
		start, end   int
	)
	if err := row.Scan(
		&idStr,
		&teacherIDStr,
		&weekdayStr,
		&start,
		&end,
		&window.CreatedAt,
	); err != nil {
		return nil, err
	}

	id, err := parseID(idStr, "AVAILABILITY_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	teacherID, err := parseID(teacherIDStr, "AVAILABILITY_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	window.ID = id
	window.TeacherID = teacherID
	window.Weekday = schedule.Weekday(weekdayStr)
	window.Start = schedule.TimeOfDay(start)
	window.End = schedule.TimeOfDay(end)
	return &window, nil
}
