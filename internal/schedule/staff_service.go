// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/classplan/classplan/internal/auth"
)

// StaffService manages teacher profiles and their availability windows.
// It consults the user directory to enforce that a profile can only be
// attached to an account holding the teacher role.
type StaffService struct {
	teachers  TeacherRepository
	directory auth.UserDirectory
	logger    *slog.Logger
}

// NewStaffService creates a StaffService.
func NewStaffService(teachers TeacherRepository, directory auth.UserDirectory, logger *slog.Logger) (*StaffService, error) {
	if teachers == nil {
		return nil, oops.Code("SCHEDULE_NIL_DEPENDENCY").Errorf("teacher repository is required")
	}
	if directory == nil {
		return nil, oops.Code("SCHEDULE_NIL_DEPENDENCY").Errorf("user directory is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StaffService{teachers: teachers, directory: directory, logger: logger}, nil
}

// CreateProfile attaches a teaching profile to an account. The account
// must exist and hold the teacher role.
func (s *StaffService) CreateProfile(ctx context.Context, accountID ulid.ULID, code, department string, maxWeeklyHours int) (*TeacherProfile, error) {
	account, err := s.directory.GetByID(ctx, accountID)
	if err != nil {
		return nil, oops.Code("SCHEDULE_TEACHER_ACCOUNT").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	if account.Role != auth.RoleTeacher {
		return nil, oops.Code("SCHEDULE_NOT_A_TEACHER").
			With("account_id", accountID.String()).
			With("role", string(account.Role)).
			Errorf("account role must be teacher")
	}

	profile, err := NewTeacherProfile(accountID, code, department, maxWeeklyHours)
	if err != nil {
		return nil, err
	}
	if err := s.teachers.Create(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("teacher profile created",
		"teacher_id", profile.ID.String(),
		"account_id", accountID.String(),
	)
	return profile, nil
}

// GetProfile retrieves a profile by id.
func (s *StaffService) GetProfile(ctx context.Context, id ulid.ULID) (*TeacherProfile, error) {
	return s.teachers.GetByID(ctx, id)
}

// GetProfileByAccount retrieves the profile attached to an account.
func (s *StaffService) GetProfileByAccount(ctx context.Context, accountID ulid.ULID) (*TeacherProfile, error) {
	return s.teachers.GetByAccountID(ctx, accountID)
}

// ListProfiles lists all teacher profiles.
func (s *StaffService) ListProfiles(ctx context.Context) ([]*TeacherProfile, error) {
	return s.teachers.List(ctx)
}

// UpdateProfile persists mutations to an existing profile.
func (s *StaffService) UpdateProfile(ctx context.Context, profile *TeacherProfile) error {
	if _, err := NewTeacherProfile(profile.AccountID, profile.Code, profile.Department, profile.MaxWeeklyHours); err != nil {
		return err
	}
	profile.UpdatedAt = time.Now()
	return s.teachers.Update(ctx, profile)
}

// DeleteProfile removes a profile and its availability windows.
func (s *StaffService) DeleteProfile(ctx context.Context, id ulid.ULID) error {
	return s.teachers.Delete(ctx, id)
}

// AddAvailability records a weekly availability window for a teacher.
func (s *StaffService) AddAvailability(ctx context.Context, teacherID ulid.ULID, weekday Weekday, start, end TimeOfDay) (*Availability, error) {
	if _, err := s.teachers.GetByID(ctx, teacherID); err != nil {
		return nil, err
	}
	window, err := NewAvailability(teacherID, weekday, start, end)
	if err != nil {
		return nil, err
	}
	if err := s.teachers.AddAvailability(ctx, window); err != nil {
		return nil, err
	}
	return window, nil
}

// ListAvailability lists a teacher's availability windows.
func (s *StaffService) ListAvailability(ctx context.Context, teacherID ulid.ULID) ([]*Availability, error) {
	return s.teachers.ListAvailability(ctx, teacherID)
}

// RemoveAvailability deletes an availability window.
func (s *StaffService) RemoveAvailability(ctx context.Context, id ulid.ULID) error {
	return s.teachers.RemoveAvailability(ctx, id)
}
