// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// DefaultMaxWeeklyHours is the teaching load limit applied when a profile
// does not override it.
const DefaultMaxWeeklyHours = 40

// TeacherProfile links an account with the teacher role to its teaching
// metadata. One profile per account.
type TeacherProfile struct {
	ID             ulid.ULID
	AccountID      ulid.ULID
	Code           string
	Department     string
	MaxWeeklyHours int
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTeacherProfile creates a validated TeacherProfile. A non-positive
// maxWeeklyHours falls back to DefaultMaxWeeklyHours.
func NewTeacherProfile(accountID ulid.ULID, code, department string, maxWeeklyHours int) (*TeacherProfile, error) {
	if accountID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("SCHEDULE_INVALID_TEACHER").Errorf("account ID cannot be zero")
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if maxWeeklyHours <= 0 {
		maxWeeklyHours = DefaultMaxWeeklyHours
	}

	now := time.Now()
	return &TeacherProfile{
		ID:             ulid.Make(),
		AccountID:      accountID,
		Code:           code,
		Department:     department,
		MaxWeeklyHours: maxWeeklyHours,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Availability is a weekly window in which a teacher can be scheduled.
// Windows are unique per teacher, weekday, and time range.
type Availability struct {
	ID        ulid.ULID
	TeacherID ulid.ULID
	Weekday   Weekday
	Start     TimeOfDay
	End       TimeOfDay
	CreatedAt time.Time
}

// NewAvailability creates a validated Availability window.
func NewAvailability(teacherID ulid.ULID, weekday Weekday, start, end TimeOfDay) (*Availability, error) {
	if teacherID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("SCHEDULE_INVALID_AVAILABILITY").Errorf("teacher ID cannot be zero")
	}
	if _, err := ParseWeekday(string(weekday)); err != nil {
		return nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	return &Availability{
		ID:        ulid.Make(),
		TeacherID: teacherID,
		Weekday:   weekday,
		Start:     start,
		End:       end,
		CreatedAt: time.Now(),
	}, nil
}
