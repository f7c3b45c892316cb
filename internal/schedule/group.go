// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Group is a cohort of students that attends classes together.
type Group struct {
	ID           ulid.ULID
	Code         string
	Name         string
	Program      string
	Semester     int
	Shift        Shift
	StudentCount int
	Term         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewGroup creates a validated Group.
func NewGroup(code, name, program string, semester int, shift Shift, studentCount int, term string) (*Group, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, oops.Code("SCHEDULE_INVALID_GROUP").Errorf("group name cannot be empty")
	}
	if semester <= 0 {
		return nil, oops.Code("SCHEDULE_INVALID_GROUP").
			With("semester", semester).
			Errorf("semester must be positive")
	}
	if _, err := ParseShift(string(shift)); err != nil {
		return nil, err
	}
	if studentCount <= 0 {
		return nil, oops.Code("SCHEDULE_INVALID_GROUP").
			With("student_count", studentCount).
			Errorf("student count must be positive")
	}
	if term == "" {
		return nil, oops.Code("SCHEDULE_INVALID_GROUP").Errorf("term cannot be empty")
	}

	now := time.Now()
	return &Group{
		ID:           ulid.Make(),
		Code:         code,
		Name:         name,
		Program:      program,
		Semester:     semester,
		Shift:        shift,
		StudentCount: studentCount,
		Term:         term,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
