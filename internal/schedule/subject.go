// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Code validation constraints shared by subjects, rooms, groups, and
// teacher profiles.
const (
	MinCodeLength = 2
	MaxCodeLength = 20
)

// Subject is a course offered to groups.
type Subject struct {
	ID               ulid.ULID
	Code             string
	Name             string
	Credits          int
	WeeklyHours      int
	NeedsLab         bool
	RequiredRoomType *RoomType // nil when any room type will do
	Description      string
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewSubject creates a validated Subject.
func NewSubject(code, name string, credits, weeklyHours int, needsLab bool, requiredRoomType *RoomType, description string) (*Subject, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, oops.Code("SCHEDULE_INVALID_SUBJECT").Errorf("subject name cannot be empty")
	}
	if credits <= 0 {
		return nil, oops.Code("SCHEDULE_INVALID_SUBJECT").
			With("credits", credits).
			Errorf("credits must be positive")
	}
	if weeklyHours <= 0 {
		return nil, oops.Code("SCHEDULE_INVALID_SUBJECT").
			With("weekly_hours", weeklyHours).
			Errorf("weekly hours must be positive")
	}

	now := time.Now()
	return &Subject{
		ID:               ulid.Make(),
		Code:             code,
		Name:             name,
		Credits:          credits,
		WeeklyHours:      weeklyHours,
		NeedsLab:         needsLab,
		RequiredRoomType: requiredRoomType,
		Description:      description,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func validateCode(code string) error {
	if len(code) < MinCodeLength {
		return oops.Code("SCHEDULE_INVALID_CODE").
			With("code", code).
			With("min", MinCodeLength).
			Errorf("code must be at least %d characters", MinCodeLength)
	}
	if len(code) > MaxCodeLength {
		return oops.Code("SCHEDULE_INVALID_CODE").
			With("code", code).
			With("max", MaxCodeLength).
			Errorf("code must be at most %d characters", MaxCodeLength)
	}
	return nil
}
