// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Assignment says which teacher teaches which subject to which group in a
// term. A group takes a subject at most once per term.
type Assignment struct {
	ID        ulid.ULID
	GroupID   ulid.ULID
	SubjectID ulid.ULID
	TeacherID ulid.ULID
	Term      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAssignment creates a validated Assignment.
func NewAssignment(groupID, subjectID, teacherID ulid.ULID, term string) (*Assignment, error) {
	zero := ulid.ULID{}
	if groupID.Compare(zero) == 0 {
		return nil, oops.Code("SCHEDULE_INVALID_ASSIGNMENT").Errorf("group ID cannot be zero")
	}
	if subjectID.Compare(zero) == 0 {
		return nil, oops.Code("SCHEDULE_INVALID_ASSIGNMENT").Errorf("subject ID cannot be zero")
	}
	if teacherID.Compare(zero) == 0 {
		return nil, oops.Code("SCHEDULE_INVALID_ASSIGNMENT").Errorf("teacher ID cannot be zero")
	}
	if term == "" {
		return nil, oops.Code("SCHEDULE_INVALID_ASSIGNMENT").Errorf("term cannot be empty")
	}

	now := time.Now()
	return &Assignment{
		ID:        ulid.Make(),
		GroupID:   groupID,
		SubjectID: subjectID,
		TeacherID: teacherID,
		Term:      term,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Slot places an assignment in a room at a weekly time window.
type Slot struct {
	ID           ulid.ULID
	AssignmentID ulid.ULID
	RoomID       ulid.ULID
	Weekday      Weekday
	Start        TimeOfDay
	End          TimeOfDay
	SessionType  SessionType
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSlot creates a validated Slot.
func NewSlot(assignmentID, roomID ulid.ULID, weekday Weekday, start, end TimeOfDay, sessionType SessionType) (*Slot, error) {
	zero := ulid.ULID{}
	if assignmentID.Compare(zero) == 0 {
		return nil, oops.Code("SCHEDULE_INVALID_SLOT").Errorf("assignment ID cannot be zero")
	}
	if roomID.Compare(zero) == 0 {
		return nil, oops.Code("SCHEDULE_INVALID_SLOT").Errorf("room ID cannot be zero")
	}
	if _, err := ParseWeekday(string(weekday)); err != nil {
		return nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if _, err := ParseSessionType(string(sessionType)); err != nil {
		return nil, err
	}
	if sessionType == "" {
		sessionType = SessionLecture
	}

	now := time.Now()
	return &Slot{
		ID:           ulid.Make(),
		AssignmentID: assignmentID,
		RoomID:       roomID,
		Weekday:      weekday,
		Start:        start,
		End:          end,
		SessionType:  sessionType,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
