// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import (
	"fmt"

	"github.com/samber/oops"
)

// Weekday is a teaching day. Sunday is not a teaching day.
type Weekday string

// Teaching days.
const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// ParseWeekday validates a weekday string.
func ParseWeekday(s string) (Weekday, error) {
	switch Weekday(s) {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday:
		return Weekday(s), nil
	}
	return "", oops.Code("SCHEDULE_INVALID_WEEKDAY").
		With("weekday", s).
		Errorf("unknown weekday %q", s)
}

// SessionType classifies how a slot is taught.
type SessionType string

// Session types.
const (
	SessionLecture  SessionType = "lecture"
	SessionPractice SessionType = "practice"
	SessionLab      SessionType = "lab"
)

// ParseSessionType validates a session type string. Empty defaults to lecture.
func ParseSessionType(s string) (SessionType, error) {
	switch SessionType(s) {
	case "":
		return SessionLecture, nil
	case SessionLecture, SessionPractice, SessionLab:
		return SessionType(s), nil
	}
	return "", oops.Code("SCHEDULE_INVALID_SESSION_TYPE").
		With("session_type", s).
		Errorf("unknown session type %q", s)
}

// RoomType classifies rooms and the room requirements of subjects.
type RoomType string

// Room types.
const (
	RoomClassroom   RoomType = "classroom"
	RoomLaboratory  RoomType = "laboratory"
	RoomAuditorium  RoomType = "auditorium"
	RoomComputerLab RoomType = "computer_lab"
)

// ParseRoomType validates a room type string.
func ParseRoomType(s string) (RoomType, error) {
	switch RoomType(s) {
	case RoomClassroom, RoomLaboratory, RoomAuditorium, RoomComputerLab:
		return RoomType(s), nil
	}
	return "", oops.Code("SCHEDULE_INVALID_ROOM_TYPE").
		With("room_type", s).
		Errorf("unknown room type %q", s)
}

// Shift is the part of the day a group attends.
type Shift string

// Shifts.
const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftEvening   Shift = "evening"
)

// ParseShift validates a shift string.
func ParseShift(s string) (Shift, error) {
	switch Shift(s) {
	case ShiftMorning, ShiftAfternoon, ShiftEvening:
		return Shift(s), nil
	}
	return "", oops.Code("SCHEDULE_INVALID_SHIFT").
		With("shift", s).
		Errorf("unknown shift %q", s)
}

// ConflictType categorizes a recorded scheduling conflict.
type ConflictType string

// Conflict categories.
const (
	ConflictTeacherBusy      ConflictType = "teacher_busy"
	ConflictRoomBusy         ConflictType = "room_busy"
	ConflictGroupBusy        ConflictType = "group_busy"
	ConflictCapacityExceeded ConflictType = "capacity_exceeded"
)

// ParseConflictType validates a conflict type string.
func ParseConflictType(s string) (ConflictType, error) {
	switch ConflictType(s) {
	case ConflictTeacherBusy, ConflictRoomBusy, ConflictGroupBusy, ConflictCapacityExceeded:
		return ConflictType(s), nil
	}
	return "", oops.Code("SCHEDULE_INVALID_CONFLICT_TYPE").
		With("conflict_type", s).
		Errorf("unknown conflict type %q", s)
}

// TimeOfDay is minutes since midnight. It maps to a SMALLINT column and
// renders as "HH:MM" on the wire.
type TimeOfDay int

// minutesPerDay bounds a TimeOfDay value.
const minutesPerDay = 24 * 60

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hours, &minutes); err != nil {
		return 0, oops.Code("SCHEDULE_INVALID_TIME").
			With("time", s).
			Errorf("time must be HH:MM")
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, oops.Code("SCHEDULE_INVALID_TIME").
			With("time", s).
			Errorf("time out of range")
	}
	return TimeOfDay(hours*60 + minutes), nil
}

// Valid reports whether the value is inside a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

// String renders the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON renders the time as a JSON "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON parses a JSON "HH:MM" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return oops.Code("SCHEDULE_INVALID_TIME").Errorf("time must be a string")
	}
	parsed, err := ParseTimeOfDay(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// validateWindow enforces the shared start/end invariant for slots and
// availability windows.
func validateWindow(start, end TimeOfDay) error {
	if !start.Valid() || !end.Valid() {
		return oops.Code("SCHEDULE_INVALID_TIME").Errorf("time out of range")
	}
	if end <= start {
		return oops.Code("SCHEDULE_INVALID_WINDOW").
			With("start", start.String()).
			With("end", end.String()).
			Errorf("end time must be after start time")
	}
	return nil
}
