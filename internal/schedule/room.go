// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Room is a physical teaching space.
type Room struct {
	ID        ulid.ULID
	Code      string
	Name      string
	Capacity  int
	Type      RoomType
	Building  string
	Floor     int
	Equipment string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRoom creates a validated Room.
func NewRoom(code, name string, capacity int, roomType RoomType, building string, floor int, equipment string) (*Room, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, oops.Code("SCHEDULE_INVALID_ROOM").Errorf("room name cannot be empty")
	}
	if capacity <= 0 {
		return nil, oops.Code("SCHEDULE_INVALID_ROOM").
			With("capacity", capacity).
			Errorf("capacity must be positive")
	}
	if _, err := ParseRoomType(string(roomType)); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Room{
		ID:        ulid.Make(),
		Code:      code,
		Name:      name,
		Capacity:  capacity,
		Type:      roomType,
		Building:  building,
		Floor:     floor,
		Equipment: equipment,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
