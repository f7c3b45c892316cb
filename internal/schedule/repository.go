// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// SubjectRepository stores subjects.
type SubjectRepository interface {
	Create(ctx context.Context, subject *Subject) error
	GetByID(ctx context.Context, id ulid.ULID) (*Subject, error)
	List(ctx context.Context) ([]*Subject, error)
	Update(ctx context.Context, subject *Subject) error
	Delete(ctx context.Context, id ulid.ULID) error
}

// RoomRepository stores rooms.
type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id ulid.ULID) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id ulid.ULID) error
}

// GroupRepository stores groups.
type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id ulid.ULID) (*Group, error)
	List(ctx context.Context, term string) ([]*Group, error)
	Update(ctx context.Context, group *Group) error
	Delete(ctx context.Context, id ulid.ULID) error
}

// TeacherRepository stores teacher profiles and availability windows.
type TeacherRepository interface {
	Create(ctx context.Context, profile *TeacherProfile) error
	GetByID(ctx context.Context, id ulid.ULID) (*TeacherProfile, error)
	GetByAccountID(ctx context.Context, accountID ulid.ULID) (*TeacherProfile, error)
	List(ctx context.Context) ([]*TeacherProfile, error)
	Update(ctx context.Context, profile *TeacherProfile) error
	Delete(ctx context.Context, id ulid.ULID) error

	AddAvailability(ctx context.Context, window *Availability) error
	ListAvailability(ctx context.Context, teacherID ulid.ULID) ([]*Availability, error)
	RemoveAvailability(ctx context.Context, id ulid.ULID) error
}

// AssignmentRepository stores assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *Assignment) error
	GetByID(ctx context.Context, id ulid.ULID) (*Assignment, error)
	List(ctx context.Context, term string) ([]*Assignment, error)
	Update(ctx context.Context, assignment *Assignment) error
	Delete(ctx context.Context, id ulid.ULID) error
}

// SlotRepository stores schedule slots.
type SlotRepository interface {
	Create(ctx context.Context, slot *Slot) error
	GetByID(ctx context.Context, id ulid.ULID) (*Slot, error)
	ListByAssignment(ctx context.Context, assignmentID ulid.ULID) ([]*Slot, error)
	ListByRoom(ctx context.Context, roomID ulid.ULID) ([]*Slot, error)
	Update(ctx context.Context, slot *Slot) error
	Delete(ctx context.Context, id ulid.ULID) error
}

// ConflictRepository stores conflict records.
type ConflictRepository interface {
	Create(ctx context.Context, conflict *Conflict) error
	GetByID(ctx context.Context, id ulid.ULID) (*Conflict, error)
	List(ctx context.Context, unresolvedOnly bool) ([]*Conflict, error)
	Update(ctx context.Context, conflict *Conflict) error
}
