// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// CatalogService manages the subject, room, and group catalogs.
type CatalogService struct {
	subjects SubjectRepository
	rooms    RoomRepository
	groups   GroupRepository
	logger   *slog.Logger
}

// NewCatalogService creates a CatalogService. All repositories are required.
func NewCatalogService(subjects SubjectRepository, rooms RoomRepository, groups GroupRepository, logger *slog.Logger) (*CatalogService, error) {
	if subjects == nil {
		return nil, oops.Code("SCHEDULE_NIL_DEPENDENCY").Errorf("subject repository is required")
	}
	if rooms == nil {
		return nil, oops.Code("SCHEDULE_NIL_DEPENDENCY").Errorf("room repository is required")
	}
	if groups == nil {
		return nil, oops.Code("SCHEDULE_NIL_DEPENDENCY").Errorf("group repository is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{subjects: subjects, rooms: rooms, groups: groups, logger: logger}, nil
}

// CreateSubject validates and stores a new subject.
func (s *CatalogService) CreateSubject(ctx context.Context, code, name string, credits, weeklyHours int, needsLab bool, requiredRoomType *RoomType, description string) (*Subject, error) {
	subject, err := NewSubject(code, name, credits, weeklyHours, needsLab, requiredRoomType, description)
	if err != nil {
		return nil, err
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}
	s.logger.Info("subject created", "subject_id", subject.ID.String(), "code", subject.Code)
	return subject, nil
}

// GetSubject retrieves a subject by id.
func (s *CatalogService) GetSubject(ctx context.Context, id ulid.ULID) (*Subject, error) {
	return s.subjects.GetByID(ctx, id)
}

// ListSubjects lists all subjects.
func (s *CatalogService) ListSubjects(ctx context.Context) ([]*Subject, error) {
	return s.subjects.List(ctx)
}

// UpdateSubject persists mutations to an existing subject after
// re-validating its fields.
func (s *CatalogService) UpdateSubject(ctx context.Context, subject *Subject) error {
	if _, err := NewSubject(subject.Code, subject.Name, subject.Credits, subject.WeeklyHours, subject.NeedsLab, subject.RequiredRoomType, subject.Description); err != nil {
		return err
	}
	subject.UpdatedAt = time.Now()
	return s.subjects.Update(ctx, subject)
}

// DeleteSubject removes a subject.
func (s *CatalogService) DeleteSubject(ctx context.Context, id ulid.ULID) error {
	return s.subjects.Delete(ctx, id)
}

// CreateRoom validates and stores a new room.
func (s *CatalogService) CreateRoom(ctx context.Context, code, name string, capacity int, roomType RoomType, building string, floor int, equipment string) (*Room, error) {
	room, err := NewRoom(code, name, capacity, roomType, building, floor, equipment)
	if err != nil {
		return nil, err
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	s.logger.Info("room created", "room_id", room.ID.String(), "code", room.Code)
	return room, nil
}

// GetRoom retrieves a room by id.
func (s *CatalogService) GetRoom(ctx context.Context, id ulid.ULID) (*Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// ListRooms lists all rooms.
func (s *CatalogService) ListRooms(ctx context.Context) ([]*Room, error) {
	return s.rooms.List(ctx)
}

// UpdateRoom persists mutations to an existing room.
func (s *CatalogService) UpdateRoom(ctx context.Context, room *Room) error {
	if _, err := NewRoom(room.Code, room.Name, room.Capacity, room.Type, room.Building, room.Floor, room.Equipment); err != nil {
		return err
	}
	room.UpdatedAt = time.Now()
	return s.rooms.Update(ctx, room)
}

// DeleteRoom removes a room.
func (s *CatalogService) DeleteRoom(ctx context.Context, id ulid.ULID) error {
	return s.rooms.Delete(ctx, id)
}

// CreateGroup validates and stores a new group.
func (s *CatalogService) CreateGroup(ctx context.Context, code, name, program string, semester int, shift Shift, studentCount int, term string) (*Group, error) {
	group, err := NewGroup(code, name, program, semester, shift, studentCount, term)
	if err != nil {
		return nil, err
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	s.logger.Info("group created", "group_id", group.ID.String(), "code", group.Code)
	return group, nil
}

// GetGroup retrieves a group by id.
func (s *CatalogService) GetGroup(ctx context.Context, id ulid.ULID) (*Group, error) {
	return s.groups.GetByID(ctx, id)
}

// ListGroups lists groups, optionally filtered to a term.
func (s *CatalogService) ListGroups(ctx context.Context, term string) ([]*Group, error) {
	return s.groups.List(ctx, term)
}

// UpdateGroup persists mutations to an existing group.
func (s *CatalogService) UpdateGroup(ctx context.Context, group *Group) error {
	if _, err := NewGroup(group.Code, group.Name, group.Program, group.Semester, group.Shift, group.StudentCount, group.Term); err != nil {
		return err
	}
	group.UpdatedAt = time.Now()
	return s.groups.Update(ctx, group)
}

// DeleteGroup removes a group.
func (s *CatalogService) DeleteGroup(ctx context.Context, id ulid.ULID) error {
	return s.groups.Delete(ctx, id)
}
