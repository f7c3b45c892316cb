// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

// Package scheduletest provides in-memory repositories for tests.
package scheduletest

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/classplan/classplan/internal/schedule"
)

// Repos bundles in-memory implementations of every schedule repository.
type Repos struct {
	Subjects    *SubjectRepo
	Rooms       *RoomRepo
	Groups      *GroupRepo
	Teachers    *TeacherRepo
	Assignments *AssignmentRepo
	Slots       *SlotRepo
	Conflicts   *ConflictRepo
}

// NewRepos creates an empty repository set.
func NewRepos() *Repos {
	return &Repos{
		Subjects:    &SubjectRepo{items: map[ulid.ULID]*schedule.Subject{}},
		Rooms:       &RoomRepo{items: map[ulid.ULID]*schedule.Room{}},
		Groups:      &GroupRepo{items: map[ulid.ULID]*schedule.Group{}},
		Teachers:    &TeacherRepo{items: map[ulid.ULID]*schedule.TeacherProfile{}, windows: map[ulid.ULID]*schedule.Availability{}},
		Assignments: &AssignmentRepo{items: map[ulid.ULID]*schedule.Assignment{}},
		Slots:       &SlotRepo{items: map[ulid.ULID]*schedule.Slot{}},
		Conflicts:   &ConflictRepo{items: map[ulid.ULID]*schedule.Conflict{}},
	}
}

func notFound(id ulid.ULID) error {
	return oops.Code("SCHEDULE_NOT_FOUND").With("id", id.String()).Wrap(schedule.ErrNotFound)
}

func duplicate(code string) error {
	return oops.Code("SCHEDULE_DUPLICATE").With("code", code).Wrap(schedule.ErrDuplicateCode)
}

// SubjectRepo is an in-memory schedule.SubjectRepository.
type SubjectRepo struct {
	mu    sync.RWMutex
	items map[ulid.ULID]*schedule.Subject
}

// Create stores a subject, enforcing code uniqueness.
func (r *SubjectRepo) Create(_ context.Context, subject *schedule.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Code == subject.Code {
			return duplicate(subject.Code)
		}
	}
	clone := *subject
	r.items[clone.ID] = &clone
	return nil
}

// GetByID retrieves a subject.
func (r *SubjectRepo) GetByID(_ context.Context, id ulid.ULID) (*schedule.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, notFound(id)
	}
	clone := *item
	return &clone, nil
}

// List returns all subjects.
func (r *SubjectRepo) List(_ context.Context) ([]*schedule.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*schedule.Subject, 0, len(r.items))
	for _, item := range r.items {
		clone := *item
		out = append(out, &clone)
	}
	return out, nil
}

// Update replaces a stored subject.
func (r *SubjectRepo) Update(_ context.Context, subject *schedule.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[subject.ID]; !ok {
		return notFound(subject.ID)
	}
	clone := *subject
	r.items[clone.ID] = &clone
	return nil
}

// Delete removes a subject.
func (r *SubjectRepo) Delete(_ context.Context, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound(id)
	}
	delete(r.items, id)
	return nil
}

// RoomRepo is an in-memory schedule.RoomRepository.
type RoomRepo struct {
	mu    sync.RWMutex
	items map[ulid.ULID]*schedule.Room
}

// Create stores a room, enforcing code uniqueness.
func (r *RoomRepo) Create(_ context.Context, room *schedule.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Code == room.Code {
			return duplicate(room.Code)
		}
	}
	clone := *room
	r.items[clone.ID] = &clone
	return nil
}

// GetByID retrieves a room.
func (r *RoomRepo) GetByID(_ context.Context, id ulid.ULID) (*schedule.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, notFound(id)
	}
	clone := *item
	return &clone, nil
}

// List returns all rooms.
func (r *RoomRepo) List(_ context.Context) ([]*schedule.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*schedule.Room, 0, len(r.items))
	for _, item := range r.items {
		clone := *item
		out = append(out, &clone)
	}
	return out, nil
}

// Update replaces a stored room.
func (r *RoomRepo) Update(_ context.Context, room *schedule.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[room.ID]; !ok {
		return notFound(room.ID)
	}
	clone := *room
	r.items[clone.ID] = &clone
	return nil
}

// Delete removes a room.
func (r *RoomRepo) Delete(_ context.Context, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound(id)
	}
	delete(r.items, id)
	return nil
}

// GroupRepo is an in-memory schedule.GroupRepository.
type GroupRepo struct {
	mu    sync.RWMutex
	items map[ulid.ULID]*schedule.Group
}

// Create stores a group, enforcing code uniqueness.
func (r *GroupRepo) Create(_ context.Context, group *schedule.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Code == group.Code {
			return duplicate(group.Code)
		}
	}
	clone := *group
	r.items[clone.ID] = &clone
	return nil
}

// GetByID retrieves a group.
func (r *GroupRepo) GetByID(_ context.Context, id ulid.ULID) (*schedule.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, notFound(id)
	}
	clone := *item
	return &clone, nil
}

// List returns groups, optionally filtered to a term.
func (r *GroupRepo) List(_ context.Context, term string) ([]*schedule.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*schedule.Group, 0, len(r.items))
	for _, item := range r.items {
		if term != "" && item.Term != term {
			continue
		}
		clone := *item
		out = append(out, &clone)
	}
	return out, nil
}

// Update replaces a stored group.
func (r *GroupRepo) Update(_ context.Context, group *schedule.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[group.ID]; !ok {
		return notFound(group.ID)
	}
	clone := *group
	r.items[clone.ID] = &clone
	return nil
}

// Delete removes a group.
func (r *GroupRepo) Delete(_ context.Context, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound(id)
	}
	delete(r.items, id)
	return nil
}

// TeacherRepo is an in-memory schedule.TeacherRepository.
type TeacherRepo struct {
	mu      sync.RWMutex
	items   map[ulid.ULID]*schedule.TeacherProfile
	windows map[ulid.ULID]*schedule.Availability
}

// Create stores a profile, enforcing code and account uniqueness.
func (r *TeacherRepo) Create(_ context.Context, profile *schedule.TeacherProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Code == profile.Code || existing.AccountID == profile.AccountID {
			return duplicate(profile.Code)
		}
	}
	clone := *profile
	r.items[clone.ID] = &clone
	return nil
}

// GetByID retrieves a profile.
func (r *TeacherRepo) GetByID(_ context.Context, id ulid.ULID) (*schedule.TeacherProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, notFound(id)
	}
	clone := *item
	return &clone, nil
}

// GetByAccountID retrieves the profile attached to an account.
func (r *TeacherRepo) GetByAccountID(_ context.Context, accountID ulid.ULID) (*schedule.TeacherProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.AccountID == accountID {
			clone := *item
			return &clone, nil
		}
	}
	return nil, notFound(accountID)
}

// List returns all profiles.
func (r *TeacherRepo) List(_ context.Context) ([]*schedule.TeacherProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*schedule.TeacherProfile, 0, len(r.items))
	for _, item := range r.items {
		clone := *item
		out = append(out, &clone)
	}
	return out, nil
}

// Update replaces a stored profile.
func (r *TeacherRepo) Update(_ context.Context, profile *schedule.TeacherProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[profile.ID]; !ok {
		return notFound(profile.ID)
	}
	clone := *profile
	r.items[clone.ID] = &clone
	return nil
}

// Delete removes a profile and its windows.
func (r *TeacherRepo) Delete(_ context.Context, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound(id)
	}
	delete(r.items, id)
	for windowID, window := range r.windows {
		if window.TeacherID == id {
			delete(r.windows, windowID)
		}
	}
	return nil
}

// AddAvailability stores a window, enforcing window uniqueness.
func (r *TeacherRepo) AddAvailability(_ context.Context, window *schedule.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.windows {
		if existing.TeacherID == window.TeacherID &&
			existing.Weekday == window.Weekday &&
			existing.Start == window.Start &&
			existing.End == window.End {
			return duplicate(string(window.Weekday))
		}
	}
	clone := *window
	r.windows[clone.ID] = &clone
	return nil
}

// ListAvailability returns a teacher's windows.
func (r *TeacherRepo) ListAvailability(_ context.Context, teacherID ulid.ULID) ([]*schedule.Availability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*schedule.Availability, 0)
	for _, window := range r.windows {
		if window.TeacherID == teacherID {
			clone := *window
			out = append(out, &clone)
		}
	}
	return out, nil
}

// RemoveAvailability deletes a window.
func (r *TeacherRepo) RemoveAvailability(_ context.Context, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.windows[id]; !ok {
		return notFound(id)
	}
	delete(r.windows, id)
	return nil
}

// AssignmentRepo is an in-memory schedule.AssignmentRepository.
type AssignmentRepo struct {
	mu    sync.RWMutex
	items map[ulid.ULID]*schedule.Assignment
}

// Create stores an assignment, enforcing group+subject+term uniqueness.
func (r *AssignmentRepo) Create(_ context.Context, assignment *schedule.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.GroupID == assignment.GroupID &&
			existing.SubjectID == assignment.SubjectID &&
			existing.Term == assignment.Term {
			return duplicate(assignment.Term)
		}
	}
	clone := *assignment
	r.items[clone.ID] = &clone
	return nil
}

// GetByID retrieves an assignment.
func (r *AssignmentRepo) GetByID(_ context.Context, id ulid.ULID) (*schedule.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, notFound(id)
	}
	clone := *item
	return &clone, nil
}

// List returns assignments, optionally filtered to a term.
func (r *AssignmentRepo) List(_ context.Context, term string) ([]*schedule.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*schedule.Assignment, 0, len(r.items))
	for _, item := range r.items {
		if term != "" && item.Term != term {
			continue
		}
		clone := *item
		out = append(out, &clone)
	}
	return out, nil
}

// Update replaces a stored assignment.
func (r *AssignmentRepo) Update(_ context.Context, assignment *schedule.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[assignment.ID]; !ok {
		return notFound(assignment.ID)
	}
	clone := *assignment
	r.items[clone.ID] = &clone
	return nil
}

// Delete removes an assignment.
func (r *AssignmentRepo) Delete(_ context.Context, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound(id)
	}
	delete(r.items, id)
	return nil
}

// SlotRepo is an in-memory schedule.SlotRepository.
type SlotRepo struct {
	mu    sync.RWMutex
	items map[ulid.ULID]*schedule.Slot
}

// Create stores a slot.
func (r *SlotRepo) Create(_ context.Context, slot *schedule.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *slot
	r.items[clone.ID] = &clone
	return nil
}

// GetByID retrieves a slot.
func (r *SlotRepo) GetByID(_ context.Context, id ulid.ULID) (*schedule.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, notFound(id)
	}
	clone := *item
	return &clone, nil
}

// ListByAssignment returns the slots of one assignment.
func (r *SlotRepo) ListByAssignment(_ context.Context, assignmentID ulid.ULID) ([]*schedule.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*schedule.Slot, 0)
	for _, item := range r.items {
		if item.AssignmentID == assignmentID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

// ListByRoom returns the slots placed in one room.
func (r *SlotRepo) ListByRoom(_ context.Context, roomID ulid.ULID) ([]*schedule.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*schedule.Slot, 0)
	for _, item := range r.items {
		if item.RoomID == roomID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

// Update replaces a stored slot.
func (r *SlotRepo) Update(_ context.Context, slot *schedule.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[slot.ID]; !ok {
		return notFound(slot.ID)
	}
	clone := *slot
	r.items[clone.ID] = &clone
	return nil
}

// Delete removes a slot.
func (r *SlotRepo) Delete(_ context.Context, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound(id)
	}
	delete(r.items, id)
	return nil
}

// ConflictRepo is an in-memory schedule.ConflictRepository.
type ConflictRepo struct {
	mu    sync.RWMutex
	items map[ulid.ULID]*schedule.Conflict
}

// Create stores a conflict record.
func (r *ConflictRepo) Create(_ context.Context, conflict *schedule.Conflict) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *conflict
	r.items[clone.ID] = &clone
	return nil
}

// GetByID retrieves a conflict record.
func (r *ConflictRepo) GetByID(_ context.Context, id ulid.ULID) (*schedule.Conflict, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, notFound(id)
	}
	clone := *item
	return &clone, nil
}

// List returns conflict records, optionally only unresolved ones.
func (r *ConflictRepo) List(_ context.Context, unresolvedOnly bool) ([]*schedule.Conflict, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*schedule.Conflict, 0, len(r.items))
	for _, item := range r.items {
		if unresolvedOnly && item.Resolved {
			continue
		}
		clone := *item
		out = append(out, &clone)
	}
	return out, nil
}

// Update replaces a stored conflict record.
func (r *ConflictRepo) Update(_ context.Context, conflict *schedule.Conflict) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[conflict.ID]; !ok {
		return notFound(conflict.ID)
	}
	clone := *conflict
	r.items[clone.ID] = &clone
	return nil
}
