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

// PlanService manages assignments, schedule slots, and conflict records.
// It validates references across repositories but performs no overlap
// detection; conflicts enter the system only as explicit records.
type PlanService struct {
	assignments AssignmentRepository
	slots       SlotRepository
	conflicts   ConflictRepository
	teachers    TeacherRepository
	groups      GroupRepository
	subjects    SubjectRepository
	rooms       RoomRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewPlanService creates a PlanService. All repositories are required.
func NewPlanService(
	assignments AssignmentRepository,
	slots SlotRepository,
	conflicts ConflictRepository,
	teachers TeacherRepository,
	groups GroupRepository,
	subjects SubjectRepository,
	rooms RoomRepository,
	logger *slog.Logger,
) (*PlanService, error) {
	for _, dep := range []struct {
		name string
		ok   bool
	}{
		{"assignment repository", assignments != nil},
		{"slot repository", slots != nil},
		{"conflict repository", conflicts != nil},
		{"teacher repository", teachers != nil},
		{"group repository", groups != nil},
		{"subject repository", subjects != nil},
		{"room repository", rooms != nil},
	} {
		if !dep.ok {
			return nil, oops.Code("SCHEDULE_NIL_DEPENDENCY").Errorf("%s is required", dep.name)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanService{
		assignments: assignments,
		slots:       slots,
		conflicts:   conflicts,
		teachers:    teachers,
		groups:      groups,
		subjects:    subjects,
		rooms:       rooms,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// CreateAssignment stores a new assignment after checking that the group,
// subject, and teacher all exist. The group+subject+term uniqueness is
// enforced by the repository.
func (s *PlanService) CreateAssignment(ctx context.Context, groupID, subjectID, teacherID ulid.ULID, term string) (*Assignment, error) {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return nil, oops.Code("SCHEDULE_ASSIGNMENT_REF").With("ref", "group").Wrap(err)
	}
	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, oops.Code("SCHEDULE_ASSIGNMENT_REF").With("ref", "subject").Wrap(err)
	}
	if _, err := s.teachers.GetByID(ctx, teacherID); err != nil {
		return nil, oops.Code("SCHEDULE_ASSIGNMENT_REF").With("ref", "teacher").Wrap(err)
	}

	assignment, err := NewAssignment(groupID, subjectID, teacherID, term)
	if err != nil {
		return nil, err
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}
	s.logger.Info("assignment created", "assignment_id", assignment.ID.String(), "term", term)
	return assignment, nil
}

// GetAssignment retrieves an assignment by id.
func (s *PlanService) GetAssignment(ctx context.Context, id ulid.ULID) (*Assignment, error) {
	return s.assignments.GetByID(ctx, id)
}

// ListAssignments lists assignments, optionally filtered to a term.
func (s *PlanService) ListAssignments(ctx context.Context, term string) ([]*Assignment, error) {
	return s.assignments.List(ctx, term)
}

// UpdateAssignment persists mutations to an existing assignment.
func (s *PlanService) UpdateAssignment(ctx context.Context, assignment *Assignment) error {
	if _, err := NewAssignment(assignment.GroupID, assignment.SubjectID, assignment.TeacherID, assignment.Term); err != nil {
		return err
	}
	assignment.UpdatedAt = s.now()
	return s.assignments.Update(ctx, assignment)
}

// DeleteAssignment removes an assignment and its slots.
func (s *PlanService) DeleteAssignment(ctx context.Context, id ulid.ULID) error {
	return s.assignments.Delete(ctx, id)
}

// CreateSlot places an assignment in a room at a weekly window after
// checking both references exist.
func (s *PlanService) CreateSlot(ctx context.Context, assignmentID, roomID ulid.ULID, weekday Weekday, start, end TimeOfDay, sessionType SessionType) (*Slot, error) {
	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		return nil, oops.Code("SCHEDULE_SLOT_REF").With("ref", "assignment").Wrap(err)
	}
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, oops.Code("SCHEDULE_SLOT_REF").With("ref", "room").Wrap(err)
	}

	slot, err := NewSlot(assignmentID, roomID, weekday, start, end, sessionType)
	if err != nil {
		return nil, err
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	s.logger.Info("slot created",
		"slot_id", slot.ID.String(),
		"weekday", string(weekday),
		"window", start.String()+"-"+end.String(),
	)
	return slot, nil
}

// GetSlot retrieves a slot by id.
func (s *PlanService) GetSlot(ctx context.Context, id ulid.ULID) (*Slot, error) {
	return s.slots.GetByID(ctx, id)
}

// ListSlotsByAssignment lists the slots of one assignment.
func (s *PlanService) ListSlotsByAssignment(ctx context.Context, assignmentID ulid.ULID) ([]*Slot, error) {
	return s.slots.ListByAssignment(ctx, assignmentID)
}

// ListSlotsByRoom lists the slots placed in one room.
func (s *PlanService) ListSlotsByRoom(ctx context.Context, roomID ulid.ULID) ([]*Slot, error) {
	return s.slots.ListByRoom(ctx, roomID)
}

// UpdateSlot persists mutations to an existing slot.
func (s *PlanService) UpdateSlot(ctx context.Context, slot *Slot) error {
	if _, err := NewSlot(slot.AssignmentID, slot.RoomID, slot.Weekday, slot.Start, slot.End, slot.SessionType); err != nil {
		return err
	}
	slot.UpdatedAt = s.now()
	return s.slots.Update(ctx, slot)
}

// DeleteSlot removes a slot. Conflict records referencing it keep their
// history with the reference cleared.
func (s *PlanService) DeleteSlot(ctx context.Context, id ulid.ULID) error {
	return s.slots.Delete(ctx, id)
}

// RecordConflict stores an operator-reported conflict record.
func (s *PlanService) RecordConflict(ctx context.Context, slotID *ulid.ULID, conflictType ConflictType, description string) (*Conflict, error) {
	if slotID != nil {
		if _, err := s.slots.GetByID(ctx, *slotID); err != nil {
			return nil, oops.Code("SCHEDULE_CONFLICT_REF").With("ref", "slot").Wrap(err)
		}
	}
	conflict, err := NewConflict(slotID, conflictType, description)
	if err != nil {
		return nil, err
	}
	if err := s.conflicts.Create(ctx, conflict); err != nil {
		return nil, err
	}
	s.logger.Info("conflict recorded",
		"conflict_id", conflict.ID.String(),
		"type", string(conflictType),
	)
	return conflict, nil
}

// GetConflict retrieves a conflict record by id.
func (s *PlanService) GetConflict(ctx context.Context, id ulid.ULID) (*Conflict, error) {
	return s.conflicts.GetByID(ctx, id)
}

// ListConflicts lists conflict records, optionally only unresolved ones.
func (s *PlanService) ListConflicts(ctx context.Context, unresolvedOnly bool) ([]*Conflict, error) {
	return s.conflicts.List(ctx, unresolvedOnly)
}

// ResolveConflict marks a conflict resolved. Resolving twice fails with
// ErrAlreadyResolved.
func (s *PlanService) ResolveConflict(ctx context.Context, id ulid.ULID) (*Conflict, error) {
	conflict, err := s.conflicts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := conflict.Resolve(s.now()); err != nil {
		return nil, err
	}
	if err := s.conflicts.Update(ctx, conflict); err != nil {
		return nil, err
	}
	s.logger.Info("conflict resolved", "conflict_id", conflict.ID.String())
	return conflict, nil
}
