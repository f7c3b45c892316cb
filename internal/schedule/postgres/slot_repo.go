// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/classplan/classplan/internal/schedule"
)

// SlotRepository implements schedule.SlotRepository using PostgreSQL.
type SlotRepository struct {
	db querier
}

// NewSlotRepository creates a new SlotRepository.
func NewSlotRepository(db querier) *SlotRepository {
	return &SlotRepository{db: db}
}

const slotColumns = `id, assignment_id, room_id, weekday, start_minute,
	       end_minute, session_type, active, created_at, updated_at`

// Create stores a new slot.
func (r *SlotRepository) Create(ctx context.Context, slot *schedule.Slot) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO slots (
			id, assignment_id, room_id, weekday, start_minute,
			end_minute, session_type, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		slot.ID.String(),
		slot.AssignmentID.String(),
		slot.RoomID.String(),
		string(slot.Weekday),
		int(slot.Start),
		int(slot.End),
		string(slot.SessionType),
		slot.Active,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		return oops.Code("SLOT_CREATE_FAILED").
			With("operation", "insert slot").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a slot by identifier.
func (r *SlotRepository) GetByID(ctx context.Context, id ulid.ULID) (*schedule.Slot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE id = $1
	`, id.String())

	slot, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("SLOT_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("SLOT_GET_FAILED").
			With("operation", "get slot by id").
			With("id", id.String()).
			Wrap(err)
	}
	return slot, nil
}

// ListByAssignment returns the slots of one assignment ordered by weekday
// and start.
func (r *SlotRepository) ListByAssignment(ctx context.Context, assignmentID ulid.ULID) ([]*schedule.Slot, error) {
	return r.list(ctx, `assignment_id`, assignmentID)
}

// ListByRoom returns the slots placed in one room ordered by weekday and
// start.
func (r *SlotRepository) ListByRoom(ctx context.Context, roomID ulid.ULID) ([]*schedule.Slot, error) {
	return r.list(ctx, `room_id`, roomID)
}

func (r *SlotRepository) list(ctx context.Context, column string, id ulid.ULID) ([]*schedule.Slot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE `+column+` = $1
		ORDER BY weekday, start_minute
	`, id.String())
	if err != nil {
		return nil, oops.Code("SLOT_LIST_FAILED").
			With("operation", "list slots").
			With(column, id.String()).
			Wrap(err)
	}

	slots, err := collectRows(rows, scanSlot)
	if err != nil {
		return nil, oops.Code("SLOT_LIST_FAILED").
			With("operation", "scan slots").
			With(column, id.String()).
			Wrap(err)
	}
	return slots, nil
}

// Update persists mutations to an existing slot.
func (r *SlotRepository) Update(ctx context.Context, slot *schedule.Slot) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE slots
		SET room_id = $2, weekday = $3, start_minute = $4, end_minute = $5,
		    session_type = $6, active = $7, updated_at = $8
		WHERE id = $1
	`,
		slot.ID.String(),
		slot.RoomID.String(),
		string(slot.Weekday),
		int(slot.Start),
		int(slot.End),
		string(slot.SessionType),
		slot.Active,
		slot.UpdatedAt,
	)
	if err != nil {
		return oops.Code("SLOT_UPDATE_FAILED").
			With("operation", "update slot").
			With("id", slot.ID.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("SLOT_NOT_FOUND").
			With("id", slot.ID.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

// Delete removes a slot. Conflict references are set null in the schema.
func (r *SlotRepository) Delete(ctx context.Context, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM slots WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("SLOT_DELETE_FAILED").
			With("operation", "delete slot").
			With("id", id.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("SLOT_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

func scanSlot(row pgx.Row) (*schedule.Slot, error) {
	var (
		slot            schedule.Slot
		idStr           string
		assignmentIDStr string
		roomIDStr       string
		weekdayStr      string
		sessionTypeStr  string
		start, end      int
	)
	if err := row.Scan(
		&idStr,
		&assignmentIDStr,
		&roomIDStr,
		&weekdayStr,
		&start,
		&end,
		&sessionTypeStr,
		&slot.Active,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	); err != nil {
		return nil, err
	}

	id, err := parseID(idStr, "SLOT_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	assignmentID, err := parseID(assignmentIDStr, "SLOT_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	roomID, err := parseID(roomIDStr, "SLOT_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	slot.ID = id
	slot.AssignmentID = assignmentID
	slot.RoomID = roomID
	slot.Weekday = schedule.Weekday(weekdayStr)
	slot.Start = schedule.TimeOfDay(start)
	slot.End = schedule.TimeOfDay(end)
	slot.SessionType = schedule.SessionType(sessionTypeStr)
	return &slot, nil
}
