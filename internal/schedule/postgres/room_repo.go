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

// RoomRepository implements schedule.RoomRepository using PostgreSQL.
type RoomRepository struct {
	db querier
}

// NewRoomRepository creates a new RoomRepository.
func NewRoomRepository(db querier) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomColumns = `id, code, name, capacity, room_type, building, floor,
	       equipment, active, created_at, updated_at`

// Create stores a new room. A unique-index collision on code is reported
// as schedule.ErrDuplicateCode.
func (r *RoomRepository) Create(ctx context.Context, room *schedule.Room) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rooms (
			id, code, name, capacity, room_type, building, floor,
			equipment, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		room.ID.String(),
		room.Code,
		room.Name,
		room.Capacity,
		string(room.Type),
		room.Building,
		room.Floor,
		room.Equipment,
		room.Active,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("ROOM_DUPLICATE_CODE").
				With("code", room.Code).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("ROOM_CREATE_FAILED").
			With("operation", "insert room").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a room by identifier.
func (r *RoomRepository) GetByID(ctx context.Context, id ulid.ULID) (*schedule.Room, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+roomColumns+`
		FROM rooms
		WHERE id = $1
	`, id.String())

	room, err := scanRoom(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ROOM_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ROOM_GET_FAILED").
			With("operation", "get room by id").
			With("id", id.String()).
			Wrap(err)
	}
	return room, nil
}

// List returns all rooms ordered by code.
func (r *RoomRepository) List(ctx context.Context) ([]*schedule.Room, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+roomColumns+`
		FROM rooms
		ORDER BY code
	`)
	if err != nil {
		return nil, oops.Code("ROOM_LIST_FAILED").
			With("operation", "list rooms").
			Wrap(err)
	}

	rooms, err := collectRows(rows, scanRoom)
	if err != nil {
		return nil, oops.Code("ROOM_LIST_FAILED").
			With("operation", "scan rooms").
			Wrap(err)
	}
	return rooms, nil
}

// Update persists mutations to an existing room.
func (r *RoomRepository) Update(ctx context.Context, room *schedule.Room) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE rooms
		SET code = $2, name = $3, capacity = $4, room_type = $5, building = $6,
		    floor = $7, equipment = $8, active = $9, updated_at = $10
		WHERE id = $1
	`,
		room.ID.String(),
		room.Code,
		room.Name,
		room.Capacity,
		string(room.Type),
		room.Building,
		room.Floor,
		room.Equipment,
		room.Active,
		room.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("ROOM_DUPLICATE_CODE").
				With("code", room.Code).
				Wrap(schedule.ErrDuplicateCode)
		}
		return oops.Code("ROOM_UPDATE_FAILED").
			With("operation", "update room").
			With("id", room.ID.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("ROOM_NOT_FOUND").
			With("id", room.ID.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

// Delete removes a room.
func (r *RoomRepository) Delete(ctx context.Context, id ulid.ULID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("ROOM_DELETE_FAILED").
			With("operation", "delete room").
			With("id", id.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("ROOM_NOT_FOUND").
			With("id", id.String()).
			Wrap(schedule.ErrNotFound)
	}
	return nil
}

func scanRoom(row pgx.Row) (*schedule.Room, error) {
	var (
		room    schedule.Room
		idStr   string
		typeStr string
	)
	if err := row.Scan(
		&idStr,
		&room.Code,
		&room.Name,
		&room.Capacity,
		&typeStr,
		&room.Building,
		&room.Floor,
		&room.Equipment,
		&room.Active,
		&room.CreatedAt,
		&room.UpdatedAt,
	); err != nil {
		return nil, err
	}

	id, err := parseID(idStr, "ROOM_CORRUPT_ID")
	if err != nil {
		return nil, err
	}
	room.ID = id
	room.Type = schedule.RoomType(typeStr)
	return &room, nil
}
