// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

// Package postgres implements the schedule repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// querier is the subset of pgxpool.Pool used by the repositories. It allows
// substituting pgxmock in unit tests.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repos bundles the PostgreSQL schedule repositories behind one pool.
type Repos struct {
	Subjects    *SubjectRepository
	Rooms       *RoomRepository
	Groups      *GroupRepository
	Teachers    *TeacherRepository
	Assignments *AssignmentRepository
	Slots       *SlotRepository
	Conflicts   *ConflictRepository
}

// NewRepos creates the full repository set on one connection pool.
func NewRepos(db querier) *Repos {
	return &Repos{
		Subjects:    NewSubjectRepository(db),
		Rooms:       NewRoomRepository(db),
		Groups:      NewGroupRepository(db),
		Teachers:    NewTeacherRepository(db),
		Assignments: NewAssignmentRepository(db),
		Slots:       NewSlotRepository(db),
		Conflicts:   NewConflictRepository(db),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func parseID(raw, code string) (ulid.ULID, error) {
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, oops.Code(code).With("id", raw).Wrap(err)
	}
	return id, nil
}

// collectRows drains rows through scan, propagating the first error.
func collectRows[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()

	var out []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
