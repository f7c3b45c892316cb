// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Conflict is a categorized record of a scheduling problem. Nothing in
// this system produces conflicts automatically; they are recorded by
// operators and tracked until resolved. The slot reference is optional
// and survives slot deletion.
type Conflict struct {
	ID          ulid.ULID
	SlotID      *ulid.ULID
	Type        ConflictType
	Description string
	Resolved    bool
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

// NewConflict creates a validated Conflict record.
func NewConflict(slotID *ulid.ULID, conflictType ConflictType, description string) (*Conflict, error) {
	if slotID != nil && slotID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("SCHEDULE_INVALID_CONFLICT").Errorf("slot ID cannot be zero when provided")
	}
	if _, err := ParseConflictType(string(conflictType)); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, oops.Code("SCHEDULE_INVALID_CONFLICT").Errorf("description cannot be empty")
	}

	return &Conflict{
		ID:          ulid.Make(),
		SlotID:      slotID,
		Type:        conflictType,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

// Resolve marks the conflict resolved at the given instant.
func (c *Conflict) Resolve(at time.Time) error {
	if c.Resolved {
		return oops.Code("SCHEDULE_CONFLICT_RESOLVED").
			With("id", c.ID.String()).
			Wrap(ErrAlreadyResolved)
	}
	c.Resolved = true
	c.ResolvedAt = &at
	return nil
}
