// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package auth

import (
	"context"
	"net/mail"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Role is a privilege level governing which operations an account may invoke.
type Role string

// The closed set of roles. RoleStudent is the least privileged and is the
// default for accounts registered without an explicit role.
const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleTeacher     Role = "teacher"
	RoleStudent     Role = "student"
)

// DefaultRole is assigned when registration omits the role.
const DefaultRole = RoleStudent

// Display name validation constraints.
const (
	MinDisplayNameLength = 1
	MaxDisplayNameLength = 100
)

// ParseRole validates a role string against the closed set.
// An empty string resolves to DefaultRole.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return DefaultRole, nil
	case RoleAdmin, RoleCoordinator, RoleTeacher, RoleStudent:
		return Role(s), nil
	}
	return "", oops.Code("AUTH_INVALID_ROLE").
		With("role", s).
		Errorf("unknown role %q", s)
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Account represents a stored identity.
type Account struct {
	ID             ulid.ULID
	Email          string
	PasswordHash   string
	DisplayName    string
	Role           Role
	Active         bool
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount creates a validated Account with the given password hash.
// The account is created active; deactivation is an administrative action
// outside this package.
func NewAccount(email, passwordHash, displayName string, role Role) (*Account, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, oops.Code("AUTH_INVALID_HASH").Errorf("password hash cannot be empty")
	}
	if err := ValidateDisplayName(displayName); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, oops.Code("AUTH_INVALID_ROLE").
			With("role", string(role)).
			Errorf("unknown role %q", string(role))
	}

	now := time.Now()
	return &Account{
		ID:           ulid.Make(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsLocked returns true if the account is currently locked out after
// repeated login failures.
func (a *Account) IsLocked() bool {
	return IsLockedOut(a.LockedUntil)
}

// RecordFailure increments the failure counter and sets lockout if the
// threshold is reached.
func (a *Account) RecordFailure() {
	a.FailedAttempts++
	a.LockedUntil = ComputeLockoutTime(a.FailedAttempts)
	a.UpdatedAt = time.Now()
}

// RecordSuccess resets the failure counter and lockout.
func (a *Account) RecordSuccess() {
	a.FailedAttempts = 0
	a.LockedUntil = nil
	a.UpdatedAt = time.Now()
}

// ValidateEmail validates the login identifier. Emails are stored
// case-sensitively and compared exactly as stored.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email cannot be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return oops.Code("AUTH_INVALID_EMAIL").
			With("email", email).
			Errorf("malformed email address")
	}
	return nil
}

// ValidateDisplayName validates the free-text display name.
func ValidateDisplayName(name string) error {
	if len(name) < MinDisplayNameLength {
		return oops.Code("AUTH_INVALID_DISPLAY_NAME").Errorf("display name cannot be empty")
	}
	if len(name) > MaxDisplayNameLength {
		return oops.Code("AUTH_INVALID_DISPLAY_NAME").
			With("max", MaxDisplayNameLength).
			Errorf("display name must be at most %d characters", MaxDisplayNameLength)
	}
	return nil
}

// UserDirectory is the account store consumed by the authentication
// service and the access guard. Any storage engine satisfying this
// interface is substitutable; reads must reflect the latest committed
// state so deactivation and role changes take effect on the next request.
type UserDirectory interface {
	// GetByID retrieves an account by its identifier.
	// Returns an error wrapping ErrNotFound if no account matches.
	GetByID(ctx context.Context, id ulid.ULID) (*Account, error)

	// GetByEmail retrieves an account by its exact email.
	// Returns an error wrapping ErrNotFound if no account matches.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// Create stores a new account. Returns an error wrapping
	// ErrDuplicateEmail if the email is already taken.
	Create(ctx context.Context, account *Account) error

	// Update persists mutations to an existing account (login
	// throttling counters, hash upgrades).
	Update(ctx context.Context, account *Account) error
}
