// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

// Package authtest provides test helpers for authentication.
package authtest

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/classplan/classplan/internal/auth"
)

// Directory is an in-memory auth.UserDirectory for tests.
type Directory struct {
	mu       sync.RWMutex
	byID     map[ulid.ULID]*auth.Account
	byEmail  map[string]ulid.ULID
	failNext error
}

// NewDirectory creates an empty in-memory directory.
func NewDirectory() *Directory {
	return &Directory{
		byID:    make(map[ulid.ULID]*auth.Account),
		byEmail: make(map[string]ulid.ULID),
	}
}

// FailNext makes the next directory call return err instead of operating.
func (d *Directory) FailNext(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failNext = err
}

func (d *Directory) takeFailure() error {
	err := d.failNext
	d.failNext = nil
	return err
}

// GetByID retrieves a copy of the account with the given identifier.
func (d *Directory) GetByID(_ context.Context, id ulid.ULID) (*auth.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.takeFailure(); err != nil {
		return nil, err
	}
	account, ok := d.byID[id]
	if !ok {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").With("id", id.String()).Wrap(auth.ErrNotFound)
	}
	clone := *account
	return &clone, nil
}

// GetByEmail retrieves a copy of the account with the exact email.
func (d *Directory) GetByEmail(_ context.Context, email string) (*auth.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.takeFailure(); err != nil {
		return nil, err
	}
	id, ok := d.byEmail[email]
	if !ok {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").With("email", email).Wrap(auth.ErrNotFound)
	}
	clone := *d.byID[id]
	return &clone, nil
}

// Create stores a new account, enforcing email uniqueness.
func (d *Directory) Create(_ context.Context, account *auth.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.takeFailure(); err != nil {
		return err
	}
	if _, ok := d.byEmail[account.Email]; ok {
		return oops.Code("ACCOUNT_DUPLICATE_EMAIL").
			With("email", account.Email).
			Wrap(auth.ErrDuplicateEmail)
	}
	clone := *account
	d.byID[clone.ID] = &clone
	d.byEmail[clone.Email] = clone.ID
	return nil
}

// Update replaces a stored account.
func (d *Directory) Update(_ context.Context, account *auth.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.takeFailure(); err != nil {
		return err
	}
	if _, ok := d.byID[account.ID]; !ok {
		return oops.Code("ACCOUNT_NOT_FOUND").With("id", account.ID.String()).Wrap(auth.ErrNotFound)
	}
	clone := *account
	d.byID[clone.ID] = &clone
	return nil
}

// SetActive flips the activity flag directly, standing in for the
// administrative action that is out of scope for the auth service.
func (d *Directory) SetActive(id ulid.ULID, active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if account, ok := d.byID[id]; ok {
		account.Active = active
	}
}
