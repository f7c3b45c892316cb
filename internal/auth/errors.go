// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested account does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when registering an email that is
// already taken. The colliding registration performs no write.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials is returned by Login for unknown email, wrong
// password, and inactive account alike. The three causes are intentionally
// indistinguishable so callers cannot probe which accounts exist or are
// disabled.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Token verification failures. Verify returns exactly one of these.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)
