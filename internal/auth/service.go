// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// dummyPasswordHash is verified against when the email does not resolve to
// an account, so that lookup misses cost the same as a real verification.
// This is NOT a real credential; the verification result is discarded.
//
//nolint:gosec // G101: intentionally fake digest for timing attack prevention, not a credential.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service orchestrates registration and login.
type Service struct {
	directory UserDirectory
	hasher    PasswordHasher
	tokens    *TokenCodec
	logger    *slog.Logger
}

// NewService creates a Service. All dependencies are required.
func NewService(directory UserDirectory, hasher PasswordHasher, tokens *TokenCodec) (*Service, error) {
	return NewServiceWithLogger(directory, hasher, tokens, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger.
func NewServiceWithLogger(directory UserDirectory, hasher PasswordHasher, tokens *TokenCodec, logger *slog.Logger) (*Service, error) {
	if directory == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("user directory is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("token codec is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_NIL_DEPENDENCY").Errorf("logger is required")
	}
	return &Service{
		directory: directory,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}, nil
}

// Register creates a new active account with a hashed password. A colliding
// email fails with ErrDuplicateEmail and performs no write; a collision
// racing past the pre-check is caught by the directory's unique constraint
// and reported the same way.
func (s *Service) Register(ctx context.Context, email, password, displayName string, role Role) (*Account, error) {
	_, err := s.directory.GetByEmail(ctx, email)
	if err == nil {
		return nil, oops.Code("AUTH_DUPLICATE_EMAIL").
			With("email", email).
			Wrap(ErrDuplicateEmail)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "get account by email").
			Wrap(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	account, err := NewAccount(email, hash, displayName, role)
	if err != nil {
		return nil, err
	}

	if err := s.directory.Create(ctx, account); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, oops.Code("AUTH_DUPLICATE_EMAIL").
				With("email", email).
				Wrap(ErrDuplicateEmail)
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create account").
			Wrap(err)
	}

	s.logger.Info("account registered",
		"account_id", account.ID.String(),
		"role", string(account.Role),
	)
	return account, nil
}

// Login verifies the credentials and issues a signed session token carrying
// the account's identifier, email, and role. Unknown email, wrong password,
// and inactive account all fail with ErrInvalidCredentials; a lockout after
// repeated failures surfaces the same way.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	account, lookupErr := s.directory.GetByEmail(ctx, email)

	// Verify against a dummy digest when the account is absent so response
	// time does not reveal which emails exist.
	targetHash := dummyPasswordHash
	if lookupErr == nil {
		targetHash = account.PasswordHash
	} else if !errors.Is(lookupErr, ErrNotFound) {
		return "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get account by email").
			Wrap(lookupErr)
	}

	valid := s.hasher.Verify(password, targetHash)

	if account == nil || !valid {
		if account != nil {
			account.RecordFailure()
			_ = s.directory.Update(ctx, account) //nolint:errcheck // best effort
		}
		return "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	// Lockout and activity checks run after password verification to keep
	// response time uniform across the failure causes.
	if account.IsLocked() {
		return "", oops.Code("AUTH_ACCOUNT_LOCKED").
			With("locked_until", account.LockedUntil).
			Wrap(ErrInvalidCredentials)
	}
	if !account.Active {
		return "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	account.RecordSuccess()
	_ = s.directory.Update(ctx, account) //nolint:errcheck // best effort, login succeeds regardless

	token, err := s.tokens.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		return "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	s.logger.Info("login succeeded", "account_id", account.ID.String())
	return token, nil
}
