// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

// Package access provides per-request authorization for ClassPlan.
//
// The Guard resolves the caller's identity from a presented session token
// and enforces activity and role requirements before a protected operation
// executes. The caller's role is read from the live directory record, not
// from the token claims, so a role downgrade or deactivation takes effect
// on the next request rather than at token expiry.
package access

import (
	"context"
	"errors"
	"slices"

	"github.com/samber/oops"

	"github.com/classplan/classplan/internal/auth"
)

// Terminal guard outcomes.
var (
	// ErrUnauthenticated covers a missing/invalid/expired token and a
	// token subject that no longer exists in the directory.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrAccountDisabled is returned for a valid token whose account has
	// been deactivated. Distinct from ErrUnauthenticated so callers can
	// message appropriately.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrForbidden is returned when the caller's role is not in the
	// operation's required role set.
	ErrForbidden = errors.New("insufficient role")
)

// Requirement is the minimal role set a protected operation demands.
// An empty role list admits any authenticated active account.
type Requirement struct {
	name  string
	roles []auth.Role
}

// The three standard requirements.
var (
	// AnyAuthenticated admits every authenticated active account.
	AnyAuthenticated = Requirement{name: "any"}

	// AdminOnly admits administrators.
	AdminOnly = Requirement{name: "admin", roles: []auth.Role{auth.RoleAdmin}}

	// CoordinatorOrAdmin admits administrators and coordinators.
	CoordinatorOrAdmin = Requirement{name: "coordinator", roles: []auth.Role{auth.RoleAdmin, auth.RoleCoordinator}}
)

// Name identifies the requirement in logs.
func (r Requirement) Name() string { return r.name }

// Satisfied reports whether the role meets the requirement.
func (r Requirement) Satisfied(role auth.Role) bool {
	return len(r.roles) == 0 || slices.Contains(r.roles, role)
}

// Guard authenticates requests and enforces role requirements.
type Guard struct {
	directory auth.UserDirectory
	tokens    *auth.TokenCodec
}

// NewGuard creates a Guard. Both dependencies are required.
func NewGuard(directory auth.UserDirectory, tokens *auth.TokenCodec) (*Guard, error) {
	if directory == nil {
		return nil, oops.Code("ACCESS_NIL_DEPENDENCY").Errorf("user directory is required")
	}
	if tokens == nil {
		return nil, oops.Code("ACCESS_NIL_DEPENDENCY").Errorf("token codec is required")
	}
	return &Guard{directory: directory, tokens: tokens}, nil
}

// Authenticate verifies the presented token and re-resolves the live
// account from the directory. This is a single pass with terminal
// outcomes: any verification failure or an unknown subject yields
// ErrUnauthenticated, an inactive account yields ErrAccountDisabled.
//
// The directory lookup on every request bounds the staleness window for
// deactivation and role changes to the next request instead of token
// expiry, at the cost of one lookup per request.
func (g *Guard) Authenticate(ctx context.Context, token string) (*auth.Account, error) {
	if token == "" {
		return nil, oops.Code("ACCESS_NO_TOKEN").Wrap(ErrUnauthenticated)
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, oops.Code("ACCESS_TOKEN_REJECTED").Wrap(ErrUnauthenticated)
	}

	subject, err := claims.SubjectID()
	if err != nil {
		return nil, oops.Code("ACCESS_TOKEN_REJECTED").Wrap(ErrUnauthenticated)
	}

	account, err := g.directory.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			// A deleted or unknown subject is treated as never
			// authenticated, not as a server error.
			return nil, oops.Code("ACCESS_SUBJECT_GONE").Wrap(ErrUnauthenticated)
		}
		return nil, oops.Code("ACCESS_RESOLVE_FAILED").
			With("operation", "get account by id").
			Wrap(err)
	}

	if !account.Active {
		return nil, oops.Code("ACCESS_ACCOUNT_DISABLED").
			With("account_id", account.ID.String()).
			Wrap(ErrAccountDisabled)
	}

	return account, nil
}

// Require checks the account's live role against the requirement.
func (g *Guard) Require(account *auth.Account, req Requirement) error {
	if account == nil {
		return oops.Code("ACCESS_NO_ACCOUNT").Wrap(ErrUnauthenticated)
	}
	if !req.Satisfied(account.Role) {
		return oops.Code("ACCESS_FORBIDDEN").
			With("account_id", account.ID.String()).
			With("role", string(account.Role)).
			With("required", req.Name()).
			Wrap(ErrForbidden)
	}
	return nil
}
