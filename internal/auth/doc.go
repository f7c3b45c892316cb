// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

// Package auth provides authentication primitives for ClassPlan.
//
// # Domain Types
//
// Account is the stored identity: email, password hash, display name,
// role, and activity flag. Accounts should be created through NewAccount,
// which validates the email, role, and display name. Direct struct
// initialization bypasses validation and may create invalid state.
//
// # Services
//
// Service coordinates registration and login on top of three injected
// collaborators:
//   - UserDirectory - account lookup and persistence
//   - PasswordHasher - one-way salted password hashing
//   - TokenCodec - signed session token issue/verify
//
// The service never stores tokens; a session token is valid purely by
// signature and expiry, so revocation before expiry is not possible.
package auth
