// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateCode is returned when creating an entity whose unique code
// (or unique combination, for assignments and availability windows) is
// already taken.
var ErrDuplicateCode = errors.New("code already in use")

// ErrAlreadyResolved is returned when resolving a conflict twice.
var ErrAlreadyResolved = errors.New("conflict already resolved")
