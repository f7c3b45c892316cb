// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classplan/classplan/internal/auth"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    auth.Role
		wantErr bool
	}{
		{"admin", "admin", auth.RoleAdmin, false},
		{"coordinator", "coordinator", auth.RoleCoordinator, false},
		{"teacher", "teacher", auth.RoleTeacher, false},
		{"student", "student", auth.RoleStudent, false},
		{"empty defaults to least privileged", "", auth.RoleStudent, false},
		{"unknown role", "superuser", "", true},
		{"case sensitive", "Admin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewAccount(t *testing.T) {
	t.Run("creates active account", func(t *testing.T) {
		account, err := auth.NewAccount("a@x.com", "$2a$10$hash", "Ada", auth.RoleStudent)
		require.NoError(t, err)
		assert.True(t, account.Active)
		assert.NotZero(t, account.ID)
		assert.False(t, account.CreatedAt.IsZero())
		assert.Zero(t, account.FailedAttempts)
		assert.Nil(t, account.LockedUntil)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name        string
			email       string
			hash        string
			displayName string
			role        auth.Role
			errMsg      string
		}{
			{"empty email", "", "h", "Ada", auth.RoleStudent, "email cannot be empty"},
			{"malformed email", "not-an-email", "h", "Ada", auth.RoleStudent, "malformed email"},
			{"empty hash", "a@x.com", "", "Ada", auth.RoleStudent, "password hash cannot be empty"},
			{"empty display name", "a@x.com", "h", "", auth.RoleStudent, "display name cannot be empty"},
			{"display name too long", "a@x.com", "h", strings.Repeat("x", 101), auth.RoleStudent, "at most"},
			{"invalid role", "a@x.com", "h", "Ada", auth.Role("root"), "unknown role"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				account, err := auth.NewAccount(tt.email, tt.hash, tt.displayName, tt.role)
				require.Error(t, err)
				assert.Nil(t, account)
				assert.Contains(t, err.Error(), tt.errMsg)
			})
		}
	})
}

func TestAccount_LockoutLifecycle(t *testing.T) {
	account, err := auth.NewAccount("a@x.com", "hash", "Ada", auth.RoleStudent)
	require.NoError(t, err)

	for i := 1; i < auth.LockoutThreshold; i++ {
		account.RecordFailure()
		assert.False(t, account.IsLocked(), "should not lock below threshold")
	}

	account.RecordFailure()
	assert.True(t, account.IsLocked())
	require.NotNil(t, account.LockedUntil)
	assert.WithinDuration(t, time.Now().Add(auth.LockoutDuration), *account.LockedUntil, time.Minute)

	account.RecordSuccess()
	assert.False(t, account.IsLocked())
	assert.Zero(t, account.FailedAttempts)
}

func TestIsLockedOut(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Minute)

	assert.False(t, auth.IsLockedOut(nil))
	assert.False(t, auth.IsLockedOut(&past))
	assert.True(t, auth.IsLockedOut(&future))
}
