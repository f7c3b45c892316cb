// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/classplan/classplan/internal/auth"
	"github.com/classplan/classplan/internal/auth/authtest"
	"github.com/classplan/classplan/internal/schedule/scheduletest"
)

func newCaptureCmd() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func TestSeedAdmin(t *testing.T) {
	directory := authtest.NewDirectory()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	cfg := &seedConfig{
		adminEmail:    "admin@classplan.local",
		adminPassword: "changeme123",
		adminName:     "Administrator",
	}
	cmd, buf := newCaptureCmd()

	require.NoError(t, seedAdmin(t.Context(), cmd, directory, hasher, cfg))
	assert.Contains(t, buf.String(), "created")

	account, err := directory.GetByEmail(t.Context(), "admin@classplan.local")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, account.Role)
	assert.True(t, hasher.Verify("changeme123", account.PasswordHash))

	// Second run leaves the existing account alone.
	buf.Reset()
	require.NoError(t, seedAdmin(t.Context(), cmd, directory, hasher, cfg))
	assert.Contains(t, buf.String(), "already exists")
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	repos := scheduletest.NewRepos()
	cmd, buf := newCaptureCmd()

	require.NoError(t, seedCatalog(t.Context(), cmd, repos.Subjects, repos.Rooms))
	assert.Contains(t, buf.String(), "subject MATH101 created")
	assert.Contains(t, buf.String(), "room A-101 created")

	subjects, err := repos.Subjects.List(t.Context())
	require.NoError(t, err)
	rooms, err := repos.Rooms.List(t.Context())
	require.NoError(t, err)
	subjectCount, roomCount := len(subjects), len(rooms)

	buf.Reset()
	require.NoError(t, seedCatalog(t.Context(), cmd, repos.Subjects, repos.Rooms))
	assert.Contains(t, buf.String(), "already exists")

	subjects, err = repos.Subjects.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, subjects, subjectCount)
	rooms, err = repos.Rooms.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, rooms, roomCount)
}

func TestSeed_RequiresPassword(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"seed"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin-password")
}
