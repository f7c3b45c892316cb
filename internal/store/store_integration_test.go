//go:build integration

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/classplan/classplan/internal/auth"
	authpg "github.com/classplan/classplan/internal/auth/postgres"
	"github.com/classplan/classplan/internal/store"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("classplan"),
		postgres.WithUsername("classplan"),
		postgres.WithPassword("classplan"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func TestMigrator_FullCycle(t *testing.T) {
	connStr := startPostgres(t)

	migrator, err := store.NewMigrator(connStr)
	require.NoError(t, err)
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)

	require.NoError(t, migrator.Up())

	version, dirty, err = migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(4), version)
	assert.False(t, dirty)

	pending, err := migrator.PendingMigrations()
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, migrator.Steps(-1))
	version, _, err = migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(3), version)

	require.NoError(t, migrator.Steps(1))
	version, _, err = migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(4), version)

	require.NoError(t, migrator.Down())
	version, dirty, err = migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)
}

func TestConnect_AndAccountRoundtrip(t *testing.T) {
	ctx := context.Background()
	connStr := startPostgres(t)

	migrator, err := store.NewMigrator(connStr)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	pool, err := store.Connect(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	repo := authpg.NewAccountRepository(pool)

	account, err := auth.NewAccount("ops@classplan.edu", "$2a$10$hash", "Ops Admin", auth.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, account))

	got, err := repo.GetByEmail(ctx, "ops@classplan.edu")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.Equal(t, auth.RoleAdmin, got.Role)

	// Email uniqueness lives in the schema, not just the service layer.
	dup, err := auth.NewAccount("ops@classplan.edu", "$2a$10$hash", "Other", auth.RoleStudent)
	require.NoError(t, err)
	err = repo.Create(ctx, dup)
	require.ErrorIs(t, err, auth.ErrDuplicateEmail)
}

func TestConnect_BadURL(t *testing.T) {
	_, err := store.Connect(context.Background(), "not a url \x00")
	require.Error(t, err)
}
