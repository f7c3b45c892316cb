// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package schedule_test

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classplan/classplan/internal/schedule"
	"github.com/classplan/classplan/internal/schedule/scheduletest"
)

func newCatalog(t *testing.T) (*schedule.CatalogService, *scheduletest.Repos) {
	t.Helper()
	repos := scheduletest.NewRepos()
	svc, err := schedule.NewCatalogService(repos.Subjects, repos.Rooms, repos.Groups, nil)
	require.NoError(t, err)
	return svc, repos
}

func TestNewCatalogService_RequiresRepositories(t *testing.T) {
	repos := scheduletest.NewRepos()

	_, err := schedule.NewCatalogService(nil, repos.Rooms, repos.Groups, nil)
	assert.Error(t, err)
	_, err = schedule.NewCatalogService(repos.Subjects, nil, repos.Groups, nil)
	assert.Error(t, err)
	_, err = schedule.NewCatalogService(repos.Subjects, repos.Rooms, nil, nil)
	assert.Error(t, err)
}

func TestCatalogService_Subjects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	lab := schedule.RoomLaboratory
	subject, err := svc.CreateSubject(ctx, "QUI101", "Chemistry I", 6, 4, true, &lab, "")
	require.NoError(t, err)
	assert.True(t, subject.Active)

	t.Run("duplicate code rejected", func(t *testing.T) {
		_, err := svc.CreateSubject(ctx, "QUI101", "Chemistry II", 6, 4, false, nil, "")
		require.ErrorIs(t, err, schedule.ErrDuplicateCode)
	})

	t.Run("invalid fields rejected", func(t *testing.T) {
		_, err := svc.CreateSubject(ctx, "Q", "Short code", 6, 4, false, nil, "")
		assert.Error(t, err)
		_, err = svc.CreateSubject(ctx, "QUI102", "", 6, 4, false, nil, "")
		assert.Error(t, err)
		_, err = svc.CreateSubject(ctx, "QUI102", "Chemistry II", 0, 4, false, nil, "")
		assert.Error(t, err)
	})

	t.Run("get and list", func(t *testing.T) {
		got, err := svc.GetSubject(ctx, subject.ID)
		require.NoError(t, err)
		assert.Equal(t, "QUI101", got.Code)

		all, err := svc.ListSubjects(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("update revalidates and bumps timestamp", func(t *testing.T) {
		subject.Credits = 8
		before := subject.UpdatedAt
		require.NoError(t, svc.UpdateSubject(ctx, subject))
		assert.True(t, subject.UpdatedAt.After(before) || subject.UpdatedAt.Equal(before))

		subject.Credits = -1
		assert.Error(t, svc.UpdateSubject(ctx, subject))
	})

	t.Run("delete", func(t *testing.T) {
		subject.Credits = 8
		require.NoError(t, svc.DeleteSubject(ctx, subject.ID))
		_, err := svc.GetSubject(ctx, subject.ID)
		require.ErrorIs(t, err, schedule.ErrNotFound)
	})
}

func TestCatalogService_Rooms(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	room, err := svc.CreateRoom(ctx, "B-204", "Physics Lab", 30, schedule.RoomLaboratory, "B", 2, "fume hoods")
	require.NoError(t, err)

	_, err = svc.CreateRoom(ctx, "B-204", "Another", 20, schedule.RoomClassroom, "B", 2, "")
	require.ErrorIs(t, err, schedule.ErrDuplicateCode)

	_, err = svc.CreateRoom(ctx, "B-205", "No capacity", 0, schedule.RoomClassroom, "B", 2, "")
	assert.Error(t, err)

	_, err = svc.CreateRoom(ctx, "B-206", "Bad type", 20, schedule.RoomType("gym"), "B", 2, "")
	assert.Error(t, err)

	got, err := svc.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.RoomLaboratory, got.Type)

	require.NoError(t, svc.DeleteRoom(ctx, room.ID))
	_, err = svc.GetRoom(ctx, room.ID)
	require.ErrorIs(t, err, schedule.ErrNotFound)
}

func TestCatalogService_Groups(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	spring, err := svc.CreateGroup(ctx, "CS-3A", "Computer Science 3A", "Computer Science", 3, schedule.ShiftMorning, 28, "2026-1")
	require.NoError(t, err)
	_, err = svc.CreateGroup(ctx, "CS-3B", "Computer Science 3B", "Computer Science", 3, schedule.ShiftAfternoon, 25, "2026-2")
	require.NoError(t, err)

	t.Run("list filters by term", func(t *testing.T) {
		all, err := svc.ListGroups(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		filtered, err := svc.ListGroups(ctx, "2026-1")
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, spring.ID, filtered[0].ID)
	})

	t.Run("program is optional", func(t *testing.T) {
		group, err := svc.CreateGroup(ctx, "CS-3D", "Computer Science 3D", "", 3, schedule.ShiftEvening, 22, "2026-1")
		require.NoError(t, err)
		assert.Empty(t, group.Program)
	})

	t.Run("invalid shift rejected", func(t *testing.T) {
		_, err := svc.CreateGroup(ctx, "CS-3C", "Computer Science 3C", "Computer Science", 3, schedule.Shift("night"), 25, "2026-1")
		assert.Error(t, err)
	})

	t.Run("unknown group on get", func(t *testing.T) {
		_, err := svc.GetGroup(ctx, ulid.Make())
		require.ErrorIs(t, err, schedule.ErrNotFound)
	})
}
