// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/classplan/classplan/internal/auth"
	authpg "github.com/classplan/classplan/internal/auth/postgres"
	"github.com/classplan/classplan/internal/schedule"
	schedulepg "github.com/classplan/classplan/internal/schedule/postgres"
	"github.com/classplan/classplan/internal/store"
)

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	databaseURL   string
	adminEmail    string
	adminPassword string
	adminName     string
	withCatalog   bool
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with an admin account",
		Long: `Create an initial admin account, and optionally a small sample
catalog. Existing entries are left untouched, so the command is safe
to run repeatedly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), cfg, cmd)
		},
	}

	cmd.Flags().StringVar(&cfg.databaseURL, "database-url", "", "PostgreSQL connection URL (default: CLASSPLAN_DATABASE_URL)")
	cmd.Flags().StringVar(&cfg.adminEmail, "admin-email", "admin@classplan.local", "admin account email")
	cmd.Flags().StringVar(&cfg.adminPassword, "admin-password", "", "admin account password")
	cmd.Flags().StringVar(&cfg.adminName, "admin-name", "Administrator", "admin display name")
	cmd.Flags().BoolVar(&cfg.withCatalog, "with-catalog", false, "also seed a sample catalog")

	return cmd
}

func runSeed(ctx context.Context, cfg *seedConfig, cmd *cobra.Command) error {
	if cfg.adminPassword == "" {
		return errors.New("--admin-password is required")
	}

	url, err := resolveDatabaseURL(cfg.databaseURL)
	if err != nil {
		return err
	}

	pool, err := store.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer pool.Close()

	directory := authpg.NewAccountRepository(pool)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	if err := seedAdmin(ctx, cmd, directory, hasher, cfg); err != nil {
		return err
	}
	if cfg.withCatalog {
		repos := schedulepg.NewRepos(pool)
		if err := seedCatalog(ctx, cmd, repos.Subjects, repos.Rooms); err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, cmd *cobra.Command, directory auth.UserDirectory, hasher auth.PasswordHasher, cfg *seedConfig) error {
	hash, err := hasher.Hash(cfg.adminPassword)
	if err != nil {
		return err
	}

	account, err := auth.NewAccount(cfg.adminEmail, hash, cfg.adminName, auth.RoleAdmin)
	if err != nil {
		return err
	}

	switch err := directory.Create(ctx, account); {
	case err == nil:
		cmd.Printf("admin account %s created\n", cfg.adminEmail)
	case errors.Is(err, auth.ErrDuplicateEmail):
		cmd.Printf("admin account %s already exists\n", cfg.adminEmail)
	default:
		return err
	}
	return nil
}

// seedCatalog inserts a handful of subjects and rooms, skipping any
// whose code is already taken.
func seedCatalog(ctx context.Context, cmd *cobra.Command, subjects schedule.SubjectRepository, rooms schedule.RoomRepository) error {
	labType := schedule.RoomComputerLab

	sampleSubjects := []struct {
		code, name   string
		credits      int
		weeklyHours  int
		needsLab     bool
		roomType     *schedule.RoomType
	}{
		{code: "MATH101", name: "Calculus I", credits: 4, weeklyHours: 4},
		{code: "CS101", name: "Introduction to Programming", credits: 4, weeklyHours: 6, needsLab: true, roomType: &labType},
		{code: "PHYS101", name: "Physics I", credits: 5, weeklyHours: 5},
	}
	for _, s := range sampleSubjects {
		subject, err := schedule.NewSubject(s.code, s.name, s.credits, s.weeklyHours, s.needsLab, s.roomType, "")
		if err != nil {
			return err
		}
		switch err := subjects.Create(ctx, subject); {
		case err == nil:
			cmd.Printf("subject %s created\n", s.code)
		case errors.Is(err, schedule.ErrDuplicateCode):
			cmd.Printf("subject %s already exists\n", s.code)
		default:
			return err
		}
	}

	sampleRooms := []struct {
		code, name string
		capacity   int
		roomType   schedule.RoomType
	}{
		{code: "A-101", name: "Lecture Hall A", capacity: 80, roomType: schedule.RoomClassroom},
		{code: "LAB-1", name: "Computer Lab 1", capacity: 30, roomType: schedule.RoomComputerLab},
	}
	for _, r := range sampleRooms {
		room, err := schedule.NewRoom(r.code, r.name, r.capacity, r.roomType, "", 0, "")
		if err != nil {
			return err
		}
		switch err := rooms.Create(ctx, room); {
		case err == nil:
			cmd.Printf("room %s created\n", r.code)
		case errors.Is(err, schedule.ErrDuplicateCode):
			cmd.Printf("room %s already exists\n", r.code)
		default:
			return err
		}
	}
	return nil
}
