// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/classplan/classplan/internal/access"
	"github.com/classplan/classplan/internal/auth"
	authpg "github.com/classplan/classplan/internal/auth/postgres"
	"github.com/classplan/classplan/internal/config"
	"github.com/classplan/classplan/internal/httpapi"
	"github.com/classplan/classplan/internal/logging"
	"github.com/classplan/classplan/internal/observability"
	"github.com/classplan/classplan/internal/schedule"
	schedulepg "github.com/classplan/classplan/internal/schedule/postgres"
	"github.com/classplan/classplan/internal/store"
)

const shutdownTimeout = 10 * time.Second

// ServeDeps holds injectable dependencies for the serve command.
type ServeDeps struct {
	Connect func(ctx context.Context, databaseURL string) (*pgxpool.Pool, error)
	Migrate func(databaseURL string) error
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the HTTP API server, and the metrics/health server when
enabled. Configuration is layered: defaults, then the config file,
then CLASSPLAN_* environment variables, then flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeWithDeps(cmd.Context(), cmd, nil)
		},
	}

	cmd.Flags().String("http.addr", "", "API listen address")
	cmd.Flags().String("metrics.addr", "", "metrics/health listen address")
	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")
	cmd.Flags().String("log.level", "", "log level (debug, info, warn, error)")
	cmd.Flags().String("log.format", "", "log format (json or text)")

	return cmd
}

// runServeWithDeps starts the server with injectable dependencies. If
// deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cmd *cobra.Command, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	if deps.Connect == nil {
		deps.Connect = store.Connect
	}
	if deps.Migrate == nil {
		deps.Migrate = runPendingMigrations
	}

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("classplan", version, cfg.Log.Level, cfg.Log.Format)
	logger := slog.Default()

	if cfg.Database.AutoMigrate {
		logger.Info("running pending migrations")
		if err := deps.Migrate(cfg.Database.URL); err != nil {
			return oops.Code("MIGRATION_FAILED").Wrap(err)
		}
	}

	pool, err := deps.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	api, obs, err := buildAPI(pool, cfg, logger)
	if err != nil {
		return err
	}

	apiServer, err := httpapi.NewServer(cfg.HTTP.Addr, api.Handler(), logger)
	if err != nil {
		return err
	}

	apiErr, err := apiServer.Start()
	if err != nil {
		return err
	}

	var obsErr <-chan error
	if obs != nil {
		obsErr, err = obs.Start()
		if err != nil {
			stopServers(logger, apiServer, nil)
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-apiErr:
		if err != nil {
			stopServers(logger, nil, obs)
			return oops.Code("SERVER_FAILED").Wrap(err)
		}
	case err := <-obsErr:
		if err != nil {
			stopServers(logger, apiServer, nil)
			return oops.Code("SERVER_FAILED").Wrap(err)
		}
	}

	stopServers(logger, apiServer, obs)
	return nil
}

// buildAPI wires the repositories, services, and guard on top of the
// connection pool. The observability server is nil when metrics are
// disabled.
func buildAPI(pool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) (*httpapi.API, *observability.Server, error) {
	accounts := authpg.NewAccountRepository(pool)
	repos := schedulepg.NewRepos(pool)

	tokens, err := auth.NewTokenCodec([]byte(cfg.Auth.TokenSecret), cfg.Auth.TokenTTL())
	if err != nil {
		return nil, nil, err
	}

	authSvc, err := auth.NewServiceWithLogger(accounts, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, logger)
	if err != nil {
		return nil, nil, err
	}

	guard, err := access.NewGuard(accounts, tokens)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := schedule.NewCatalogService(repos.Subjects, repos.Rooms, repos.Groups, logger)
	if err != nil {
		return nil, nil, err
	}

	staff, err := schedule.NewStaffService(repos.Teachers, accounts, logger)
	if err != nil {
		return nil, nil, err
	}

	plan, err := schedule.NewPlanService(repos.Assignments, repos.Slots, repos.Conflicts, repos.Teachers, repos.Groups, repos.Subjects, repos.Rooms, logger)
	if err != nil {
		return nil, nil, err
	}

	var obs *observability.Server
	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		obs = observability.NewServer(cfg.Metrics.Addr, func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx) == nil
		})
		metrics = obs.Metrics()
	}

	api, err := httpapi.NewAPI(httpapi.Deps{
		Auth:        authSvc,
		Guard:       guard,
		Catalog:     catalog,
		Staff:       staff,
		Plan:        plan,
		Logger:      logger,
		Metrics:     metrics,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})
	if err != nil {
		return nil, nil, err
	}
	return api, obs, nil
}

func runPendingMigrations(databaseURL string) error {
	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer migrator.Close() //nolint:errcheck // close error is secondary
	return migrator.Up()
}

func stopServers(logger *slog.Logger, api *httpapi.Server, obs *observability.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if api != nil {
		if err := api.Stop(ctx); err != nil {
			logger.Error("api server shutdown failed", "error", err)
		}
	}
	if obs != nil {
		if err := obs.Stop(ctx); err != nil {
			logger.Error("observability server shutdown failed", "error", err)
		}
	}
}
