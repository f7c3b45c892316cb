// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"github.com/classplan/classplan/internal/access"
	"github.com/classplan/classplan/internal/auth"
	authpg "github.com/classplan/classplan/internal/auth/postgres"
	"github.com/classplan/classplan/internal/httpapi"
	"github.com/classplan/classplan/internal/schedule"
	schedulepg "github.com/classplan/classplan/internal/schedule/postgres"
	"github.com/classplan/classplan/internal/store"
)

var _ = Describe("ClassPlan API", Ordered, func() {
	var (
		ctx       context.Context
		container *postgres.PostgresContainer
		server    *httptest.Server
	)

	// request performs a JSON call against the live server and decodes
	// the response body when there is one.
	request := func(method, path, token string, body any) (int, map[string]any) {
		GinkgoHelper()

		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		}

		req, err := http.NewRequestWithContext(ctx, method, server.URL+path, reader)
		Expect(err).NotTo(HaveOccurred())
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())

		var decoded map[string]any
		if len(raw) > 0 && raw[0] == '{' {
			Expect(json.Unmarshal(raw, &decoded)).To(Succeed())
		}
		return resp.StatusCode, decoded
	}

	login := func(email, password string) string {
		GinkgoHelper()

		status, body := request(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    email,
			"password": password,
		})
		Expect(status).To(Equal(http.StatusOK))
		return body["access_token"].(string)
	}

	BeforeAll(func() {
		ctx = context.Background()

		var err error
		container, err = postgres.Run(ctx, "postgres:16-alpine",
			postgres.WithDatabase("classplan_test"),
			postgres.WithUsername("classplan"),
			postgres.WithPassword("classplan"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		Expect(err).NotTo(HaveOccurred())

		databaseURL, err := container.ConnectionString(ctx, "sslmode=disable")
		Expect(err).NotTo(HaveOccurred())

		migrator, err := store.NewMigrator(databaseURL)
		Expect(err).NotTo(HaveOccurred())
		Expect(migrator.Up()).To(Succeed())
		Expect(migrator.Close()).To(Succeed())

		pool, err := store.Connect(ctx, databaseURL)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(pool.Close)

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		accounts := authpg.NewAccountRepository(pool)
		repos := schedulepg.NewRepos(pool)

		tokens, err := auth.NewTokenCodec([]byte("integration-test-secret"), time.Hour)
		Expect(err).NotTo(HaveOccurred())

		authSvc, err := auth.NewServiceWithLogger(accounts, auth.NewBcryptHasher(bcrypt.MinCost), tokens, logger)
		Expect(err).NotTo(HaveOccurred())

		guard, err := access.NewGuard(accounts, tokens)
		Expect(err).NotTo(HaveOccurred())

		catalog, err := schedule.NewCatalogService(repos.Subjects, repos.Rooms, repos.Groups, logger)
		Expect(err).NotTo(HaveOccurred())

		staff, err := schedule.NewStaffService(repos.Teachers, accounts, logger)
		Expect(err).NotTo(HaveOccurred())

		plan, err := schedule.NewPlanService(repos.Assignments, repos.Slots, repos.Conflicts, repos.Teachers, repos.Groups, repos.Subjects, repos.Rooms, logger)
		Expect(err).NotTo(HaveOccurred())

		api, err := httpapi.NewAPI(httpapi.Deps{
			Auth:    authSvc,
			Guard:   guard,
			Catalog: catalog,
			Staff:   staff,
			Plan:    plan,
			Logger:  logger,
		})
		Expect(err).NotTo(HaveOccurred())

		server = httptest.NewServer(api.Handler())
	})

	AfterAll(func() {
		if server != nil {
			server.Close()
		}
		if container != nil {
			Expect(container.Terminate(ctx)).To(Succeed())
		}
	})

	It("registers an admin account", func() {
		status, body := request(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email":        "admin@example.com",
			"password":     "integration pass",
			"display_name": "Admin",
			"role":         "admin",
		})
		Expect(status).To(Equal(http.StatusCreated))
		Expect(body["email"]).To(Equal("admin@example.com"))
		Expect(body).NotTo(HaveKey("password_hash"))
	})

	It("rejects a duplicate registration", func() {
		status, _ := request(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email":        "admin@example.com",
			"password":     "integration pass",
			"display_name": "Admin Again",
		})
		Expect(status).To(Equal(http.StatusBadRequest))
	})

	It("logs in and fetches the caller profile", func() {
		token := login("admin@example.com", "integration pass")

		status, body := request(http.MethodGet, "/api/v1/auth/me", token, nil)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body["role"]).To(Equal("admin"))
	})

	It("rejects a wrong password uniformly", func() {
		status, body := request(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "admin@example.com",
			"password": "wrong",
		})
		Expect(status).To(Equal(http.StatusUnauthorized))
		Expect(body["error"]).To(Equal("invalid credentials"))
	})

	It("enforces role requirements on catalog writes", func() {
		status, _ := request(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email":        "student@example.com",
			"password":     "integration pass",
			"display_name": "Student",
		})
		Expect(status).To(Equal(http.StatusCreated))

		studentToken := login("student@example.com", "integration pass")
		status, _ = request(http.MethodPost, "/api/v1/subjects", studentToken, map[string]any{
			"code": "MATH101", "name": "Calculus", "credits": 4, "weekly_hours": 4,
		})
		Expect(status).To(Equal(http.StatusForbidden))
	})

	It("persists catalog entries", func() {
		adminToken := login("admin@example.com", "integration pass")

		status, created := request(http.MethodPost, "/api/v1/subjects", adminToken, map[string]any{
			"code": "MATH101", "name": "Calculus", "credits": 4, "weekly_hours": 4,
		})
		Expect(status).To(Equal(http.StatusCreated))

		status, fetched := request(http.MethodGet, "/api/v1/subjects/"+created["id"].(string), adminToken, nil)
		Expect(status).To(Equal(http.StatusOK))
		Expect(fetched["code"]).To(Equal("MATH101"))

		// Unique code constraint holds at the database level.
		status, _ = request(http.MethodPost, "/api/v1/subjects", adminToken, map[string]any{
			"code": "MATH101", "name": "Duplicate", "credits": 1, "weekly_hours": 1,
		})
		Expect(status).To(Equal(http.StatusBadRequest))
	})
})
