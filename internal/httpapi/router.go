// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/classplan/classplan/internal/access"
	"github.com/classplan/classplan/internal/auth"
	"github.com/classplan/classplan/internal/observability"
	"github.com/classplan/classplan/internal/schedule"
)

// Deps carries everything the API needs. Metrics may be nil; everything
// else is required.
type Deps struct {
	Auth    *auth.Service
	Guard   *access.Guard
	Catalog *schedule.CatalogService
	Staff   *schedule.StaffService
	Plan    *schedule.PlanService
	Logger  *slog.Logger
	Metrics *observability.Metrics

	// CORSOrigins lists the origins allowed to call the API from a
	// browser. Empty disables CORS handling.
	CORSOrigins []string
}

// API exposes the application services over JSON.
type API struct {
	auth    *auth.Service
	guard   *access.Guard
	catalog *schedule.CatalogService
	staff   *schedule.StaffService
	plan    *schedule.PlanService
	logger  *slog.Logger
	metrics *observability.Metrics
	origins []string
}

// NewAPI validates the dependencies and builds the API.
func NewAPI(deps Deps) (*API, error) {
	if deps.Auth == nil {
		return nil, oops.Code("HTTP_NIL_DEPENDENCY").Errorf("auth service is required")
	}
	if deps.Guard == nil {
		return nil, oops.Code("HTTP_NIL_DEPENDENCY").Errorf("access guard is required")
	}
	if deps.Catalog == nil {
		return nil, oops.Code("HTTP_NIL_DEPENDENCY").Errorf("catalog service is required")
	}
	if deps.Staff == nil {
		return nil, oops.Code("HTTP_NIL_DEPENDENCY").Errorf("staff service is required")
	}
	if deps.Plan == nil {
		return nil, oops.Code("HTTP_NIL_DEPENDENCY").Errorf("plan service is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &API{
		auth:    deps.Auth,
		guard:   deps.Guard,
		catalog: deps.Catalog,
		staff:   deps.Staff,
		plan:    deps.Plan,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		origins: deps.CORSOrigins,
	}, nil
}

// Handler builds the routing table. Reads need any authenticated
// account; writes need coordinator or admin.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", api.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", api.handleLogin)
	mux.HandleFunc("GET /api/v1/auth/me", api.guarded(access.AnyAuthenticated, api.handleMe))

	mux.HandleFunc("POST /api/v1/subjects", api.guarded(access.CoordinatorOrAdmin, api.handleCreateSubject))
	mux.HandleFunc("GET /api/v1/subjects", api.guarded(access.AnyAuthenticated, api.handleListSubjects))
	mux.HandleFunc("GET /api/v1/subjects/{id}", api.guarded(access.AnyAuthenticated, api.handleGetSubject))
	mux.HandleFunc("PUT /api/v1/subjects/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleUpdateSubject))
	mux.HandleFunc("DELETE /api/v1/subjects/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleDeleteSubject))

	mux.HandleFunc("POST /api/v1/rooms", api.guarded(access.CoordinatorOrAdmin, api.handleCreateRoom))
	mux.HandleFunc("GET /api/v1/rooms", api.guarded(access.AnyAuthenticated, api.handleListRooms))
	mux.HandleFunc("GET /api/v1/rooms/{id}", api.guarded(access.AnyAuthenticated, api.handleGetRoom))
	mux.HandleFunc("PUT /api/v1/rooms/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleUpdateRoom))
	mux.HandleFunc("DELETE /api/v1/rooms/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleDeleteRoom))

	mux.HandleFunc("POST /api/v1/groups", api.guarded(access.CoordinatorOrAdmin, api.handleCreateGroup))
	mux.HandleFunc("GET /api/v1/groups", api.guarded(access.AnyAuthenticated, api.handleListGroups))
	mux.HandleFunc("GET /api/v1/groups/{id}", api.guarded(access.AnyAuthenticated, api.handleGetGroup))
	mux.HandleFunc("PUT /api/v1/groups/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleUpdateGroup))
	mux.HandleFunc("DELETE /api/v1/groups/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleDeleteGroup))

	mux.HandleFunc("POST /api/v1/teachers", api.guarded(access.CoordinatorOrAdmin, api.handleCreateTeacher))
	mux.HandleFunc("GET /api/v1/teachers", api.guarded(access.AnyAuthenticated, api.handleListTeachers))
	mux.HandleFunc("GET /api/v1/teachers/{id}", api.guarded(access.AnyAuthenticated, api.handleGetTeacher))
	mux.HandleFunc("PUT /api/v1/teachers/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleUpdateTeacher))
	mux.HandleFunc("DELETE /api/v1/teachers/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleDeleteTeacher))
	mux.HandleFunc("POST /api/v1/teachers/{id}/availability", api.guarded(access.CoordinatorOrAdmin, api.handleAddAvailability))
	mux.HandleFunc("GET /api/v1/teachers/{id}/availability", api.guarded(access.AnyAuthenticated, api.handleListAvailability))
	mux.HandleFunc("DELETE /api/v1/availability/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleRemoveAvailability))

	mux.HandleFunc("POST /api/v1/assignments", api.guarded(access.CoordinatorOrAdmin, api.handleCreateAssignment))
	mux.HandleFunc("GET /api/v1/assignments", api.guarded(access.AnyAuthenticated, api.handleListAssignments))
	mux.HandleFunc("GET /api/v1/assignments/{id}", api.guarded(access.AnyAuthenticated, api.handleGetAssignment))
	mux.HandleFunc("PUT /api/v1/assignments/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleUpdateAssignment))
	mux.HandleFunc("DELETE /api/v1/assignments/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleDeleteAssignment))
	mux.HandleFunc("GET /api/v1/assignments/{id}/slots", api.guarded(access.AnyAuthenticated, api.handleListSlotsByAssignment))

	mux.HandleFunc("POST /api/v1/slots", api.guarded(access.CoordinatorOrAdmin, api.handleCreateSlot))
	mux.HandleFunc("GET /api/v1/slots/{id}", api.guarded(access.AnyAuthenticated, api.handleGetSlot))
	mux.HandleFunc("DELETE /api/v1/slots/{id}", api.guarded(access.CoordinatorOrAdmin, api.handleDeleteSlot))
	mux.HandleFunc("GET /api/v1/rooms/{id}/slots", api.guarded(access.AnyAuthenticated, api.handleListSlotsByRoom))

	mux.HandleFunc("POST /api/v1/conflicts", api.guarded(access.CoordinatorOrAdmin, api.handleRecordConflict))
	mux.HandleFunc("GET /api/v1/conflicts", api.guarded(access.AnyAuthenticated, api.handleListConflicts))
	mux.HandleFunc("GET /api/v1/conflicts/{id}", api.guarded(access.AnyAuthenticated, api.handleGetConflict))
	mux.HandleFunc("POST /api/v1/conflicts/{id}/resolve", api.guarded(access.CoordinatorOrAdmin, api.handleResolveConflict))

	return chain(mux,
		requestLogger(api.logger),
		requestMetrics(api.metrics),
		corsHeaders(api.origins),
	)
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (ulid.ULID, error) {
	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		return ulid.ULID{}, oops.Code("HTTP_BAD_ID").With("raw", r.PathValue("id")).Wrap(err)
	}
	return id, nil
}

// handleID runs fn against the parsed {id}, mapping a malformed id to a
// 400 before any service call.
func (api *API) handleID(w http.ResponseWriter, r *http.Request, fn func(ulid.ULID) error) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := fn(id); err != nil {
		writeError(w, api.logger, err)
	}
}
