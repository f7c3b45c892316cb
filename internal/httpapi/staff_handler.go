// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/classplan/classplan/internal/schedule"
)

type teacherRequest struct {
	AccountID      string `json:"account_id" validate:"required"`
	Code           string `json:"code" validate:"required"`
	Department     string `json:"department"`
	MaxWeeklyHours int    `json:"max_weekly_hours"`
}

type teacherResponse struct {
	ID             string    `json:"id"`
	AccountID      string    `json:"account_id"`
	Code           string    `json:"code"`
	Department     string    `json:"department"`
	MaxWeeklyHours int       `json:"max_weekly_hours"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toTeacherResponse(profile *schedule.TeacherProfile) teacherResponse {
	return teacherResponse{
		ID:             profile.ID.String(),
		AccountID:      profile.AccountID.String(),
		Code:           profile.Code,
		Department:     profile.Department,
		MaxWeeklyHours: profile.MaxWeeklyHours,
		Active:         profile.Active,
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
	}
}

type availabilityRequest struct {
	Weekday string `json:"weekday" validate:"required"`
	Start   string `json:"start" validate:"required"`
	End     string `json:"end" validate:"required"`
}

type availabilityResponse struct {
	ID        string    `json:"id"`
	TeacherID string    `json:"teacher_id"`
	Weekday   string    `json:"weekday"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	CreatedAt time.Time `json:"created_at"`
}

func toAvailabilityResponse(window *schedule.Availability) availabilityResponse {
	return availabilityResponse{
		ID:        window.ID.String(),
		TeacherID: window.TeacherID.String(),
		Weekday:   string(window.Weekday),
		Start:     window.Start.String(),
		End:       window.End.String(),
		CreatedAt: window.CreatedAt,
	}
}

func (api *API) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req teacherRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	accountID, err := ulid.Parse(req.AccountID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid account_id"})
		return
	}

	profile, err := api.staff.CreateProfile(r.Context(), accountID, req.Code, req.Department, req.MaxWeeklyHours)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTeacherResponse(profile))
}

func (api *API) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	profiles, err := api.staff.ListProfiles(r.Context())
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	out := make([]teacherResponse, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, toTeacherResponse(profile))
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *API) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		profile, err := api.staff.GetProfile(r.Context(), id)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toTeacherResponse(profile))
		return nil
	})
}

func (api *API) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	var req teacherRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	api.handleID(w, r, func(id ulid.ULID) error {
		profile, err := api.staff.GetProfile(r.Context(), id)
		if err != nil {
			return err
		}

		// The owning account is fixed at creation time.
		profile.Code = req.Code
		profile.Department = req.Department
		profile.MaxWeeklyHours = req.MaxWeeklyHours

		if err := api.staff.UpdateProfile(r.Context(), profile); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toTeacherResponse(profile))
		return nil
	})
}

func (api *API) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		if err := api.staff.DeleteProfile(r.Context(), id); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}

func (api *API) handleAddAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	api.handleID(w, r, func(teacherID ulid.ULID) error {
		weekday, err := schedule.ParseWeekday(req.Weekday)
		if err != nil {
			return err
		}
		start, err := schedule.ParseTimeOfDay(req.Start)
		if err != nil {
			return err
		}
		end, err := schedule.ParseTimeOfDay(req.End)
		if err != nil {
			return err
		}

		window, err := api.staff.AddAvailability(r.Context(), teacherID, weekday, start, end)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusCreated, toAvailabilityResponse(window))
		return nil
	})
}

func (api *API) handleListAvailability(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(teacherID ulid.ULID) error {
		windows, err := api.staff.ListAvailability(r.Context(), teacherID)
		if err != nil {
			return err
		}
		out := make([]availabilityResponse, 0, len(windows))
		for _, window := range windows {
			out = append(out, toAvailabilityResponse(window))
		}
		writeJSON(w, http.StatusOK, out)
		return nil
	})
}

func (api *API) handleRemoveAvailability(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		if err := api.staff.RemoveAvailability(r.Context(), id); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}
