// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/classplan/classplan/internal/schedule"
)

type subjectRequest struct {
	Code             string  `json:"code" validate:"required"`
	Name             string  `json:"name" validate:"required"`
	Credits          int     `json:"credits" validate:"required"`
	WeeklyHours      int     `json:"weekly_hours" validate:"required"`
	NeedsLab         bool    `json:"needs_lab"`
	RequiredRoomType *string `json:"required_room_type"`
	Description      string  `json:"description"`
}

type subjectResponse struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Credits          int       `json:"credits"`
	WeeklyHours      int       `json:"weekly_hours"`
	NeedsLab         bool      `json:"needs_lab"`
	RequiredRoomType *string   `json:"required_room_type"`
	Description      string    `json:"description"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toSubjectResponse(subject *schedule.Subject) subjectResponse {
	var roomType *string
	if subject.RequiredRoomType != nil {
		s := string(*subject.RequiredRoomType)
		roomType = &s
	}
	return subjectResponse{
		ID:               subject.ID.String(),
		Code:             subject.Code,
		Name:             subject.Name,
		Credits:          subject.Credits,
		WeeklyHours:      subject.WeeklyHours,
		NeedsLab:         subject.NeedsLab,
		RequiredRoomType: roomType,
		Description:      subject.Description,
		Active:           subject.Active,
		CreatedAt:        subject.CreatedAt,
		UpdatedAt:        subject.UpdatedAt,
	}
}

// parseOptionalRoomType maps an absent pointer to nil and validates a
// present one.
func parseOptionalRoomType(raw *string) (*schedule.RoomType, error) {
	if raw == nil {
		return nil, nil
	}
	roomType, err := schedule.ParseRoomType(*raw)
	if err != nil {
		return nil, err
	}
	return &roomType, nil
}

func (api *API) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	roomType, err := parseOptionalRoomType(req.RequiredRoomType)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	subject, err := api.catalog.CreateSubject(r.Context(), req.Code, req.Name, req.Credits, req.WeeklyHours, req.NeedsLab, roomType, req.Description)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubjectResponse(subject))
}

func (api *API) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := api.catalog.ListSubjects(r.Context())
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	out := make([]subjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, toSubjectResponse(subject))
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *API) handleGetSubject(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		subject, err := api.catalog.GetSubject(r.Context(), id)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toSubjectResponse(subject))
		return nil
	})
}

func (api *API) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	api.handleID(w, r, func(id ulid.ULID) error {
		subject, err := api.catalog.GetSubject(r.Context(), id)
		if err != nil {
			return err
		}
		roomType, err := parseOptionalRoomType(req.RequiredRoomType)
		if err != nil {
			return err
		}

		subject.Code = req.Code
		subject.Name = req.Name
		subject.Credits = req.Credits
		subject.WeeklyHours = req.WeeklyHours
		subject.NeedsLab = req.NeedsLab
		subject.RequiredRoomType = roomType
		subject.Description = req.Description

		if err := api.catalog.UpdateSubject(r.Context(), subject); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toSubjectResponse(subject))
		return nil
	})
}

func (api *API) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		if err := api.catalog.DeleteSubject(r.Context(), id); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}

type roomRequest struct {
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Capacity  int    `json:"capacity" validate:"required"`
	RoomType  string `json:"room_type" validate:"required"`
	Building  string `json:"building"`
	Floor     int    `json:"floor"`
	Equipment string `json:"equipment"`
}

type roomResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	RoomType  string    `json:"room_type"`
	Building  string    `json:"building"`
	Floor     int       `json:"floor"`
	Equipment string    `json:"equipment"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRoomResponse(room *schedule.Room) roomResponse {
	return roomResponse{
		ID:        room.ID.String(),
		Code:      room.Code,
		Name:      room.Name,
		Capacity:  room.Capacity,
		RoomType:  string(room.Type),
		Building:  room.Building,
		Floor:     room.Floor,
		Equipment: room.Equipment,
		Active:    room.Active,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

func (api *API) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	roomType, err := schedule.ParseRoomType(req.RoomType)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	room, err := api.catalog.CreateRoom(r.Context(), req.Code, req.Name, req.Capacity, roomType, req.Building, req.Floor, req.Equipment)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoomResponse(room))
}

func (api *API) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := api.catalog.ListRooms(r.Context())
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	out := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomResponse(room))
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *API) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		room, err := api.catalog.GetRoom(r.Context(), id)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toRoomResponse(room))
		return nil
	})
}

func (api *API) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	api.handleID(w, r, func(id ulid.ULID) error {
		room, err := api.catalog.GetRoom(r.Context(), id)
		if err != nil {
			return err
		}
		roomType, err := schedule.ParseRoomType(req.RoomType)
		if err != nil {
			return err
		}

		room.Code = req.Code
		room.Name = req.Name
		room.Capacity = req.Capacity
		room.Type = roomType
		room.Building = req.Building
		room.Floor = req.Floor
		room.Equipment = req.Equipment

		if err := api.catalog.UpdateRoom(r.Context(), room); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toRoomResponse(room))
		return nil
	})
}

func (api *API) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		if err := api.catalog.DeleteRoom(r.Context(), id); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}

type groupRequest struct {
	Code         string `json:"code" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Program      string `json:"program"`
	Semester     int    `json:"semester" validate:"required"`
	Shift        string `json:"shift" validate:"required"`
	StudentCount int    `json:"student_count" validate:"required"`
	Term         string `json:"term" validate:"required"`
}

type groupResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Program      string    `json:"program"`
	Semester     int       `json:"semester"`
	Shift        string    `json:"shift"`
	StudentCount int       `json:"student_count"`
	Term         string    `json:"term"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toGroupResponse(group *schedule.Group) groupResponse {
	return groupResponse{
		ID:           group.ID.String(),
		Code:         group.Code,
		Name:         group.Name,
		Program:      group.Program,
		Semester:     group.Semester,
		Shift:        string(group.Shift),
		StudentCount: group.StudentCount,
		Term:         group.Term,
		Active:       group.Active,
		CreatedAt:    group.CreatedAt,
		UpdatedAt:    group.UpdatedAt,
	}
}

func (api *API) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	shift, err := schedule.ParseShift(req.Shift)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	group, err := api.catalog.CreateGroup(r.Context(), req.Code, req.Name, req.Program, req.Semester, shift, req.StudentCount, req.Term)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

// handleListGroups honors an optional ?term= filter.
func (api *API) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := api.catalog.ListGroups(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	out := make([]groupResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, toGroupResponse(group))
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *API) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		group, err := api.catalog.GetGroup(r.Context(), id)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toGroupResponse(group))
		return nil
	})
}

func (api *API) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	api.handleID(w, r, func(id ulid.ULID) error {
		group, err := api.catalog.GetGroup(r.Context(), id)
		if err != nil {
			return err
		}
		shift, err := schedule.ParseShift(req.Shift)
		if err != nil {
			return err
		}

		group.Code = req.Code
		group.Name = req.Name
		group.Program = req.Program
		group.Semester = req.Semester
		group.Shift = shift
		group.StudentCount = req.StudentCount
		group.Term = req.Term

		if err := api.catalog.UpdateGroup(r.Context(), group); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toGroupResponse(group))
		return nil
	})
}

func (api *API) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		if err := api.catalog.DeleteGroup(r.Context(), id); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}
