// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/classplan/classplan/internal/schedule"
)

type assignmentRequest struct {
	GroupID   string `json:"group_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	TeacherID string `json:"teacher_id" validate:"required"`
	Term      string `json:"term" validate:"required"`
}

type assignmentResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	SubjectID string    `json:"subject_id"`
	TeacherID string    `json:"teacher_id"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAssignmentResponse(assignment *schedule.Assignment) assignmentResponse {
	return assignmentResponse{
		ID:        assignment.ID.String(),
		GroupID:   assignment.GroupID.String(),
		SubjectID: assignment.SubjectID.String(),
		TeacherID: assignment.TeacherID.String(),
		Term:      assignment.Term,
		CreatedAt: assignment.CreatedAt,
		UpdatedAt: assignment.UpdatedAt,
	}
}

type slotRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
	RoomID       string `json:"room_id" validate:"required"`
	Weekday      string `json:"weekday" validate:"required"`
	Start        string `json:"start" validate:"required"`
	End          string `json:"end" validate:"required"`
	SessionType  string `json:"session_type"`
}

type slotResponse struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	RoomID       string    `json:"room_id"`
	Weekday      string    `json:"weekday"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	SessionType  string    `json:"session_type"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toSlotResponse(slot *schedule.Slot) slotResponse {
	return slotResponse{
		ID:           slot.ID.String(),
		AssignmentID: slot.AssignmentID.String(),
		RoomID:       slot.RoomID.String(),
		Weekday:      string(slot.Weekday),
		Start:        slot.Start.String(),
		End:          slot.End.String(),
		SessionType:  string(slot.SessionType),
		Active:       slot.Active,
		CreatedAt:    slot.CreatedAt,
		UpdatedAt:    slot.UpdatedAt,
	}
}

type conflictRequest struct {
	SlotID      *string `json:"slot_id"`
	Type        string  `json:"type" validate:"required"`
	Description string  `json:"description" validate:"required"`
}

type conflictResponse struct {
	ID          string     `json:"id"`
	SlotID      *string    `json:"slot_id"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Resolved    bool       `json:"resolved"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

func toConflictResponse(conflict *schedule.Conflict) conflictResponse {
	var slotID *string
	if conflict.SlotID != nil {
		s := conflict.SlotID.String()
		slotID = &s
	}
	return conflictResponse{
		ID:          conflict.ID.String(),
		SlotID:      slotID,
		Type:        string(conflict.Type),
		Description: conflict.Description,
		Resolved:    conflict.Resolved,
		CreatedAt:   conflict.CreatedAt,
		ResolvedAt:  conflict.ResolvedAt,
	}
}

func (api *API) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	groupID, err := ulid.Parse(req.GroupID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid group_id"})
		return
	}
	subjectID, err := ulid.Parse(req.SubjectID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid subject_id"})
		return
	}
	teacherID, err := ulid.Parse(req.TeacherID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid teacher_id"})
		return
	}

	assignment, err := api.plan.CreateAssignment(r.Context(), groupID, subjectID, teacherID, req.Term)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentResponse(assignment))
}

// handleListAssignments honors an optional ?term= filter.
func (api *API) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := api.plan.ListAssignments(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	out := make([]assignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, toAssignmentResponse(assignment))
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *API) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		assignment, err := api.plan.GetAssignment(r.Context(), id)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toAssignmentResponse(assignment))
		return nil
	})
}

func (api *API) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	groupID, err := ulid.Parse(req.GroupID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid group_id"})
		return
	}
	subjectID, err := ulid.Parse(req.SubjectID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid subject_id"})
		return
	}
	teacherID, err := ulid.Parse(req.TeacherID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid teacher_id"})
		return
	}

	api.handleID(w, r, func(id ulid.ULID) error {
		assignment, err := api.plan.GetAssignment(r.Context(), id)
		if err != nil {
			return err
		}

		assignment.GroupID = groupID
		assignment.SubjectID = subjectID
		assignment.TeacherID = teacherID
		assignment.Term = req.Term

		if err := api.plan.UpdateAssignment(r.Context(), assignment); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toAssignmentResponse(assignment))
		return nil
	})
}

func (api *API) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		if err := api.plan.DeleteAssignment(r.Context(), id); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}

func (api *API) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	assignmentID, err := ulid.Parse(req.AssignmentID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid assignment_id"})
		return
	}
	roomID, err := ulid.Parse(req.RoomID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid room_id"})
		return
	}
	weekday, err := schedule.ParseWeekday(req.Weekday)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	start, err := schedule.ParseTimeOfDay(req.Start)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	end, err := schedule.ParseTimeOfDay(req.End)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	sessionType, err := schedule.ParseSessionType(req.SessionType)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	slot, err := api.plan.CreateSlot(r.Context(), assignmentID, roomID, weekday, start, end, sessionType)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSlotResponse(slot))
}

func (api *API) handleGetSlot(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		slot, err := api.plan.GetSlot(r.Context(), id)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toSlotResponse(slot))
		return nil
	})
}

func (api *API) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		if err := api.plan.DeleteSlot(r.Context(), id); err != nil {
			return err
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}

func (api *API) handleListSlotsByAssignment(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(assignmentID ulid.ULID) error {
		slots, err := api.plan.ListSlotsByAssignment(r.Context(), assignmentID)
		if err != nil {
			return err
		}
		writeSlots(w, slots)
		return nil
	})
}

func (api *API) handleListSlotsByRoom(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(roomID ulid.ULID) error {
		slots, err := api.plan.ListSlotsByRoom(r.Context(), roomID)
		if err != nil {
			return err
		}
		writeSlots(w, slots)
		return nil
	})
}

func writeSlots(w http.ResponseWriter, slots []*schedule.Slot) {
	out := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, toSlotResponse(slot))
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *API) handleRecordConflict(w http.ResponseWriter, r *http.Request) {
	var req conflictRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	conflictType, err := schedule.ParseConflictType(req.Type)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	var slotID *ulid.ULID
	if req.SlotID != nil {
		parsed, err := ulid.Parse(*req.SlotID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid slot_id"})
			return
		}
		slotID = &parsed
	}

	conflict, err := api.plan.RecordConflict(r.Context(), slotID, conflictType, req.Description)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toConflictResponse(conflict))
}

// handleListConflicts honors an optional ?unresolved=true filter.
func (api *API) handleListConflicts(w http.ResponseWriter, r *http.Request) {
	unresolvedOnly := r.URL.Query().Get("unresolved") == "true"
	conflicts, err := api.plan.ListConflicts(r.Context(), unresolvedOnly)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}
	out := make([]conflictResponse, 0, len(conflicts))
	for _, conflict := range conflicts {
		out = append(out, toConflictResponse(conflict))
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *API) handleGetConflict(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		conflict, err := api.plan.GetConflict(r.Context(), id)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toConflictResponse(conflict))
		return nil
	})
}

func (api *API) handleResolveConflict(w http.ResponseWriter, r *http.Request) {
	api.handleID(w, r, func(id ulid.ULID) error {
		conflict, err := api.plan.ResolveConflict(r.Context(), id)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toConflictResponse(conflict))
		return nil
	})
}
