// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/classplan/classplan/internal/access"
	"github.com/classplan/classplan/internal/auth"
	"github.com/classplan/classplan/internal/schedule"
	"github.com/classplan/classplan/pkg/errutil"
)

// validate checks request bodies. Shared instance; validator caches
// struct metadata internally.
var validate = validator.New(validator.WithRequiredStructEnabled())

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		//nolint:errcheck // response write failure means the client is gone
		json.NewEncoder(w).Encode(body)
	}
}

// writeError maps domain errors onto the HTTP status taxonomy. Unknown
// errors become an opaque 500; their detail goes to the log, not the
// client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, auth.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email is already registered"})
	case errors.Is(err, schedule.ErrDuplicateCode):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "duplicate entry"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, access.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	case errors.Is(err, access.ErrAccountDisabled):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "account is disabled"})
	case errors.Is(err, access.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
	case errors.Is(err, auth.ErrNotFound), errors.Is(err, schedule.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, schedule.ErrAlreadyResolved):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "conflict is already resolved"})
	case isValidationError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		errutil.LogError(logger, "request failed", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// writeValidationError reports a 400 for malformed or invalid request
// bodies.
func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0]
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid field " + field.Field(),
		})
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
}

// isValidationError reports whether err is a domain-level rejection of
// the caller's input. Constructors tag those with AUTH_INVALID_* or
// SCHEDULE_INVALID_* codes; a couple of service checks carry their own.
func isValidationError(err error) bool {
	code := errutil.ErrorCode(err)
	return strings.HasPrefix(code, "AUTH_INVALID") ||
		strings.HasPrefix(code, "SCHEDULE_INVALID") ||
		code == "AUTH_EMPTY_PASSWORD" ||
		code == "SCHEDULE_NOT_A_TEACHER"
}

// decodeBody parses and validates a JSON request body.
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}
