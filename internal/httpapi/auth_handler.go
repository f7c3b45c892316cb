// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/classplan/classplan/internal/auth"
)

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required"`
	Role        string `json:"role" validate:"omitempty,oneof=admin coordinator teacher student"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// accountResponse is the public projection of an account. The password
// hash never leaves the server.
type accountResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAccountResponse(account *auth.Account) accountResponse {
	return accountResponse{
		ID:          account.ID.String(),
		Email:       account.Email,
		DisplayName: account.DisplayName,
		Role:        string(account.Role),
		Active:      account.Active,
		CreatedAt:   account.CreatedAt,
	}
}

func (api *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	role := auth.DefaultRole
	if req.Role != "" {
		parsed, err := auth.ParseRole(req.Role)
		if err != nil {
			writeError(w, api.logger, err)
			return
		}
		role = parsed
	}

	account, err := api.auth.Register(r.Context(), req.Email, req.Password, req.DisplayName, role)
	if err != nil {
		writeError(w, api.logger, err)
		return
	}

	if api.metrics != nil {
		api.metrics.AccountsCreated.Inc()
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (api *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	token, err := api.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if api.metrics != nil {
			api.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		writeError(w, api.logger, err)
		return
	}

	if api.metrics != nil {
		api.metrics.LoginsTotal.WithLabelValues("success").Inc()
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (api *API) handleMe(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r.Context())
	if account == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}
