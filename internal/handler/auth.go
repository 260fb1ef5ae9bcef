// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains HTTP handlers for the blog frontend.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/payblog-go/internal/cms"
	"github.com/olegiv/payblog-go/internal/middleware"
	"github.com/olegiv/payblog-go/internal/session"
)

// AuthHandler handles login, logout and identity routes.
type AuthHandler struct {
	client *cms.Client
	isDev  bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *cms.Client, isDev bool) *AuthHandler {
	return &AuthHandler{
		client: client,
		isDev:  isDev,
	}
}

// Login handles POST /login. Credentials are exchanged with the backend for
// a session token which is stored in the payload-token cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if email == "" || password == "" {
		writeJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, user, err := h.client.Login(r.Context(), email, password)
	if err != nil {
		var apiErr *cms.APIError
		if errors.As(err, &apiErr) {
			status := http.StatusUnauthorized
			if !apiErr.IsUnauthorized() {
				status = http.StatusBadGateway
			}
			writeJSONError(w, status, apiErr.Error())
			return
		}
		if errors.Is(err, cms.ErrNoToken) {
			writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.ErrorContext(r.Context(), "login against backend failed", "error", err)
		writeJSONError(w, http.StatusBadGateway, "Authentication failed")
		return
	}

	session.SetToken(w, token, h.isDev)
	slog.InfoContext(r.Context(), "user logged in", "user_id", user.ID)

	writeJSONSuccess(w, map[string]any{
		"user": map[string]any{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Logout handles POST /logout. The cookie is cleared unconditionally; there
// is no server-side session state to tear down.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w, h.isDev)
	writeJSONSuccess(w, nil)
}

// Me handles GET /me and exposes the identity resolved by the LoadUser
// middleware. Anonymous requests get a null user, not an error.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONSuccess(w, map[string]any{"user": nil})
		return
	}
	writeJSONSuccess(w, map[string]any{
		"user": map[string]any{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}
