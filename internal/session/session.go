// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session manages the bearer token cookie that carries the backend
// session. No session state is kept server-side; the backend validates the
// token on every request.
package session

import (
	"net/http"
	"time"
)

// TokenCookieName is the cookie the backend's own clients use, kept for
// compatibility so sessions survive switching between frontends.
const TokenCookieName = "payload-token"

// Lifetime is how long the token cookie is kept by the browser.
const Lifetime = 7 * 24 * time.Hour

// Token reads the bearer token from the request cookie.
// Returns "" when no session cookie is present.
func Token(r *http.Request) string {
	c, err := r.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetToken stores the bearer token in an HTTP-only cookie scoped to the
// whole site. Secure is set outside development.
func SetToken(w http.ResponseWriter, token string, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   !isDev,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the token cookie. Safe to call without an active session.
func Clear(w http.ResponseWriter, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !isDev,
		SameSite: http.SameSiteLaxMode,
	})
}
