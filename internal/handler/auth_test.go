// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/olegiv/payblog-go/internal/session"
)

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	f.backend.AddAccount("alice@example.com", "secret", "Alice")

	h := NewAuthHandler(f.client, true)
	rec := httptest.NewRecorder()
	h.Login(rec, postForm("/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"secret"},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v; want true", body["success"])
	}
	user := body["user"].(map[string]any)
	if user["email"] != "alice@example.com" || user["name"] != "Alice" {
		t.Errorf("user = %v", user)
	}

	// Session cookie set
	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == session.TokenCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("payload-token cookie not set on successful login")
	}
}

func TestLogin_MissingFields(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.client, true)

	tests := []struct {
		name   string
		values url.Values
	}{
		{"no email", url.Values{"password": {"secret"}}},
		{"no password", url.Values{"email": {"alice@example.com"}}},
		{"empty form", url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Login(rec, postForm("/login", tt.values))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d; want 400", rec.Code)
			}
			body := decodeJSON(t, rec)
			if body["error"] != "Email and password are required" {
				t.Errorf("error = %q", body["error"])
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Error("no cookie may be set on validation failure")
			}
		})
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	f := newFixture(t)
	f.backend.AddAccount("alice@example.com", "secret", "Alice")

	h := NewAuthHandler(f.client, true)
	rec := httptest.NewRecorder()
	h.Login(rec, postForm("/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	}))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v; want false", body["success"])
	}
	// Backend message surfaces verbatim
	if body["error"] != "The email or password provided is incorrect." {
		t.Errorf("error = %q", body["error"])
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no cookie may be set on failed login")
	}
}

func TestLogin_BackendFailure(t *testing.T) {
	f := newFixture(t)
	f.backend.FailNext = "database connection lost"

	h := NewAuthHandler(f.client, true)
	rec := httptest.NewRecorder()
	h.Login(rec, postForm("/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"secret"},
	}))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d; want 502", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["error"] != "database connection lost" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.client, true)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v; want true", body["success"])
	}

	// Cookie cleared
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.TokenCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("payload-token cookie not cleared on logout")
	}
}

func TestMe_Anonymous(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.client, true)

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["user"] != nil {
		t.Errorf("user = %v; want null", body["user"])
	}
}

func TestMe_Authenticated(t *testing.T) {
	f := newFixture(t)
	_, decorate := f.loggedIn(t, "alice@example.com", "Alice")

	h := NewAuthHandler(f.client, true)
	rec := httptest.NewRecorder()
	h.Me(rec, decorate(httptest.NewRequest(http.MethodGet, "/me", nil)))

	body := decodeJSON(t, rec)
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("user = %v; want object", body["user"])
	}
	if user["email"] != "alice@example.com" {
		t.Errorf("email = %q", user["email"])
	}
}
