// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/payblog-go/internal/cache"
	"github.com/olegiv/payblog-go/internal/cms"
	"github.com/olegiv/payblog-go/internal/middleware"
	"github.com/olegiv/payblog-go/internal/model"
	"github.com/olegiv/payblog-go/internal/service"
	"github.com/olegiv/payblog-go/internal/session"
	"github.com/olegiv/payblog-go/internal/testutil"
	"github.com/olegiv/payblog-go/internal/testutil/cmstest"
)

// fixture bundles the stub backend with the handler collaborators.
type fixture struct {
	backend *cmstest.Server
	client  *cms.Client
	posts   *service.PostService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	// Several tests exercise failure paths that log; keep the output quiet.
	old := slog.Default()
	slog.SetDefault(testutil.TestLoggerSilent())
	t.Cleanup(func() { slog.SetDefault(old) })

	backend := cmstest.New(t)
	client := cms.New(backend.URL)

	c := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	return &fixture{
		backend: backend,
		client:  client,
		posts:   service.NewPostService(client, c, time.Minute),
	}
}

// loggedIn registers an account plus token and returns a request decorator
// that attaches the session cookie and user context.
func (f *fixture) loggedIn(t *testing.T, email, name string) (model.User, func(*http.Request) *http.Request) {
	t.Helper()

	user := f.backend.AddAccount(email, "secret", name)
	f.backend.AddToken("tok-"+user.ID, user.ID)

	decorate := func(r *http.Request) *http.Request {
		r.AddCookie(&http.Cookie{Name: session.TokenCookieName, Value: "tok-" + user.ID})
		u := user
		ctx := context.WithValue(r.Context(), middleware.ContextKeyUser, &u)
		return r.WithContext(ctx)
	}
	return user, decorate
}

func postForm(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return body
}
