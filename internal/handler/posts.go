// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/payblog-go/internal/cms"
	"github.com/olegiv/payblog-go/internal/middleware"
	"github.com/olegiv/payblog-go/internal/model"
	"github.com/olegiv/payblog-go/internal/richtext"
	"github.com/olegiv/payblog-go/internal/service"
	"github.com/olegiv/payblog-go/internal/session"
	"github.com/olegiv/payblog-go/internal/util"
)

// PostHandler handles post creation.
type PostHandler struct {
	client    *cms.Client
	posts     *service.PostService
	sanitizer *bluemonday.Policy
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(client *cms.Client, posts *service.PostService) *PostHandler {
	return &PostHandler{
		client:    client,
		posts:     posts,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Create handles POST /posts. Requires an authenticated user loaded into the
// request context. The backend performs the write as a single call, so a
// failure leaves no partial state behind.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "You must be logged in to create a post")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := strings.TrimSpace(h.stripMarkup(r.PostFormValue("title")))
	if title == "" {
		writeJSONError(w, http.StatusBadRequest, "Title is required")
		return
	}

	// The home-page script derives the slug client-side; recompute it here
	// when it is missing or malformed.
	slug := strings.TrimSpace(r.PostFormValue("slug"))
	if !util.IsValidSlug(slug) {
		slug = util.Slugify(title)
	}

	content := strings.TrimSpace(h.stripMarkup(r.PostFormValue("content")))

	// Invalid category IDs are dropped silently; the backend validates
	// existence of the survivors.
	categories := model.FilterCategoryIDs(splitCategoryIDs(r.PostFormValue("categories")))

	input := cms.PostInput{
		Title:      title,
		Slug:       slug,
		Content:    richtext.WrapPlainText(content),
		Categories: categories,
		Owner:      user.ID,
	}

	post, err := h.client.CreatePost(r.Context(), session.Token(r), input)
	if err != nil {
		var apiErr *cms.APIError
		if errors.As(err, &apiErr) {
			status := http.StatusBadGateway
			if apiErr.IsUnauthorized() {
				status = http.StatusUnauthorized
			}
			writeJSONError(w, status, apiErr.Error())
			return
		}
		slog.ErrorContext(r.Context(), "post creation against backend failed", "error", err)
		writeJSONError(w, http.StatusBadGateway, "Failed to create post")
		return
	}

	// The home feed must reflect the new post on the next read.
	h.posts.Invalidate(r.Context())
	slog.InfoContext(r.Context(), "post created", "post_id", post.ID, "user_id", user.ID)

	writeJSONSuccess(w, map[string]any{
		"post": map[string]any{
			"id":    post.ID,
			"title": post.Title,
			"slug":  post.Slug,
		},
	})
}

// stripMarkup removes any HTML markup from a submitted field and returns the
// remaining plain text. The sanitizer entity-encodes its output, so the
// result is unescaped again: these fields are stored as plain text and
// escaping is the renderer's job.
func (h *PostHandler) stripMarkup(s string) string {
	return html.UnescapeString(h.sanitizer.Sanitize(s))
}

// splitCategoryIDs splits the comma-separated category field into trimmed
// candidate IDs.
func splitCategoryIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
