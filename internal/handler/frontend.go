// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/payblog-go/internal/middleware"
	"github.com/olegiv/payblog-go/internal/model"
	"github.com/olegiv/payblog-go/internal/render"
	"github.com/olegiv/payblog-go/internal/richtext"
	"github.com/olegiv/payblog-go/internal/service"
)

// FrontendHandler renders the public pages.
type FrontendHandler struct {
	renderer *render.Renderer
	posts    *service.PostService
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(renderer *render.Renderer, posts *service.PostService) *FrontendHandler {
	return &FrontendHandler{
		renderer: renderer,
		posts:    posts,
	}
}

// FeedEntry is one post prepared for the home template.
type FeedEntry struct {
	Title      string
	Slug       string
	Categories []string
	Owner      string
	CreatedAt  time.Time
	Preview    string
}

// HomeData is the view model for the home page.
type HomeData struct {
	User  *model.User
	Posts []FeedEntry
}

// Home handles GET /. Anonymous visitors see the login form; authenticated
// users get the post form and the recent feed.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := HomeData{
		User: middleware.GetUser(r),
	}

	posts, err := h.posts.Recent(r.Context())
	if err != nil {
		// The page still renders; the feed section shows as empty.
		slog.ErrorContext(r.Context(), "loading recent posts failed", "error", err)
	}

	for _, p := range posts {
		data.Posts = append(data.Posts, FeedEntry{
			Title:      p.Title,
			Slug:       p.Slug,
			Categories: p.CategoryTitles(),
			Owner:      p.Owner.DisplayName(),
			CreatedAt:  p.CreatedAt,
			Preview:    richtext.ExtractText(p.Content),
		})
	}

	if err := h.renderer.Render(w, "home", render.TemplateData{
		Title: "Blog",
		Data:  data,
	}); err != nil {
		slog.ErrorContext(r.Context(), "rendering home page failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
