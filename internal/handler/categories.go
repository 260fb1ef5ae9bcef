// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/olegiv/payblog-go/internal/cms"
)

// CategoryHandler proxies the backend's category catalog for the
// multi-select on the home page.
type CategoryHandler struct {
	client *cms.Client
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(client *cms.Client) *CategoryHandler {
	return &CategoryHandler{client: client}
}

// List handles GET /api/categories. The response mirrors the backend's
// collection shape so the frontend script can consume either directly.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.client.FindCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "category listing against backend failed", "error", err)
		writeJSONError(w, http.StatusBadGateway, "Failed to load categories")
		return
	}

	docs := make([]map[string]any, 0, len(categories))
	for _, c := range categories {
		docs = append(docs, map[string]any{
			"id":    c.ID,
			"title": c.Title,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"docs": docs})
}
