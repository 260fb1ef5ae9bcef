// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/olegiv/payblog-go/internal/model"
	"github.com/olegiv/payblog-go/internal/richtext"
)

// PostInput is the document sent to the backend's post collection.
// Categories is omitted entirely when empty so posts without categories
// store no relation at all.
type PostInput struct {
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Content    richtext.Document `json:"content"`
	Categories []string          `json:"categories,omitempty"`
	Owner      string            `json:"owner"`
}

// FindParams controls collection reads. Depth is the number of relationship
// levels the backend resolves into embedded objects instead of bare
// identifiers.
type FindParams struct {
	Limit int
	Sort  string
	Depth int
}

// CreatePost persists a new post as the token's user. The backend performs
// the write as a single atomic call; on failure nothing is persisted.
func (c *Client) CreatePost(ctx context.Context, token string, input PostInput) (model.Post, error) {
	var result struct {
		Doc model.Post `json:"doc"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/posts", token, input, &result); err != nil {
		return model.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return result.Doc, nil
}

// FindPosts reads posts from the backend.
func (c *Client) FindPosts(ctx context.Context, params FindParams) ([]model.Post, error) {
	query := encodeQuery(map[string]string{
		"limit": positiveInt(params.Limit),
		"sort":  params.Sort,
		"depth": positiveInt(params.Depth),
	})

	var result struct {
		Docs []model.Post `json:"docs"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/posts"+query, "", nil, &result); err != nil {
		return nil, fmt.Errorf("finding posts: %w", err)
	}
	return result.Docs, nil
}

// FindCategories reads the full category catalog.
func (c *Client) FindCategories(ctx context.Context) ([]model.Category, error) {
	// Categories are a small managed list; a high limit reads them all.
	query := encodeQuery(map[string]string{"limit": "100"})

	var result struct {
		Docs []model.Category `json:"docs"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/categories"+query, "", nil, &result); err != nil {
		return nil, fmt.Errorf("finding categories: %w", err)
	}
	return result.Docs, nil
}

func positiveInt(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
