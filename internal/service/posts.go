// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic and service layer functionality.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/olegiv/payblog-go/internal/cache"
	"github.com/olegiv/payblog-go/internal/cms"
	"github.com/olegiv/payblog-go/internal/model"
)

// recentPostsKey is the cache key under which the recent post feed is stored.
const recentPostsKey = "posts:recent"

// RecentLimit is the number of posts shown in the feed, newest first.
const RecentLimit = 10

// FeedDepth is the relationship resolution depth requested from the backend,
// enough to embed category titles and the post owner.
const FeedDepth = 2

// PostService provides the post feed backed by the CMS with read-through
// caching. If the cache is nil, every read goes to the backend.
type PostService struct {
	client *cms.Client
	cache  cache.Cache
	ttl    time.Duration
}

// NewPostService creates a new PostService.
// If c is nil, a standalone service without caching is created.
func NewPostService(client *cms.Client, c cache.Cache, ttl time.Duration) *PostService {
	return &PostService{
		client: client,
		cache:  c,
		ttl:    ttl,
	}
}

// Recent returns the ten most recent posts, newest first, with categories and
// owner resolved. Results are cached; a cache failure falls through to the
// backend rather than failing the request.
func (s *PostService) Recent(ctx context.Context) ([]model.Post, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, recentPostsKey)
		if err == nil {
			var posts []model.Post
			if err := json.Unmarshal(data, &posts); err == nil {
				return posts, nil
			}
			// Corrupt entry. Drop it and refetch.
			_ = s.cache.Delete(ctx, recentPostsKey)
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			slog.WarnContext(ctx, "post cache read failed", "error", err)
		}
	}

	posts, err := s.client.FindPosts(ctx, cms.FindParams{
		Limit: RecentLimit,
		Sort:  "-createdAt",
		Depth: FeedDepth,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(posts); err == nil {
			if err := s.cache.Set(ctx, recentPostsKey, data, s.ttl); err != nil {
				slog.WarnContext(ctx, "post cache write failed", "error", err)
			}
		}
	}

	return posts, nil
}

// Invalidate drops the cached feed. Called after a post is created so the
// next read reflects the new post.
func (s *PostService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, recentPostsKey); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		slog.WarnContext(ctx, "post cache invalidation failed", "error", err)
	}
}
