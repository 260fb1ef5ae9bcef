// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"

	"github.com/olegiv/payblog-go/internal/richtext"
)

// Post represents a blog post as returned by the backend. Relationship
// fields arrive either as bare identifiers or as embedded objects depending
// on the find depth.
type Post struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Content    richtext.Document `json:"content"`
	Categories []CategoryRef     `json:"categories,omitempty"`
	Owner      UserRef           `json:"owner"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// CategoryRef is a post→category reference. With sufficient find depth the
// backend embeds the full category; otherwise only the identifier is known.
type CategoryRef struct {
	ID       string
	Category *Category
}

// Title returns the resolved category title, or "" when the reference was
// not resolved.
func (r CategoryRef) Title() string {
	if r.Category != nil {
		return r.Category.Title
	}
	return ""
}

// UnmarshalJSON accepts either a bare identifier string or an embedded
// category object.
func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Category = nil
		return nil
	}

	var cat Category
	if err := json.Unmarshal(data, &cat); err != nil {
		return err
	}
	r.ID = cat.ID
	r.Category = &cat
	return nil
}

// MarshalJSON writes the embedded object when resolved, the bare identifier
// otherwise.
func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if r.Category != nil {
		return json.Marshal(r.Category)
	}
	return json.Marshal(r.ID)
}

// UserRef is a post→owner reference, id-or-object like CategoryRef.
type UserRef struct {
	ID   string
	User *User
}

// DisplayName returns the resolved owner's display name, or "" when the
// reference was not resolved.
func (r UserRef) DisplayName() string {
	if r.User != nil {
		return r.User.DisplayName()
	}
	return ""
}

// UnmarshalJSON accepts either a bare identifier string or an embedded
// user object.
func (r *UserRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.User = nil
		return nil
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return err
	}
	r.ID = user.ID
	r.User = &user
	return nil
}

// MarshalJSON writes the embedded object when resolved, the bare identifier
// otherwise.
func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	return json.Marshal(r.ID)
}

// CategoryTitles returns the resolved titles of the post's categories,
// skipping unresolved references.
func (p Post) CategoryTitles() []string {
	var titles []string
	for _, ref := range p.Categories {
		if t := ref.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}
