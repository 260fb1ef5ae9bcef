// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmstest provides an in-process double of the CMS backend's REST
// contract for tests: login, session validation, post creation and
// collection finds.
package cmstest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/olegiv/payblog-go/internal/model"
	"github.com/olegiv/payblog-go/internal/richtext"
)

// Account is a login the stub accepts.
type Account struct {
	User     model.User
	Password string
}

// StoredPost is a post document held by the stub.
type StoredPost struct {
	ID         string
	Title      string
	Slug       string
	Content    richtext.Document
	Categories []string
	Owner      string
	CreatedAt  time.Time
}

// Server is a fake backend. All fields are guarded by mu; handlers and test
// assertions may run on different goroutines.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	accounts   map[string]Account // by email
	tokens     map[string]string  // token -> user ID
	categories []model.Category
	posts      []StoredPost
	nextID     int

	// FailNext makes the next API call fail with a 500 and the given
	// message, then resets. Empty means no injected failure.
	FailNext string
}

// New starts a stub backend. The caller owns Close (usually via t.Cleanup).
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		accounts: make(map[string]Account),
		tokens:   make(map[string]string),
		nextID:   1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", s.handleLogin)
	mux.HandleFunc("GET /api/users/me", s.handleMe)
	mux.HandleFunc("POST /api/posts", s.handleCreatePost)
	mux.HandleFunc("GET /api/posts", s.handleFindPosts)
	mux.HandleFunc("GET /api/categories", s.handleFindCategories)
	mux.HandleFunc("GET /api/access", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// AddAccount registers a login the stub will accept and returns its user.
func (s *Server) AddAccount(email, password, name string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := model.User{ID: s.newID(), Email: email, Name: name}
	s.accounts[email] = Account{User: user, Password: password}
	return user
}

// AddToken registers a pre-issued token for a user ID.
func (s *Server) AddToken(token, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
}

// AddCategory adds a category to the catalog and returns it.
func (s *Server) AddCategory(title string) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := model.Category{ID: s.newID(), Title: title}
	s.categories = append(s.categories, cat)
	return cat
}

// AddPost seeds a post document directly.
func (s *Server) AddPost(p StoredPost) StoredPost {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.posts = append(s.posts, p)
	return p
}

// Posts returns a copy of the stored posts.
func (s *Server) Posts() []StoredPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StoredPost(nil), s.posts...)
}

// newID mints a 24-character hexadecimal identifier matching the backend's
// scheme. Callers must hold mu.
func (s *Server) newID() string {
	id := fmt.Sprintf("%024x", s.nextID)
	s.nextID++
	return id
}

func (s *Server) failInjected(w http.ResponseWriter) bool {
	s.mu.Lock()
	msg := s.FailNext
	s.FailNext = ""
	s.mu.Unlock()

	if msg == "" {
		return false
	}
	writeErrors(w, http.StatusInternalServerError, msg)
	return true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.failInjected(w) {
		return
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[creds.Email]
	if !ok || account.Password != creds.Password {
		writeErrors(w, http.StatusUnauthorized, "The email or password provided is incorrect.")
		return
	}

	token := "token-" + s.newID()
	s.tokens[token] = account.User.ID

	writeJSON(w, map[string]any{
		"token": token,
		"user":  account.User,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if s.failInjected(w) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.tokens[bearerToken(r)]
	if !ok {
		writeJSON(w, map[string]any{"user": nil})
		return
	}
	for _, account := range s.accounts {
		if account.User.ID == userID {
			writeJSON(w, map[string]any{"user": account.User})
			return
		}
	}
	writeJSON(w, map[string]any{"user": nil})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if s.failInjected(w) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[bearerToken(r)]; !ok {
		writeErrors(w, http.StatusUnauthorized, "You are not allowed to perform this action.")
		return
	}

	var input struct {
		Title      string            `json:"title"`
		Slug       string            `json:"slug"`
		Content    richtext.Document `json:"content"`
		Categories []string          `json:"categories"`
		Owner      string            `json:"owner"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Title == "" || input.Slug == "" {
		writeErrors(w, http.StatusBadRequest, "The following fields are invalid: title, slug")
		return
	}

	post := StoredPost{
		ID:         s.newID(),
		Title:      input.Title,
		Slug:       input.Slug,
		Content:    input.Content,
		Categories: input.Categories,
		Owner:      input.Owner,
		CreatedAt:  time.Now().UTC(),
	}
	s.posts = append(s.posts, post)

	writeJSON(w, map[string]any{
		"message": "Post successfully created.",
		"doc":     s.postDoc(post, 0),
	})
}

func (s *Server) handleFindPosts(w http.ResponseWriter, r *http.Request) {
	if s.failInjected(w) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	depth, _ := strconv.Atoi(r.URL.Query().Get("depth"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	docs := append([]StoredPost(nil), s.posts...)
	if r.URL.Query().Get("sort") == "-createdAt" {
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		})
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}

	out := make([]map[string]any, 0, len(docs))
	for _, p := range docs {
		out = append(out, s.postDoc(p, depth))
	}
	writeJSON(w, map[string]any{"docs": out, "totalDocs": len(s.posts)})
}

func (s *Server) handleFindCategories(w http.ResponseWriter, r *http.Request) {
	if s.failInjected(w) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{"docs": s.categories, "totalDocs": len(s.categories)})
}

// postDoc renders a stored post the way the backend would at the given
// depth: relation fields become embedded objects at depth > 0, bare
// identifiers otherwise. Callers must hold mu.
func (s *Server) postDoc(p StoredPost, depth int) map[string]any {
	doc := map[string]any{
		"id":        p.ID,
		"title":     p.Title,
		"slug":      p.Slug,
		"content":   p.Content,
		"createdAt": p.CreatedAt.Format(time.RFC3339Nano),
	}

	if depth > 0 {
		for _, account := range s.accounts {
			if account.User.ID == p.Owner {
				doc["owner"] = account.User
			}
		}
		if _, ok := doc["owner"]; !ok {
			doc["owner"] = p.Owner
		}
		var cats []model.Category
		for _, id := range p.Categories {
			for _, cat := range s.categories {
				if cat.ID == id {
					cats = append(cats, cat)
				}
			}
		}
		if len(cats) > 0 {
			doc["categories"] = cats
		}
	} else {
		doc["owner"] = p.Owner
		if len(p.Categories) > 0 {
			doc["categories"] = p.Categories
		}
	}

	return doc
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "JWT ")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrors(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"errors": []map[string]string{{"message": message}},
	})
}
