// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/olegiv/payblog-go/internal/model"
)

// ErrNoToken is returned by Login when the backend accepted the request but
// issued no token.
var ErrNoToken = errors.New("backend returned no session token")

// Login exchanges credentials for a bearer token and the authenticated user.
func (c *Client) Login(ctx context.Context, email, password string) (string, model.User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var result struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/login", "", body, &result); err != nil {
		return "", model.User{}, fmt.Errorf("login: %w", err)
	}
	if result.Token == "" {
		return "", model.User{}, ErrNoToken
	}
	return result.Token, result.User, nil
}

// Me resolves the user behind a bearer token via the backend's session
// validation entry point. A token the backend does not recognize resolves to
// (nil, nil): an anonymous session, not an error.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	var result struct {
		User *model.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/me", token, nil, &result); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
			return nil, nil
		}
		return nil, fmt.Errorf("resolving session: %w", err)
	}
	return result.User, nil
}
