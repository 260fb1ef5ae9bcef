// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "regexp"

// categoryIDRegex matches the backend's document identifier scheme:
// a 24-character hexadecimal string.
var categoryIDRegex = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// Category represents a post category. Categories are managed entirely in
// the backend's admin surface and are read-only here.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// IsValidCategoryID reports whether id matches the backend's identifier
// scheme.
func IsValidCategoryID(id string) bool {
	return categoryIDRegex.MatchString(id)
}

// FilterCategoryIDs returns the identifiers that match the backend's
// identifier scheme, preserving input order. Invalid identifiers are
// dropped silently rather than rejected; a post submitted with only invalid
// identifiers simply stores no category relation.
func FilterCategoryIDs(ids []string) []string {
	var valid []string
	for _, id := range ids {
		if IsValidCategoryID(id) {
			valid = append(valid, id)
		}
	}
	return valid
}
