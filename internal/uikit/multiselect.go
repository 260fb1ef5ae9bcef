// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit provides reusable view-model types shared across
// frontend components.
package uikit

import (
	"strings"

	"github.com/olegiv/payblog-go/internal/model"
)

// MultiSelect models a searchable category picker with a dropdown that is
// either open or closed. The selection is reported to the owner through an
// onChange callback; the component itself holds the authoritative copy so
// toggle order is preserved.
//
// While the dropdown is open it holds an outside-dismiss subscription,
// released again when the dropdown closes. The subscription exists only for
// the open interval.
type MultiSelect struct {
	options  []model.Category
	selected []string
	search   string
	open     bool

	onChange  func([]string)
	subscribe func(dismiss func()) (unsubscribe func())

	unsubscribe func()
}

// NewMultiSelect creates a multi-select over the given catalog.
// onChange receives a copy of the selection after every toggle; subscribe is
// called when the dropdown opens and must return the matching release
// function. Either callback may be nil.
func NewMultiSelect(options []model.Category, onChange func([]string), subscribe func(func()) func()) *MultiSelect {
	return &MultiSelect{
		options:   options,
		onChange:  onChange,
		subscribe: subscribe,
	}
}

// Empty reports whether the catalog has no categories at all.
// The UI renders a static message instead of the control in that case.
func (m *MultiSelect) Empty() bool {
	return len(m.options) == 0
}

// IsOpen reports whether the dropdown is open.
func (m *MultiSelect) IsOpen() bool {
	return m.open
}

// Open opens the dropdown and acquires the outside-dismiss subscription.
// Opening an already-open dropdown is a no-op.
func (m *MultiSelect) Open() {
	if m.open {
		return
	}
	m.open = true
	if m.subscribe != nil {
		m.unsubscribe = m.subscribe(m.Dismiss)
	}
}

// Close closes the dropdown and releases the dismiss subscription.
func (m *MultiSelect) Close() {
	if !m.open {
		return
	}
	m.open = false
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Dismiss handles a click outside the dropdown. Same effect as Close.
func (m *MultiSelect) Dismiss() {
	m.Close()
}

// SetSearch updates the filter string.
func (m *MultiSelect) SetSearch(s string) {
	m.search = s
}

// Search returns the current filter string.
func (m *MultiSelect) Search() string {
	return m.search
}

// Filtered returns the categories whose title contains the search string,
// case-insensitively. An empty search returns the full catalog. The result
// is recomputed on every call.
func (m *MultiSelect) Filtered() []model.Category {
	if m.search == "" {
		return m.options
	}

	needle := strings.ToLower(m.search)
	var out []model.Category
	for _, opt := range m.options {
		if strings.Contains(strings.ToLower(opt.Title), needle) {
			out = append(out, opt)
		}
	}
	return out
}

// Toggle flips an ID in or out of the selection. A selected ID is removed;
// an unselected one is appended, so the selection keeps toggle order.
func (m *MultiSelect) Toggle(id string) {
	found := false
	next := make([]string, 0, len(m.selected)+1)
	for _, sel := range m.selected {
		if sel == id {
			found = true
			continue
		}
		next = append(next, sel)
	}
	if !found {
		next = append(next, id)
	}
	m.selected = next

	if m.onChange != nil {
		m.onChange(m.Selected())
	}
}

// Selected returns a copy of the current selection in toggle order.
func (m *MultiSelect) Selected() []string {
	out := make([]string, len(m.selected))
	copy(out, m.selected)
	return out
}

// IsSelected reports whether the given ID is currently selected.
func (m *MultiSelect) IsSelected(id string) bool {
	for _, sel := range m.selected {
		if sel == id {
			return true
		}
	}
	return false
}
