// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package richtext models the Lexical-style rich text documents stored by the
// CMS backend and provides plain-text extraction for previews.
package richtext

import "strings"

// Node types used by the backend's editor state.
const (
	TypeRoot      = "root"
	TypeParagraph = "paragraph"
	TypeText      = "text"
)

// Node is a single node in a rich text tree. Only the fields relevant to
// this application are modeled; unknown fields are ignored on unmarshal.
type Node struct {
	Type      string  `json:"type"`
	Text      string  `json:"text,omitempty"`
	Children  []*Node `json:"children,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Format    string  `json:"format,omitempty"`
	Indent    int     `json:"indent,omitempty"`
	Version   int     `json:"version,omitempty"`
}

// Document is a rich text document with a single root node.
type Document struct {
	Root *Node `json:"root,omitempty"`
}

// IsZero reports whether the document carries no content tree at all.
func (d Document) IsZero() bool {
	return d.Root == nil
}

// ExtractText flattens a document into plain display text.
// Each top-level child of the root contributes one line; lines are joined
// with a newline and the result is trimmed. A missing root or missing
// children yields the empty string; malformed trees are treated as empty
// content, never as an error.
func ExtractText(doc Document) string {
	if doc.Root == nil || len(doc.Root.Children) == 0 {
		return ""
	}

	parts := make([]string, 0, len(doc.Root.Children))
	for _, child := range doc.Root.Children {
		parts = append(parts, extractNode(child))
	}

	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// extractNode extracts text from a single node, depth-first.
func extractNode(n *Node) string {
	if n == nil {
		return ""
	}
	if n.Type == TypeText {
		return n.Text
	}
	if len(n.Children) == 0 {
		return ""
	}

	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		parts = append(parts, extractNode(child))
	}
	return strings.Join(parts, " ")
}

// WrapPlainText wraps plain text into the minimal document shape the backend
// expects: a single paragraph holding a single text node, under a root with
// left-to-right direction, empty format and zero indent.
func WrapPlainText(text string) Document {
	return Document{
		Root: &Node{
			Type:      TypeRoot,
			Direction: "ltr",
			Format:    "",
			Indent:    0,
			Version:   1,
			Children: []*Node{
				{
					Type:    TypeParagraph,
					Version: 1,
					Children: []*Node{
						{Type: TypeText, Text: text, Version: 1},
					},
				},
			},
		},
	}
}
