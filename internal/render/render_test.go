// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<html><title>{{.Title}}</title><body>{{template "content" .}}</body></html>{{end}}`),
		},
		"pages/home.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<h1>{{.Data}}</h1>{{end}}`),
		},
	}
}

func TestNew_ParsesTemplates(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := r.templates["home"]; !ok {
		t.Error("home template not parsed")
	}
}

func TestRender(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := r.Render(rec, "home", TemplateData{Title: "Blog", Data: "Hello"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<title>Blog</title>") {
		t.Errorf("title missing: %s", body)
	}
	if !strings.Contains(body, "<h1>Hello</h1>") {
		t.Errorf("content missing: %s", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := r.Render(httptest.NewRecorder(), "missing", TemplateData{}); err == nil {
		t.Error("Render of unknown template should fail")
	}
}

func TestTemplateFuncs(t *testing.T) {
	r := &Renderer{}
	funcs := r.templateFuncs()

	formatDate := funcs["formatDate"].(func(time.Time) string)
	got := formatDate(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	if got != "Mar 14, 2026" {
		t.Errorf("formatDate = %q; want Mar 14, 2026", got)
	}

	truncate := funcs["truncate"].(func(string, int) string)
	if got := truncate("hello world", 5); got != "hello..." {
		t.Errorf("truncate = %q; want hello...", got)
	}
	if got := truncate("hi", 5); got != "hi" {
		t.Errorf("truncate short = %q; want hi", got)
	}
}
