package model

import (
	"encoding/json"
	"testing"
)

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"name set", User{Email: "a@b.c", Name: "Alice"}, "Alice"},
		{"name empty falls back to email", User{Email: "a@b.c"}, "a@b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestCategoryRef_UnmarshalBareID(t *testing.T) {
	var ref CategoryRef
	if err := json.Unmarshal([]byte(`"507f1f77bcf86cd799439011"`), &ref); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ref.ID != "507f1f77bcf86cd799439011" || ref.Category != nil {
		t.Errorf("got %+v; want bare ID with nil category", ref)
	}
	if ref.Title() != "" {
		t.Errorf("Title() = %q; want empty for unresolved ref", ref.Title())
	}
}

func TestCategoryRef_UnmarshalEmbedded(t *testing.T) {
	var ref CategoryRef
	if err := json.Unmarshal([]byte(`{"id":"507f1f77bcf86cd799439011","title":"Go"}`), &ref); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ref.ID != "507f1f77bcf86cd799439011" || ref.Category == nil || ref.Title() != "Go" {
		t.Errorf("got %+v; want resolved category", ref)
	}
}

func TestUserRef_BothShapes(t *testing.T) {
	var bare UserRef
	if err := json.Unmarshal([]byte(`"aabbccddeeff001122334455"`), &bare); err != nil {
		t.Fatalf("unmarshal bare: %v", err)
	}
	if bare.ID != "aabbccddeeff001122334455" || bare.User != nil {
		t.Errorf("bare ref = %+v", bare)
	}

	var embedded UserRef
	if err := json.Unmarshal([]byte(`{"id":"aabbccddeeff001122334455","email":"x@y.z","name":"Xu"}`), &embedded); err != nil {
		t.Fatalf("unmarshal embedded: %v", err)
	}
	if embedded.User == nil || embedded.DisplayName() != "Xu" {
		t.Errorf("embedded ref = %+v", embedded)
	}
}

func TestPost_UnmarshalBackendDocument(t *testing.T) {
	raw := `{
		"id": "64f000000000000000000001",
		"title": "First Post",
		"slug": "first-post",
		"createdAt": "2024-03-01T10:00:00.000Z",
		"owner": {"id": "64f000000000000000000002", "email": "author@example.com", "name": "Author"},
		"categories": [
			{"id": "64f000000000000000000003", "title": "News"},
			"64f000000000000000000004"
		],
		"content": {"root": {"type": "root", "children": [
			{"type": "paragraph", "children": [{"type": "text", "text": "hello"}]}
		]}}
	}`

	var post Post
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if post.Owner.DisplayName() != "Author" {
		t.Errorf("owner display name = %q", post.Owner.DisplayName())
	}
	titles := post.CategoryTitles()
	if len(titles) != 1 || titles[0] != "News" {
		t.Errorf("CategoryTitles() = %v; want [News] (unresolved ref skipped)", titles)
	}
	if post.Content.IsZero() {
		t.Error("content should not be zero")
	}
}
