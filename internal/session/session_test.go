package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestToken_NoCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := Token(r); got != "" {
		t.Errorf("Token() = %q; want empty string", got)
	}
}

func TestToken_ReadsCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "tok123"})

	if got := Token(r); got != "tok123" {
		t.Errorf("Token() = %q; want %q", got, "tok123")
	}
}

func TestSetToken_CookieAttributes(t *testing.T) {
	w := httptest.NewRecorder()
	SetToken(w, "tok123", false)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Name != "payload-token" {
		t.Errorf("Name = %q; want payload-token", c.Name)
	}
	if c.Value != "tok123" {
		t.Errorf("Value = %q", c.Value)
	}
	if c.MaxAge != 604800 {
		t.Errorf("MaxAge = %d; want 604800", c.MaxAge)
	}
	if !c.HttpOnly {
		t.Error("cookie should be HTTP-only")
	}
	if !c.Secure {
		t.Error("cookie should be secure outside development")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v; want Lax", c.SameSite)
	}
	if c.Path != "/" {
		t.Errorf("Path = %q; want /", c.Path)
	}
}

func TestSetToken_DevDisablesSecure(t *testing.T) {
	w := httptest.NewRecorder()
	SetToken(w, "tok123", true)

	if w.Result().Cookies()[0].Secure {
		t.Error("cookie should not be secure in development")
	}
}

func TestClear_ExpiresCookie(t *testing.T) {
	w := httptest.NewRecorder()
	Clear(w, true)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != TokenCookieName || c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("Clear wrote %+v; want empty expired cookie", c)
	}
}
