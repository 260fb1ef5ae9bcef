package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginLimiter_AllowsBurst(t *testing.T) {
	ll := NewLoginLimiter(LoginLimiterConfig{RateLimit: 0.5, Burst: 3})
	defer ll.Close()

	for i := 0; i < 3; i++ {
		if !ll.Allow("10.0.0.1") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if ll.Allow("10.0.0.1") {
		t.Error("request beyond burst should be denied")
	}
	// A different IP has its own limiter
	if !ll.Allow("10.0.0.2") {
		t.Error("separate IP should not share the limit")
	}
}

func TestLoginLimiter_MiddlewareSkipsGet(t *testing.T) {
	ll := NewLoginLimiter(LoginLimiterConfig{RateLimit: 0.5, Burst: 1})
	defer ll.Close()

	h := ll.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// GET requests are never rate limited
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %d status = %d; want 200", i+1, rec.Code)
		}
	}
}

func TestLoginLimiter_MiddlewareLimitsPost(t *testing.T) {
	ll := NewLoginLimiter(LoginLimiterConfig{RateLimit: 0.5, Burst: 1})
	defer ll.Close()

	h := ll.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Real-IP", "192.0.2.1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first POST status = %d; want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second POST status = %d; want 429", rec.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		realIP     string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"x-real-ip wins", "203.0.113.5", "198.51.100.1", "10.0.0.1:1234", "203.0.113.5"},
		{"x-forwarded-for next", "", "198.51.100.1", "10.0.0.1:1234", "198.51.100.1"},
		{"remote addr fallback", "", "", "10.0.0.1:1234", "10.0.0.1:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/login", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP = %q; want %q", got, tt.want)
			}
		})
	}
}
