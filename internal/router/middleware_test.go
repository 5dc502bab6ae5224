package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/salesorder-next/internal/config"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	cases := []struct {
		name        string
		origin      string
		allowed     []string
		credentials bool
		want        string
	}{
		{"wildcard", "https://example.com", []string{"*"}, false, "*"},
		{"wildcard with credentials echoes", "https://example.com", []string{"*"}, true, "https://example.com"},
		{"exact match", "https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false, "https://a.example.com"},
		{"exact match wins over wildcard", "https://b.example.com", []string{"*", "https://b.example.com"}, false, "https://b.example.com"},
		{"unmatched", "https://x.example.com", []string{"https://a.example.com"}, false, ""},
	}
	for _, tc := range cases {
		if got := resolveAllowedOrigin(tc.origin, tc.allowed, tc.credentials); got != tc.want {
			t.Fatalf("%s: want %q got %q", tc.name, tc.want, got)
		}
	}
}

func serveWithRequestID(r http.Handler, incoming string) (*httptest.ResponseRecorder, map[string]string) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if incoming != "" {
		req.Header.Set(requestIDHeader, incoming)
	}
	r.ServeHTTP(w, req)
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w, body := serveWithRequestID(r, "req-123")
	if got := w.Header().Get(requestIDHeader); got != "req-123" || body["request_id"] != "req-123" {
		t.Fatalf("incoming request id should be kept, header=%s body=%v", got, body)
	}

	w, body = serveWithRequestID(r, "")
	generated := w.Header().Get(requestIDHeader)
	if strings.TrimSpace(generated) == "" || body["request_id"] != generated {
		t.Fatalf("request id should be generated, header=%s body=%v", generated, body)
	}

	w, _ = serveWithRequestID(r, "bad id with spaces")
	if got := w.Header().Get(requestIDHeader); got == "bad id with spaces" || got == "" {
		t.Fatalf("invalid request id should be replaced, got %q", got)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}, MaxAge: 600}))
	r.PATCH("/forms/:id/fields", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/forms/abc/fields", nil)
	req.Header.Set("Origin", "https://app.example.com")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status want 204 got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("unexpected allow origin: %s", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "PATCH") {
		t.Fatalf("default methods should include PATCH, got %s", w.Header().Get("Access-Control-Allow-Methods"))
	}
	if w.Header().Get("Access-Control-Max-Age") != "600" {
		t.Fatalf("unexpected max age: %s", w.Header().Get("Access-Control-Max-Age"))
	}
}
