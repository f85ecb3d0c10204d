package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appraisal/internal/domain/auth"
)

func TestRateLimitKeysByUserBeforeIP(t *testing.T) {
	limited := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// Same user from two addresses shares one bucket.
	first := httptest.NewRequest(http.MethodGet, "/api/v1/appraisals", nil)
	first = first.WithContext(withUser(first.Context(), auth.UserContext{UserID: "user-1"}))
	first.RemoteAddr = "198.51.100.11:2222"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, first)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/api/v1/appraisals", nil)
	second = second.WithContext(withUser(second.Context(), auth.UserContext{UserID: "user-1"}))
	second.RemoteAddr = "198.51.100.12:3333"
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, second)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled by user key, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on throttled response")
	}

	// A different user is unaffected.
	third := httptest.NewRequest(http.MethodGet, "/api/v1/appraisals", nil)
	third = third.WithContext(withUser(third.Context(), auth.UserContext{UserID: "user-2"}))
	third.RemoteAddr = "198.51.100.11:2222"
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, third)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected other user to pass, got %d", rec.Code)
	}
}

func TestRateLimitAnonymousFallsBackToIP(t *testing.T) {
	limited := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i, want := range []int{http.StatusNoContent, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "203.0.113.7:1000"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i, want, rec.Code)
		}
	}
}

func TestRateLimitDisabledWhenZero(t *testing.T) {
	limited := RateLimit(0, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.8:1000"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected limiter to be disabled, got %d", rec.Code)
		}
	}
}
