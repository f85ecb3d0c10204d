package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appraisal/internal/domain/auth"
)

func TestAuthMiddlewareSetsUser(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", EmployeeID: "e1", HR: true}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Auth(secret, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		if user.UserID != "u1" || user.EmployeeID != "e1" || !user.HR {
			t.Fatalf("unexpected user: %+v", user)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthMiddlewareLeavesBadTokenAnonymous(t *testing.T) {
	for _, header := range []string{"", "Bearer not-a-token", "Basic abc"} {
		handler := Auth("secret", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUser(r.Context()); ok {
				t.Fatalf("did not expect user in context for header %q", header)
			}
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("other-secret", auth.Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Auth("secret", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("token signed with the wrong secret must not authenticate")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

type fakeSessions struct {
	live     bool
	userID   string
	tokenSum string
}

func (f *fakeSessions) SessionActive(_ context.Context, userID, tokenHash string) (bool, error) {
	f.userID = userID
	f.tokenSum = tokenHash
	return f.live, nil
}

func TestAuthMiddlewareChecksSession(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", EmployeeID: "e1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	sessions := &fakeSessions{live: true}
	handler := Auth(secret, sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			t.Fatal("expected user in context while the session is live")
		}
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if sessions.userID != "u1" {
		t.Fatalf("expected session lookup for u1, got %q", sessions.userID)
	}
	if sessions.tokenSum != auth.HashToken(token) {
		t.Fatal("session lookup must use the hashed token")
	}

	// Once the session is revoked a still-valid signature must not authenticate.
	sessions.live = false
	handler = Auth(secret, sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("revoked session must leave the request anonymous")
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for anonymous requests")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireHR(t *testing.T) {
	handler := RequireHR(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	regular := httptest.NewRequest(http.MethodGet, "/", nil)
	regular = regular.WithContext(withUser(regular.Context(), auth.UserContext{UserID: "u1", EmployeeID: "e1"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, regular)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-hr user, got %d", rec.Code)
	}

	hr := httptest.NewRequest(http.MethodGet, "/", nil)
	hr = hr.WithContext(withUser(hr.Context(), auth.UserContext{UserID: "u2", HR: true}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, hr)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for hr user, got %d", rec.Code)
	}
}
