package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"appraisal/internal/domain/auth"
	"appraisal/internal/transport/http/api"
)

// SessionChecker verifies that the session backing a token is still live.
type SessionChecker interface {
	SessionActive(ctx context.Context, userID, tokenHash string) (bool, error)
}

// Auth attaches the authenticated user to the context when a valid bearer
// token is presented. A signed token alone is not enough when sessions are
// wired in: the session row must still be unexpired and unrevoked, so a
// logout invalidates the token immediately. Invalid or absent tokens leave
// the request anonymous; RequireUser decides whether that matters.
func Auth(secret string, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if sessions != nil {
				live, err := sessions.SessionActive(r.Context(), claims.UserID, auth.HashToken(token))
				if err != nil {
					slog.Warn("session lookup failed", "err", err)
				}
				if !live {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := withUser(r.Context(), auth.UserContext{
				UserID:     claims.UserID,
				EmployeeID: claims.EmployeeID,
				HR:         claims.HR,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireHR rejects requests from users without the HR flag with 403.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		if !user.HR {
			api.Fail(w, http.StatusForbidden, "forbidden", "HR access required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
