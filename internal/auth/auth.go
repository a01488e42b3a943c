// Package auth resolves the bearer token on incoming requests and exposes the
// signed-in viewer through the request context. Being signed out is not an
// error at this layer; individual routes decide whether they need a viewer.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/harsach/newsportal/internal/user/model"
)

type ctxKey struct{}

// Resolver maps a session token to its user.
type Resolver interface {
	ResolveSession(ctx context.Context, token string) (model.User, error)
}

func With(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// Viewer returns the signed-in user, if any.
func Viewer(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(model.User)
	return u, ok
}

// Middleware attaches the viewer when a valid bearer token is present and
// passes the request through untouched otherwise.
func Middleware(r Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token := bearerToken(req)
			if token != "" {
				if u, err := r.ResolveSession(req.Context(), token); err == nil {
					req = req.WithContext(With(req.Context(), u))
				}
			}
			next.ServeHTTP(w, req)
		})
	}
}

// Require rejects requests without a signed-in viewer. The 401 is a prompt to
// sign in, not a hard failure.
func Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := Viewer(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "sign in required")
			return
		}
		next(w, r)
	}
}

// RequireAdmin rejects requests unless the viewer holds the admin role.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := Viewer(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "sign in required")
			return
		}
		if u.Role != model.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin only")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
