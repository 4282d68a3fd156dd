package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hygienewatch/hygienewatch-backend/internal/identity"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
	"github.com/hygienewatch/hygienewatch-backend/internal/session"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
)

type contextKey string

const authKey contextKey = "auth"

// Auth is the per-request view of the session: who is calling and with
// what role. Role defaults to user when the profile is missing.
type Auth struct {
	Token   string
	User    *session.User
	Profile *models.Profile
	Role    models.Role
}

// Authenticate resolves the bearer token (or `token` query parameter, for
// websocket clients) into an Auth on the request context. Requests
// without a valid token pass through unauthenticated; gating happens in
// RequireAuth / RequireRole.
func Authenticate(provider *identity.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			accountID, ok := session.ValidateToken(r.Context(), token)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			user := provider.UserByID(r.Context(), accountID)
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			auth := &Auth{Token: token, User: user, Role: models.RoleUser}
			if profile := store.GetProfile(r.Context(), accountID); profile != nil {
				auth.Profile = profile
				auth.Role = profile.Role
			}

			ctx := context.WithValue(r.Context(), authKey, auth)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthFromRequest returns the request's Auth, or nil when unauthenticated.
func AuthFromRequest(r *http.Request) *Auth {
	auth, _ := r.Context().Value(authKey).(*Auth)
	return auth
}

// RequireAuth rejects unauthenticated requests with a login redirect.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if AuthFromRequest(r) == nil {
			writeDenied(w, http.StatusUnauthorized, "Authentication required", "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests below the required role. Denial is a
// redirect to the default authenticated landing page, never a partial
// execution of the gated action.
func RequireRole(required models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := AuthFromRequest(r)
			if auth == nil {
				writeDenied(w, http.StatusUnauthorized, "Authentication required", "/login")
				return
			}
			if !auth.Role.Allows(required) {
				writeDenied(w, http.StatusForbidden, "Insufficient role", "/dashboard")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeDenied(w http.ResponseWriter, status int, message, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  false,
		"message":  message,
		"redirect": redirect,
	})
}

func extractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
