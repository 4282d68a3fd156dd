// Package handlers is the HTTP surface over the gateway, feed and
// session packages. Every response uses the success/message envelope.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hygienewatch/hygienewatch-backend/internal/identity"
	"github.com/hygienewatch/hygienewatch-backend/internal/services"
	"github.com/hygienewatch/hygienewatch-backend/internal/session"
)

var (
	identityProvider *identity.Provider
	authContext      *session.Context
	geocodeClient    *services.GeocodeClient
	communityFeed    *services.CommunityFeed
)

// Init wires the package-level collaborators handlers depend on.
func Init(provider *identity.Provider, authCtx *session.Context, geocode *services.GeocodeClient, feed *services.CommunityFeed) {
	identityProvider = provider
	authContext = authCtx
	geocodeClient = geocode
	communityFeed = feed
}

// opTimeout bounds gateway calls made on behalf of one request.
const opTimeout = 5 * time.Second

func opContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), opTimeout)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
