package handlers

import (
	"net/http"
	"strings"
)

// GeocodeSearch looks up address suggestions for a free-text query.
// Queries shorter than the minimum length return an empty list.
func GeocodeSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	ctx, cancel := opContext(r)
	defer cancel()

	results := geocodeClient.Search(ctx, query, 5)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"results": results,
	})
}
