package handlers

import (
	"net/http"

	"github.com/hygienewatch/hygienewatch-backend/internal/feed"
	"github.com/hygienewatch/hygienewatch-backend/internal/middleware"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
)

// GetRecentActivity serves the community feed: recent reports merged
// with approved tips, newest first. Reads come from the warm snapshot
// the polled subscriptions maintain.
func GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   communityFeed.Items(),
	})
}

// GetMyActivity serves the caller's merged feed: their reports and tips,
// plus their action log when `include_log=true`. Each source is fetched
// at its own cap; the merge truncates to the dashboard window.
func GetMyActivity(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)
	ctx, cancel := opContext(r)
	defer cancel()

	sources := [][]feed.Item{
		feed.ReportItems(store.ListReportsByUser(ctx, auth.User.ID, store.UserFeedSourceLimit)),
		feed.TipItems(store.ListTipsByAuthor(ctx, auth.User.ID, store.UserFeedSourceLimit)),
	}
	if r.URL.Query().Get("include_log") == "true" {
		sources = append(sources, feed.LogItems(store.ListActivityByUser(ctx, auth.User.ID)))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   feed.Merge(store.UserFeedWindow, sources...),
	})
}

// GetMyActivityLog serves the caller's raw action log, newest first.
func GetMyActivityLog(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)
	ctx, cancel := opContext(r)
	defer cancel()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entries": store.ListActivityByUser(ctx, auth.User.ID),
	})
}
