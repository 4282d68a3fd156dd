// Package store is the typed gateway to the MongoDB collections. Reads
// degrade to empty results on any failure (a stale feed beats a blocked
// page); writes return normalized errors for the caller to surface. Every
// operation tolerates the document store being entirely unconfigured.
package store

import (
	"errors"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
)

// ErrNotConfigured is returned by writes when MongoDB was never connected.
var ErrNotConfigured = errors.New("document store not configured")

const (
	tipsCollection     = "tips"
	reportsCollection  = "reports"
	commentsCollection = "comments"
	likesCollection    = "likes"
	profilesCollection = "profiles"
	activityCollection = "activity_log"
)

// Page caps per feed. Each read is bounded; pagination beyond the cap is
// intentionally not offered to callers.
const (
	CommunityTipsLimit  = 100 // full tip browser
	UserTipsLimit       = 50  // tips authored by one user
	UserReportsLimit    = 50  // reports filed by one user
	CommunityFeedLimit  = 20  // community recent-activity sources and window
	UserFeedSourceLimit = 25  // per-source cap feeding the per-user merge
	UserFeedWindow      = 15  // display window of the per-user merge
	ActivityLogLimit    = 50  // per-user action log
	CommentsLimit       = 200 // discussion thread
	AdminListLimit      = 100 // admin triage listings
)

// Configured reports whether the document store is reachable at all.
// False means reads serve empty and writes fail fast.
func Configured() bool {
	return database.DB != nil
}
