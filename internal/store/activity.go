package store

import (
	"context"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// LogActivity appends an entry to the user's audit trail. Logging is
// best-effort: a lost entry never fails the action that produced it, so
// all errors are swallowed here.
func LogActivity(ctx context.Context, e models.ActivityEntry) {
	if !Configured() || e.UserID == "" {
		return
	}
	if !models.ValidActivityAction(e.Action) {
		return
	}
	e.CreatedAt = models.Timestamp()

	_, _ = database.DB.Collection(activityCollection).InsertOne(ctx, e)
}

// ListActivityByUser returns the newest audit entries for one user,
// capped at ActivityLogLimit.
func ListActivityByUser(ctx context.Context, userID string) []models.ActivityEntry {
	if !Configured() {
		return []models.ActivityEntry{}
	}

	cursor, err := database.DB.Collection(activityCollection).
		Find(ctx, activityByUserFilter(userID), newestFirst(ActivityLogLimit))
	if err != nil {
		return []models.ActivityEntry{}
	}
	defer cursor.Close(ctx)

	var entries []models.ActivityEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return []models.ActivityEntry{}
	}
	for i := range entries {
		entries[i].Normalize()
	}
	if entries == nil {
		entries = []models.ActivityEntry{}
	}
	return entries
}
