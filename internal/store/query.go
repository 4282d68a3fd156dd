package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// Every scoped read shares one shape: a filter on the owning field, a
// created_at sort and a hard cap. The construction lives here, apart
// from the collection calls, so the scoping rules hold without a live
// database behind them.

func newestFirst(limit int64) *options.FindOptions {
	return options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)
}

func oldestFirst(limit int64) *options.FindOptions {
	return options.Find().
		SetSort(bson.M{"created_at": 1}).
		SetLimit(limit)
}

func tipsByAuthorFilter(authorID string) bson.M {
	return bson.M{"author_id": authorID}
}

func approvedTipsFilter() bson.M {
	return bson.M{"approved": true}
}

func reportsByUserFilter(userID string) bson.M {
	return bson.M{"submitted_by_id": userID}
}

func reportsByStatusFilter(status models.ReportStatus) bson.M {
	return bson.M{"status": status}
}

func commentsFilter(targetType models.TargetType, targetID string) bson.M {
	return bson.M{"target_type": targetType, "target_id": targetID}
}

func activityByUserFilter(userID string) bson.M {
	return bson.M{"user_id": userID}
}

// likeDoc builds the document whose composite _id makes the like write
// idempotent: the same (target, user) pair always lands on the same key.
func likeDoc(targetID, userID string) models.Like {
	return models.Like{
		ID:        models.LikeKey(targetID, userID),
		TargetID:  targetID,
		UserID:    userID,
		CreatedAt: models.Timestamp(),
	}
}
