package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// Like records that userID likes targetID. The composite _id makes the
// upsert idempotent: calling it twice leaves exactly one document.
func Like(ctx context.Context, targetID, userID string) error {
	if !Configured() {
		return ErrNotConfigured
	}

	doc := likeDoc(targetID, userID)
	_, err := database.DB.Collection(likesCollection).
		ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to record like: %w", err)
	}
	return nil
}

// Unlike removes the like relation. Deleting a relation that does not
// exist is success, so unlike is safe to call blind.
func Unlike(ctx context.Context, targetID, userID string) error {
	if !Configured() {
		return ErrNotConfigured
	}

	_, err := database.DB.Collection(likesCollection).
		DeleteOne(ctx, bson.M{"_id": models.LikeKey(targetID, userID)})
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

// LikeCount returns the number of likes on a target; failures read as 0.
func LikeCount(ctx context.Context, targetID string) int64 {
	if !Configured() {
		return 0
	}
	count, err := database.DB.Collection(likesCollection).
		CountDocuments(ctx, bson.M{"target_id": targetID})
	if err != nil {
		return 0
	}
	return count
}

// Liked reports whether userID currently likes targetID; failures read
// as false.
func Liked(ctx context.Context, targetID, userID string) bool {
	if !Configured() {
		return false
	}
	err := database.DB.Collection(likesCollection).
		FindOne(ctx, bson.M{"_id": models.LikeKey(targetID, userID)}).Err()
	return err == nil
}
