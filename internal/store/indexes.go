package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
)

// EnsureIndexes configures the indexes behind every scoped read. Called on
// startup from main once Mongo has connected; a no-op when it hasn't.
func EnsureIndexes(ctx context.Context) error {
	if !Configured() {
		return nil
	}

	type colIndexes struct {
		collection string
		models     []mongo.IndexModel
	}

	all := []colIndexes{
		{tipsCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_tips_author_created"),
			},
			{
				Keys:    bson.D{{Key: "approved", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_tips_approved_created"),
			},
		}},
		{reportsCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "submitted_by_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_reports_submitter_created"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_reports_status_created"),
			},
		}},
		{commentsCollection, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "target_type", Value: 1},
					{Key: "target_id", Value: 1},
					{Key: "created_at", Value: 1},
				},
				Options: options.Index().SetName("idx_comments_target_created"),
			},
		}},
		{likesCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "target_id", Value: 1}},
				Options: options.Index().SetName("idx_likes_target"),
			},
		}},
		{activityCollection, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_activity_user_created"),
			},
		}},
	}

	for _, ci := range all {
		col := database.DB.Collection(ci.collection)
		for _, m := range ci.models {
			if _, err := col.Indexes().CreateOne(ctx, m); err != nil {
				return err
			}
		}
	}
	return nil
}
