package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// ListComments returns a target's discussion thread oldest-first, capped
// at CommentsLimit.
func ListComments(ctx context.Context, targetType models.TargetType, targetID string) []models.Comment {
	if !Configured() {
		return []models.Comment{}
	}

	cursor, err := database.DB.Collection(commentsCollection).
		Find(ctx, commentsFilter(targetType, targetID), oldestFirst(CommentsLimit))
	if err != nil {
		return []models.Comment{}
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return []models.Comment{}
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments
}

// CreateComment appends a comment and returns the generated id with the
// stored document. Comments are append-only; there is no update path.
func CreateComment(ctx context.Context, c models.Comment) (*models.Comment, error) {
	if !Configured() {
		return nil, ErrNotConfigured
	}
	if !models.ValidTargetType(c.TargetType) {
		return nil, fmt.Errorf("invalid comment target type %q", c.TargetType)
	}

	c.ID = primitive.NewObjectID()
	c.CreatedAt = models.Timestamp()

	if _, err := database.DB.Collection(commentsCollection).InsertOne(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return &c, nil
}
