package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// NewTip carries the caller-supplied fields of a tip. Approval and both
// timestamps are stamped by CreateTip.
type NewTip struct {
	Title       string
	Description string
	Category    models.TipCategory
	Author      string
	AuthorID    string
}

// ListTips returns the newest tips, capped at CommunityTipsLimit.
func ListTips(ctx context.Context) []models.Tip {
	return findTips(ctx, bson.M{}, CommunityTipsLimit)
}

// ListTipsByAuthor returns the newest tips authored by one user.
func ListTipsByAuthor(ctx context.Context, authorID string, limit int64) []models.Tip {
	return findTips(ctx, tipsByAuthorFilter(authorID), limit)
}

// ListApprovedTips returns the newest approved tips, for community feeds.
func ListApprovedTips(ctx context.Context, limit int64) []models.Tip {
	return findTips(ctx, approvedTipsFilter(), limit)
}

func findTips(ctx context.Context, filter bson.M, limit int64) []models.Tip {
	if !Configured() {
		return []models.Tip{}
	}

	cursor, err := database.DB.Collection(tipsCollection).Find(ctx, filter, newestFirst(limit))
	if err != nil {
		return []models.Tip{}
	}
	defer cursor.Close(ctx)

	var tips []models.Tip
	if err := cursor.All(ctx, &tips); err != nil {
		return []models.Tip{}
	}
	for i := range tips {
		tips[i].Normalize()
	}
	if tips == nil {
		tips = []models.Tip{}
	}
	return tips
}

// GetTip returns one tip by id, or nil when absent or unreadable.
func GetTip(ctx context.Context, id string) *models.Tip {
	if !Configured() {
		return nil
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	var tip models.Tip
	if err := database.DB.Collection(tipsCollection).
		FindOne(ctx, bson.M{"_id": objectID}).Decode(&tip); err != nil {
		return nil
	}
	tip.Normalize()
	return &tip
}

// CreateTip inserts a tip stamped with the current time on both
// timestamps and returns the generated id. Tips are auto-approved at
// creation; only an admin toggles the flag afterwards.
func CreateTip(ctx context.Context, p NewTip) (string, error) {
	if !Configured() {
		return "", ErrNotConfigured
	}
	if !models.ValidTipCategory(p.Category) {
		p.Category = models.TipOther
	}

	now := models.Timestamp()
	tip := models.Tip{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Author:      p.Author,
		AuthorID:    p.AuthorID,
		Approved:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := database.DB.Collection(tipsCollection).InsertOne(ctx, tip)
	if err != nil {
		return "", fmt.Errorf("failed to create tip: %w", err)
	}
	id := res.InsertedID.(primitive.ObjectID).Hex()

	LogActivity(ctx, models.ActivityEntry{
		UserID:      p.AuthorID,
		Action:      models.ActionTipSubmitted,
		Description: fmt.Sprintf("Hygiene tip %q was submitted", p.Title),
		TargetType:  models.TargetTip,
		TargetID:    id,
	})

	return id, nil
}

// SetTipApproval toggles the approval flag and bumps the updated
// timestamp. Admin-gated at the handler layer.
func SetTipApproval(ctx context.Context, id string, approved bool) error {
	if !Configured() {
		return ErrNotConfigured
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid tip id: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"approved":   approved,
		"updated_at": models.Timestamp(),
	}}
	res, err := database.DB.Collection(tipsCollection).
		UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update tip approval: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("tip not found")
	}
	return nil
}
