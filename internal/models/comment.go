package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TargetType says what kind of record a comment or like is attached to.
type TargetType string

const (
	TargetTip    TargetType = "tip"
	TargetReport TargetType = "report"
)

// ValidTargetType reports whether t is a known target type.
func ValidTargetType(t TargetType) bool {
	return t == TargetTip || t == TargetReport
}

// Comment is an append-only discussion entry. There is no edit or delete
// path, so the model carries no updated timestamp.
type Comment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TargetType TargetType         `bson:"target_type" json:"target_type"`
	TargetID   string             `bson:"target_id" json:"target_id"`
	Author     string             `bson:"author" json:"author"`
	AuthorID   string             `bson:"author_id" json:"author_id"`
	Body       string             `bson:"body" json:"body"`
	CreatedAt  string             `bson:"created_at" json:"created_at"`
}
