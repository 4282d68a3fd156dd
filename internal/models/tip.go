package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TipCategory is the closed vocabulary for hygiene tips.
type TipCategory string

const (
	TipPersonalHygiene TipCategory = "Personal Hygiene"
	TipWaterSafety     TipCategory = "Water Safety"
	TipWasteManagement TipCategory = "Waste Management"
	TipSanitation      TipCategory = "Sanitation"
	TipFoodSafety      TipCategory = "Food Safety"
	TipDrainage        TipCategory = "Drainage"
	TipSafety          TipCategory = "Safety"
	TipOther           TipCategory = "Other"
)

var tipCategories = map[TipCategory]struct{}{
	TipPersonalHygiene: {},
	TipWaterSafety:     {},
	TipWasteManagement: {},
	TipSanitation:      {},
	TipFoodSafety:      {},
	TipDrainage:        {},
	TipSafety:          {},
	TipOther:           {},
}

// ValidTipCategory reports whether c is one of the eight tip categories.
func ValidTipCategory(c TipCategory) bool {
	_, ok := tipCategories[c]
	return ok
}

// Tip is a community hygiene tip. Immutable after creation except for the
// approval flag and the updated timestamp.
type Tip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    TipCategory        `bson:"category" json:"category"`
	Author      string             `bson:"author" json:"author"`
	AuthorID    string             `bson:"author_id,omitempty" json:"author_id,omitempty"`
	Approved    bool               `bson:"approved" json:"approved"`
	CreatedAt   string             `bson:"created_at" json:"created_at"`
	UpdatedAt   string             `bson:"updated_at" json:"updated_at"`
}

// Normalize fills defaults for fields that may be absent in stored documents.
func (t *Tip) Normalize() {
	if !ValidTipCategory(t.Category) {
		t.Category = TipOther
	}
}
