package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ActivityAction is the closed vocabulary of the per-user audit trail.
type ActivityAction string

const (
	ActionTipSubmitted    ActivityAction = "tip_submitted"
	ActionReportSubmitted ActivityAction = "report_submitted"
	ActionProfileUpdated  ActivityAction = "profile_updated"
	ActionPasswordChanged ActivityAction = "password_changed"
	ActionPrivacyUpdated  ActivityAction = "privacy_updated"
	ActionPhotoUpdated    ActivityAction = "photo_updated"
)

var activityActions = map[ActivityAction]struct{}{
	ActionTipSubmitted:    {},
	ActionReportSubmitted: {},
	ActionProfileUpdated:  {},
	ActionPasswordChanged: {},
	ActionPrivacyUpdated:  {},
	ActionPhotoUpdated:    {},
}

// ValidActivityAction reports whether a is a known action.
func ValidActivityAction(a ActivityAction) bool {
	_, ok := activityActions[a]
	return ok
}

// ActivityEntry is one append-only record of a user's own action.
type ActivityEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Action      ActivityAction     `bson:"action" json:"action"`
	Description string             `bson:"description" json:"description"`
	TargetType  TargetType         `bson:"target_type,omitempty" json:"target_type,omitempty"`
	TargetID    string             `bson:"target_id,omitempty" json:"target_id,omitempty"`
	CreatedAt   string             `bson:"created_at" json:"created_at"`
}

// Normalize fills defaults for fields that may be absent in stored documents.
func (e *ActivityEntry) Normalize() {
	if !ValidActivityAction(e.Action) {
		e.Action = ActionProfileUpdated
	}
}
