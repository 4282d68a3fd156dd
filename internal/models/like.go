package models

// Like encodes "user likes target" by existence alone: the document _id
// is the composite key, so a like is an idempotent upsert and an unlike
// is a delete that tolerates absence. There is no boolean field to get
// out of sync.
type Like struct {
	ID        string `bson:"_id" json:"id"`
	TargetID  string `bson:"target_id" json:"target_id"`
	UserID    string `bson:"user_id" json:"user_id"`
	CreatedAt string `bson:"created_at" json:"created_at"`
}

// LikeKey builds the composite document id for a (target, user) pair.
func LikeKey(targetID, userID string) string {
	return targetID + "_" + userID
}
