package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// ProfileStore adapts the package-level profile functions to the
// session layer's ProfileSource interface.
type ProfileStore struct{}

func (ProfileStore) Get(ctx context.Context, userID string) *models.Profile {
	return GetProfile(ctx, userID)
}

func (ProfileStore) Create(ctx context.Context, p models.Profile) error {
	return CreateProfile(ctx, p)
}

// GetProfile returns one profile by account id, or nil when absent or
// unreadable.
func GetProfile(ctx context.Context, userID string) *models.Profile {
	if !Configured() {
		return nil
	}

	var profile models.Profile
	if err := database.DB.Collection(profilesCollection).
		FindOne(ctx, bson.M{"_id": userID}).Decode(&profile); err != nil {
		return nil
	}
	profile.Normalize()
	return &profile
}

// SaveProfile upserts a profile document and bumps its updated timestamp.
func SaveProfile(ctx context.Context, p models.Profile) error {
	if !Configured() {
		return ErrNotConfigured
	}
	if p.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	p.Normalize()
	p.UpdatedAt = models.Timestamp()

	_, err := database.DB.Collection(profilesCollection).
		ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// CreateProfile inserts a profile only if none exists yet. A concurrent
// first sign-in may have won the race; that counts as success.
func CreateProfile(ctx context.Context, p models.Profile) error {
	if !Configured() {
		return ErrNotConfigured
	}
	p.Normalize()

	if _, err := database.DB.Collection(profilesCollection).InsertOne(ctx, p); err != nil {
		if existing := GetProfile(ctx, p.ID); existing != nil {
			return nil
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// SetPrivacyPrefs replaces the profile's consent block in one write; the
// settings form always submits all seven toggles together.
func SetPrivacyPrefs(ctx context.Context, userID string, prefs models.PrivacyPrefs) error {
	if !Configured() {
		return ErrNotConfigured
	}

	update := bson.M{"$set": bson.M{
		"privacy":    prefs,
		"updated_at": models.Timestamp(),
	}}
	res, err := database.DB.Collection(profilesCollection).
		UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to save privacy settings: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("profile not found")
	}
	return nil
}

// SetProfileRole changes only the role field. Admin-gated at the handler
// layer; this is the one profile field users never set themselves.
func SetProfileRole(ctx context.Context, userID string, role models.Role) error {
	if !Configured() {
		return ErrNotConfigured
	}
	if !models.ValidRole(role) {
		return fmt.Errorf("invalid role %q", role)
	}

	update := bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": models.Timestamp(),
	}}
	res, err := database.DB.Collection(profilesCollection).
		UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("profile not found")
	}
	return nil
}

// ListProfiles returns the newest profiles for the admin user list.
func ListProfiles(ctx context.Context) []models.Profile {
	if !Configured() {
		return []models.Profile{}
	}

	cursor, err := database.DB.Collection(profilesCollection).
		Find(ctx, bson.M{}, newestFirst(AdminListLimit))
	if err != nil {
		return []models.Profile{}
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return []models.Profile{}
	}
	for i := range profiles {
		profiles[i].Normalize()
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return profiles
}
