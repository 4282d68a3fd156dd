package models

// Role is the authorization tier attached to a profile.
type Role string

const (
	RoleUser      Role = "user"
	RoleInspector Role = "inspector"
	RoleAdmin     Role = "admin"
)

// roleRank is the total order used for "at least as privileged as" checks.
var roleRank = map[Role]int{
	RoleUser:      1,
	RoleInspector: 2,
	RoleAdmin:     3,
}

// Rank returns the numeric rank of a role. Unknown values rank as user.
func (r Role) Rank() int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return roleRank[RoleUser]
}

// Allows reports whether a holder of r may perform an action that
// requires the given role.
func (r Role) Allows(required Role) bool {
	return r.Rank() >= required.Rank()
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	_, ok := roleRank[r]
	return ok
}

// PrivacyPrefs are the per-user consent toggles. Saved as one block: the
// settings form always submits all seven.
type PrivacyPrefs struct {
	EmailNotifications      bool `bson:"email_notifications" json:"email_notifications"`
	ResearchParticipation   bool `bson:"research_participation" json:"research_participation"`
	ReportUpdates           bool `bson:"report_updates" json:"report_updates"`
	MarketingCommunications bool `bson:"marketing_communications" json:"marketing_communications"`
	UsageAnalytics          bool `bson:"usage_analytics" json:"usage_analytics"`
	AcademicResearch        bool `bson:"academic_research" json:"academic_research"`
	ThirdPartyServices      bool `bson:"third_party_services" json:"third_party_services"`
}

// DefaultPrivacyPrefs is the opt-in baseline: service-related contact on,
// everything research- or marketing-flavored off until the user says so.
func DefaultPrivacyPrefs() PrivacyPrefs {
	return PrivacyPrefs{
		EmailNotifications: true,
		ReportUpdates:      true,
		UsageAnalytics:     true,
	}
}

// Profile is the public per-user document. The document _id is the
// identity provider's account id, so one account maps to one profile.
type Profile struct {
	ID        string        `bson:"_id,omitempty" json:"id"`
	FullName  string        `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Email     string        `bson:"email,omitempty" json:"email,omitempty"`
	Role      Role          `bson:"role" json:"role"`
	CreatedAt string        `bson:"created_at" json:"created_at"`
	UpdatedAt string        `bson:"updated_at" json:"updated_at"`
	Location  string        `bson:"location,omitempty" json:"location,omitempty"`
	Phone     string        `bson:"phone,omitempty" json:"phone,omitempty"`
	AboutMe   string        `bson:"about_me,omitempty" json:"about_me,omitempty"`
	AvatarURL string        `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Privacy   *PrivacyPrefs `bson:"privacy,omitempty" json:"privacy,omitempty"`
}

// Normalize fills defaults for fields that may be absent in stored
// documents. It is the single place read-side defaulting happens.
func (p *Profile) Normalize() {
	if !ValidRole(p.Role) {
		p.Role = RoleUser
	}
	if p.Privacy == nil {
		prefs := DefaultPrivacyPrefs()
		p.Privacy = &prefs
	}
}

// DefaultProfile is the profile created lazily on first sign-in.
func DefaultProfile(id, fullName, email string) Profile {
	now := Timestamp()
	prefs := DefaultPrivacyPrefs()
	return Profile{
		ID:        id,
		FullName:  fullName,
		Email:     email,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
		Privacy:   &prefs,
	}
}
