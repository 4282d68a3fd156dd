package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRoleRanking(t *testing.T) {
	require := require.New(t)

	require.True(RoleAdmin.Allows(RoleInspector))
	require.True(RoleAdmin.Allows(RoleUser))
	require.True(RoleInspector.Allows(RoleUser))
	require.True(RoleUser.Allows(RoleUser))

	require.False(RoleUser.Allows(RoleInspector))
	require.False(RoleInspector.Allows(RoleAdmin))

	// Unknown roles rank as plain users.
	require.Equal(RoleUser.Rank(), Role("superuser").Rank())
	require.False(Role("superuser").Allows(RoleInspector))
}

func TestProfileNormalizeDefaultsRole(t *testing.T) {
	require := require.New(t)

	p := Profile{ID: "u1", Role: "moderator"}
	p.Normalize()
	require.Equal(RoleUser, p.Role)

	p = Profile{ID: "u2", Role: RoleAdmin}
	p.Normalize()
	require.Equal(RoleAdmin, p.Role)
}

func TestProfileNormalizeFillsPrivacyDefaults(t *testing.T) {
	require := require.New(t)

	// Profiles written before privacy preferences existed carry no
	// subdocument; reads default them in one place.
	p := Profile{ID: "u1"}
	p.Normalize()
	require.NotNil(p.Privacy)
	require.Equal(DefaultPrivacyPrefs(), *p.Privacy)

	custom := PrivacyPrefs{MarketingCommunications: true}
	p = Profile{ID: "u2", Privacy: &custom}
	p.Normalize()
	require.Equal(custom, *p.Privacy)
}

func TestDefaultPrivacyPrefs(t *testing.T) {
	require := require.New(t)

	prefs := DefaultPrivacyPrefs()
	require.True(prefs.EmailNotifications)
	require.True(prefs.ReportUpdates)
	require.True(prefs.UsageAnalytics)

	require.False(prefs.ResearchParticipation)
	require.False(prefs.MarketingCommunications)
	require.False(prefs.AcademicResearch)
	require.False(prefs.ThirdPartyServices)
}

func TestDefaultProfile(t *testing.T) {
	require := require.New(t)

	p := DefaultProfile("u1", "Asha", "asha@example.com")
	require.Equal("u1", p.ID)
	require.Equal(RoleUser, p.Role)
	require.Equal(p.CreatedAt, p.UpdatedAt)
	require.NotZero(ParseTimestamp(p.CreatedAt).Unix())
	require.NotNil(p.Privacy)
	require.Equal(DefaultPrivacyPrefs(), *p.Privacy)
}

func TestTimestampRoundTrip(t *testing.T) {
	require := require.New(t)

	ts := Timestamp()
	parsed := ParseTimestamp(ts)
	require.WithinDuration(time.Now().UTC(), parsed, 5*time.Second)
	require.Equal(time.UTC, parsed.Location())
}

func TestParseTimestampMalformedMapsToEpoch(t *testing.T) {
	require := require.New(t)

	for _, s := range []string{"", "yesterday", "2026-13-40T99:00:00Z"} {
		require.Equal(time.Unix(0, 0).UTC(), ParseTimestamp(s))
	}
}

func TestLikeKey(t *testing.T) {
	require := require.New(t)
	require.Equal("tip123_user456", LikeKey("tip123", "user456"))
}

func TestTipNormalizeUnknownCategory(t *testing.T) {
	require := require.New(t)

	tip := Tip{Title: "wash hands", Category: "Astrology"}
	tip.Normalize()
	require.Equal(TipOther, tip.Category)

	tip = Tip{Category: TipWaterSafety}
	tip.Normalize()
	require.Equal(TipWaterSafety, tip.Category)
}

func TestReportNormalize(t *testing.T) {
	require := require.New(t)

	r := Report{Status: "escalated", Category: "Astrology"}
	r.Normalize()
	require.Equal(StatusPending, r.Status)
	require.Equal(ReportOther, r.Category)

	// Category is optional on reports; empty stays empty.
	r = Report{Status: StatusResolved}
	r.Normalize()
	require.Equal(StatusResolved, r.Status)
	require.Empty(r.Category)
}

func TestReportStatusVocabulary(t *testing.T) {
	require := require.New(t)

	for _, s := range []ReportStatus{StatusPending, StatusInReview, StatusResolved, StatusRejected} {
		require.True(ValidReportStatus(s))
	}
	require.False(ValidReportStatus("closed"))
}

func TestTargetTypes(t *testing.T) {
	require := require.New(t)

	require.True(ValidTargetType(TargetTip))
	require.True(ValidTargetType(TargetReport))
	require.False(ValidTargetType("comment"))
}

func TestActivityEntryNormalize(t *testing.T) {
	require := require.New(t)

	e := ActivityEntry{Action: "logged_in"}
	e.Normalize()
	require.Equal(ActionProfileUpdated, e.Action)

	e = ActivityEntry{Action: ActionTipSubmitted}
	e.Normalize()
	require.Equal(ActionTipSubmitted, e.Action)
}
