package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// These tests pin the unconfigured-backend contract: with no MongoDB
// connected, every read serves an empty (never nil) result and every
// write fails fast with ErrNotConfigured. The query-backed paths are
// covered by the handlers' behavior against a real deployment.

func TestUnconfiguredReadsServeEmpty(t *testing.T) {
	require := require.New(t)
	require.False(Configured())
	ctx := context.Background()

	require.NotNil(ListTips(ctx))
	require.Empty(ListTips(ctx))
	require.Empty(ListTipsByAuthor(ctx, "u1", UserTipsLimit))
	require.Empty(ListApprovedTips(ctx, CommunityFeedLimit))
	require.Empty(ListRecentReports(ctx, CommunityFeedLimit))
	require.Empty(ListReportsByUser(ctx, "u1", UserReportsLimit))
	require.Empty(ListReportsByStatus(ctx, models.StatusPending))
	require.Empty(ListComments(ctx, models.TargetTip, "t1"))
	require.Empty(ListActivityByUser(ctx, "u1"))
	require.Empty(ListProfiles(ctx))

	require.Nil(GetTip(ctx, "irrelevant"))
	require.Nil(GetReport(ctx, "irrelevant"))
	require.Nil(GetProfile(ctx, "u1"))

	require.Zero(LikeCount(ctx, "t1"))
	require.False(Liked(ctx, "t1", "u1"))
}

func TestUnconfiguredWritesFailFast(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	_, err := CreateTip(ctx, NewTip{Title: "t", Description: "d", AuthorID: "u1"})
	require.ErrorIs(err, ErrNotConfigured)

	_, err = CreateReport(ctx, NewReport{Title: "r", Description: "d", SubmittedByID: "u1"})
	require.ErrorIs(err, ErrNotConfigured)

	_, err = CreateComment(ctx, models.Comment{TargetType: models.TargetTip, TargetID: "t1", Body: "b"})
	require.ErrorIs(err, ErrNotConfigured)

	require.ErrorIs(Like(ctx, "t1", "u1"), ErrNotConfigured)
	require.ErrorIs(Unlike(ctx, "t1", "u1"), ErrNotConfigured)
	require.ErrorIs(SaveProfile(ctx, models.Profile{ID: "u1"}), ErrNotConfigured)
	require.ErrorIs(CreateProfile(ctx, models.Profile{ID: "u1"}), ErrNotConfigured)
	require.ErrorIs(SetProfileRole(ctx, "u1", models.RoleAdmin), ErrNotConfigured)
	require.ErrorIs(SetPrivacyPrefs(ctx, "u1", models.DefaultPrivacyPrefs()), ErrNotConfigured)
	require.ErrorIs(SetTipApproval(ctx, "t1", true), ErrNotConfigured)
	require.ErrorIs(SetReportStatus(ctx, "r1", models.StatusResolved), ErrNotConfigured)

	// Logging is best-effort even here: no panic, no error to surface.
	LogActivity(ctx, models.ActivityEntry{UserID: "u1", Action: models.ActionTipSubmitted})

	// Index setup is a no-op without a connection.
	require.NoError(EnsureIndexes(ctx))
}

func TestProfileStoreAdapter(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	var src ProfileStore
	require.Nil(src.Get(ctx, "u1"))
	require.ErrorIs(src.Create(ctx, models.Profile{ID: "u1"}), ErrNotConfigured)
}
