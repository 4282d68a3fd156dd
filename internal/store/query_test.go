package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

func sortKey(t *testing.T, opts *options.FindOptions) bson.M {
	t.Helper()
	sort, ok := opts.Sort.(bson.M)
	require.True(t, ok, "sort must be a bson.M document")
	return sort
}

func TestNewestFirstSortsDescendingAndCaps(t *testing.T) {
	require := require.New(t)

	opts := newestFirst(UserTipsLimit)
	require.Equal(bson.M{"created_at": -1}, sortKey(t, opts))
	require.NotNil(opts.Limit)
	require.Equal(int64(UserTipsLimit), *opts.Limit)
}

func TestOldestFirstSortsAscendingAndCaps(t *testing.T) {
	require := require.New(t)

	opts := oldestFirst(CommentsLimit)
	require.Equal(bson.M{"created_at": 1}, sortKey(t, opts))
	require.NotNil(opts.Limit)
	require.Equal(int64(CommentsLimit), *opts.Limit)
}

func TestScopedFiltersMatchOwningFields(t *testing.T) {
	require := require.New(t)

	require.Equal(bson.M{"author_id": "u-1"}, tipsByAuthorFilter("u-1"))
	require.Equal(bson.M{"approved": true}, approvedTipsFilter())
	require.Equal(bson.M{"submitted_by_id": "u-2"}, reportsByUserFilter("u-2"))
	require.Equal(bson.M{"status": models.StatusPending}, reportsByStatusFilter(models.StatusPending))
	require.Equal(
		bson.M{"target_type": models.TargetTip, "target_id": "tip-9"},
		commentsFilter(models.TargetTip, "tip-9"),
	)
	require.Equal(bson.M{"user_id": "u-3"}, activityByUserFilter("u-3"))
}

func TestLikeDocKeyIsStablePerPair(t *testing.T) {
	require := require.New(t)

	first := likeDoc("tip-1", "u-1")
	second := likeDoc("tip-1", "u-1")
	require.Equal(first.ID, second.ID)
	require.Equal(models.LikeKey("tip-1", "u-1"), first.ID)
	require.Equal("tip-1", first.TargetID)
	require.Equal("u-1", first.UserID)
	require.NotEmpty(first.CreatedAt)

	other := likeDoc("tip-1", "u-2")
	require.NotEqual(first.ID, other.ID)
}

func TestFeedCapsStayWithinDocumentedBounds(t *testing.T) {
	require := require.New(t)

	require.Equal(100, CommunityTipsLimit)
	require.Equal(50, UserTipsLimit)
	require.Equal(50, UserReportsLimit)
	require.Equal(20, CommunityFeedLimit)
	require.Equal(25, UserFeedSourceLimit)
	require.Equal(15, UserFeedWindow)
	require.Equal(50, ActivityLogLimit)
	require.Equal(200, CommentsLimit)
	require.Equal(100, AdminListLimit)
}
