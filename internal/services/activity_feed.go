package services

import (
	"context"
	"sync"

	"github.com/hygienewatch/hygienewatch-backend/internal/feed"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
)

// CommunityFeed keeps a warm snapshot of the community activity feed:
// recent reports merged with approved tips. Two polled subscriptions feed
// one aggregator; requests read the latest merged view instead of hitting
// Mongo per page load. When the store is unconfigured each subscription
// delivers a single empty snapshot and never polls.
type CommunityFeed struct {
	mu    sync.RWMutex
	items []feed.Item

	agg           *feed.Aggregator
	cancelReports feed.CancelFunc
	cancelTips    feed.CancelFunc
}

// StartCommunityFeed begins polling and returns the live feed.
func StartCommunityFeed() *CommunityFeed {
	f := &CommunityFeed{items: []feed.Item{}}
	f.agg = feed.NewAggregator(store.CommunityFeedLimit, func(items []feed.Item) {
		f.mu.Lock()
		f.items = items
		f.mu.Unlock()
	})

	configured := store.Configured()
	f.cancelReports = feed.Subscribe(configured,
		func(ctx context.Context) []feed.Item {
			return feed.ReportItems(store.ListRecentReports(ctx, store.CommunityFeedLimit))
		},
		func(items []feed.Item) { f.agg.SetSource("reports", items) },
	)
	f.cancelTips = feed.Subscribe(configured,
		func(ctx context.Context) []feed.Item {
			return feed.TipItems(store.ListApprovedTips(ctx, store.CommunityFeedLimit))
		},
		func(items []feed.Item) { f.agg.SetSource("tips", items) },
	)
	return f
}

// Items returns the latest merged snapshot.
func (f *CommunityFeed) Items() []feed.Item {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.items
}

// Stop cancels both subscriptions.
func (f *CommunityFeed) Stop() {
	f.cancelReports()
	f.cancelTips()
}
