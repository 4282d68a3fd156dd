package feed

import (
	"sort"
	"sync"

	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

// Kind tags a feed item with its source type. The tag is set when the
// item is built, never inferred from which fields happen to be present.
type Kind string

const (
	KindReport Kind = "report"
	KindTip    Kind = "tip"
	KindLog    Kind = "log"
)

// Item is one entry of a merged activity feed.
type Item struct {
	Kind      Kind                  `json:"kind"`
	CreatedAt string                `json:"created_at"`
	Report    *models.Report        `json:"report,omitempty"`
	Tip       *models.Tip           `json:"tip,omitempty"`
	Log       *models.ActivityEntry `json:"log,omitempty"`
}

// ReportItems tags a slice of reports for merging.
func ReportItems(reports []models.Report) []Item {
	items := make([]Item, 0, len(reports))
	for i := range reports {
		r := reports[i]
		items = append(items, Item{Kind: KindReport, CreatedAt: r.CreatedAt, Report: &r})
	}
	return items
}

// TipItems tags a slice of tips for merging.
func TipItems(tips []models.Tip) []Item {
	items := make([]Item, 0, len(tips))
	for i := range tips {
		t := tips[i]
		items = append(items, Item{Kind: KindTip, CreatedAt: t.CreatedAt, Tip: &t})
	}
	return items
}

// LogItems tags a slice of activity entries for merging.
func LogItems(entries []models.ActivityEntry) []Item {
	items := make([]Item, 0, len(entries))
	for i := range entries {
		e := entries[i]
		items = append(items, Item{Kind: KindLog, CreatedAt: e.CreatedAt, Log: &e})
	}
	return items
}

// Merge concatenates the sources in the order given, sorts newest-first
// on the parsed timestamp and truncates to the window. Malformed
// timestamps parse as the epoch and therefore sort last. Ties keep the
// concatenation order (the sort is stable).
func Merge(window int, sources ...[]Item) []Item {
	var merged []Item
	for _, src := range sources {
		merged = append(merged, src...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return models.ParseTimestamp(merged[i].CreatedAt).
			After(models.ParseTimestamp(merged[j].CreatedAt))
	})

	if window > 0 && len(merged) > window {
		merged = merged[:window]
	}
	if merged == nil {
		merged = []Item{}
	}
	return merged
}

// Aggregator keeps the latest snapshot delivered by each source and
// recomputes the merged view from scratch on every delivery, so it is
// indifferent to the order in which sources arrive.
type Aggregator struct {
	mu      sync.Mutex
	window  int
	order   []string
	sources map[string][]Item
	deliver func([]Item)
}

// NewAggregator builds an aggregator that pushes each recomputed view to
// deliver. Window bounds the merged output.
func NewAggregator(window int, deliver func([]Item)) *Aggregator {
	return &Aggregator{
		window:  window,
		sources: make(map[string][]Item),
		deliver: deliver,
	}
}

// SetSource replaces one source's snapshot and delivers the recomputed
// merged view. Sources merge in first-seen order, which fixes the
// tie-break for equal timestamps.
func (a *Aggregator) SetSource(name string, items []Item) {
	a.mu.Lock()
	if _, seen := a.sources[name]; !seen {
		a.order = append(a.order, name)
	}
	a.sources[name] = items

	snapshots := make([][]Item, 0, len(a.order))
	for _, n := range a.order {
		snapshots = append(snapshots, a.sources[n])
	}
	merged := Merge(a.window, snapshots...)
	a.mu.Unlock()

	if a.deliver != nil {
		a.deliver(merged)
	}
}

// Snapshot returns the current merged view without delivering it.
func (a *Aggregator) Snapshot() []Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	snapshots := make([][]Item, 0, len(a.order))
	for _, n := range a.order {
		snapshots = append(snapshots, a.sources[n])
	}
	return Merge(a.window, snapshots...)
}
