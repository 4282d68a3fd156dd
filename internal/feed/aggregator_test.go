package feed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hygienewatch/hygienewatch-backend/internal/models"
)

func reportAt(title, ts string) []Item {
	return ReportItems([]models.Report{{Title: title, CreatedAt: ts}})
}

func tipAt(title, ts string) []Item {
	return TipItems([]models.Tip{{Title: title, CreatedAt: ts}})
}

func titles(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case KindReport:
			out = append(out, it.Report.Title)
		case KindTip:
			out = append(out, it.Tip.Title)
		case KindLog:
			out = append(out, it.Log.Description)
		}
	}
	return out
}

func TestMergeNewestFirst(t *testing.T) {
	require := require.New(t)

	merged := Merge(0,
		reportAt("older report", "2026-01-01T10:00:00Z"),
		tipAt("newest tip", "2026-01-03T10:00:00Z"),
		LogItems([]models.ActivityEntry{{Description: "middle log", CreatedAt: "2026-01-02T10:00:00Z"}}),
	)

	require.Equal([]string{"newest tip", "middle log", "older report"}, titles(merged))
}

func TestMergeTruncatesToWindow(t *testing.T) {
	require := require.New(t)

	merged := Merge(2,
		reportAt("r1", "2026-01-03T10:00:00Z"),
		tipAt("t1", "2026-01-02T10:00:00Z"),
		tipAt("t2", "2026-01-01T10:00:00Z"),
	)

	require.Equal([]string{"r1", "t1"}, titles(merged))
}

func TestMergeMalformedTimestampSortsLast(t *testing.T) {
	require := require.New(t)

	merged := Merge(0,
		reportAt("broken", "not-a-timestamp"),
		tipAt("valid", "2026-01-01T10:00:00Z"),
	)

	require.Equal([]string{"valid", "broken"}, titles(merged))
}

func TestMergeTieKeepsSourceOrder(t *testing.T) {
	require := require.New(t)

	ts := "2026-01-01T10:00:00Z"
	merged := Merge(0, reportAt("first", ts), tipAt("second", ts))

	require.Equal([]string{"first", "second"}, titles(merged))
}

func TestMergeEmptyIsNeverNil(t *testing.T) {
	require := require.New(t)
	require.NotNil(Merge(5))
	require.Empty(Merge(5, nil, []Item{}))
}

func TestAggregatorRecomputesPerDelivery(t *testing.T) {
	require := require.New(t)

	var last []Item
	agg := NewAggregator(10, func(items []Item) { last = items })

	agg.SetSource("reports", reportAt("r1", "2026-01-02T10:00:00Z"))
	require.Equal([]string{"r1"}, titles(last))

	agg.SetSource("tips", tipAt("t1", "2026-01-03T10:00:00Z"))
	require.Equal([]string{"t1", "r1"}, titles(last))

	// Replacing a source drops its previous snapshot entirely.
	agg.SetSource("reports", reportAt("r2", "2026-01-04T10:00:00Z"))
	require.Equal([]string{"r2", "t1"}, titles(last))

	require.Equal(titles(last), titles(agg.Snapshot()))
}

func TestAggregatorTieBreakIsFirstSeenSourceOrder(t *testing.T) {
	require := require.New(t)

	agg := NewAggregator(10, nil)
	ts := "2026-01-01T10:00:00Z"

	// "tips" registers first, so on equal timestamps its items lead even
	// after "reports" re-delivers.
	agg.SetSource("tips", tipAt("t1", ts))
	agg.SetSource("reports", reportAt("r1", ts))
	agg.SetSource("reports", reportAt("r2", ts))

	require.Equal([]string{"t1", "r2"}, titles(agg.Snapshot()))
}
