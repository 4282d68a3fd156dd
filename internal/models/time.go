package models

import "time"

// Document timestamps are RFC3339 UTC strings so that lexicographic order
// on the stored field equals chronological order. Mongo sort keys rely on
// this.

// Timestamp returns the current time as a document timestamp.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseTimestamp parses a document timestamp. Malformed values map to the
// Unix epoch so records with broken timestamps sort after every valid one
// instead of breaking a feed.
func ParseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}
