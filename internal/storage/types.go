package storage

import "time"

// Stats holds aggregate statistics about a linkpad database.
type Stats struct {
	TotalEntries int64
	TotalTags    int64
	OldestEntry  time.Time
	NewestEntry  time.Time
}

// TagCount pairs a tag with the number of entries carrying it.
type TagCount struct {
	Tag   string
	Count int64
}
