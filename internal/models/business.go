package models

import (
	"strings"
	"time"
)

// Liveness is the website health state of a business.
// A record starts Unknown and is resolved to Live or Down by the probe step.
type Liveness int

const (
	LivenessUnknown Liveness = iota
	LivenessLive
	LivenessDown
)

// String returns a human-readable label for table and CSV output
func (l Liveness) String() string {
	switch l {
	case LivenessLive:
		return "live"
	case LivenessDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseLiveness converts a stored label back to a Liveness state
func ParseLiveness(s string) Liveness {
	switch s {
	case "live":
		return LivenessLive
	case "down":
		return LivenessDown
	default:
		return LivenessUnknown
	}
}

// Business represents one place returned by the search provider,
// progressively enriched by the detail fetch and the liveness probe.
type Business struct {
	PlaceID      string
	Name         string
	Address      string
	Phone        string
	Website      string
	WebsiteState Liveness
	Rating       float64
	RatingCount  int
	Categories   []string
	MapURL       string
}

// HasWebsite reports whether the record carries a non-empty website URL
func (b *Business) HasWebsite() bool {
	return strings.TrimSpace(b.Website) != ""
}

// DialablePhone strips formatting characters so the number can be used in a tel: link
func (b *Business) DialablePhone() string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, b.Phone)
}

// SearchQuery is the originating query for a batch
type SearchQuery struct {
	Location     string
	Category     string
	RadiusMeters int
}

// SearchBatch is the ordered result set of one search invocation.
// Records are owned by the batch and never merged with prior batches.
type SearchBatch struct {
	Query      SearchQuery
	Businesses []Business
	FetchedAt  time.Time
}

// Size returns the number of contacts in the batch
func (b *SearchBatch) Size() int {
	return len(b.Businesses)
}

// SearchSummary is the flattened history row stored for each search
type SearchSummary struct {
	ID           int64
	Location     string
	Category     string
	RadiusMeters int
	ResultCount  int
	SearchedAt   time.Time
}
