package models

import "time"

// CanonicalURLGroup - tracked items that share one canonical URL during a run.
type CanonicalURLGroup struct {
	Key     string
	Members []TrackedItem
}

// Representative returns the member whose raw URL is used for extraction.
func (g CanonicalURLGroup) Representative() TrackedItem {
	return g.Members[0]
}

// RunSummary - the result of one refresh pass.
type RunSummary struct {
	TotalItems int
	UniqueURLs int
	Updated    int
	Skipped    int
	Failed     int
	Errors     []string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Balanced reports whether every item was counted in exactly one bucket.
func (s *RunSummary) Balanced() bool {
	return s.TotalItems == s.Updated+s.Skipped+s.Failed
}
