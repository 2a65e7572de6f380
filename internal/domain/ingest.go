package domain

import "time"

// IngestStats holds statistics about one ingestion run.
type IngestStats struct {
	TaxonID     string
	Pages       int
	EmptyPages  int
	FailedPages int
	Species     int
	Occurrences int
	Complete    bool
	Duration    time.Duration
}
