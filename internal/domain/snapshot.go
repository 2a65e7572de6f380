package domain

import "time"

// Snapshot is the persisted unit of ingestion: all species fetched so far
// plus the metadata needed to resume an interrupted run.
type Snapshot struct {
	Species []Species `json:"species"`
	Meta    Metadata  `json:"metadata"`
}

// Metadata describes the state of a snapshot file.
// Complete == false means a resumed run starts at LastPage+1 and re-queues
// FailedPages before anything is considered final.
type Metadata struct {
	TotalSpecies   int            `json:"totalSpecies"`
	FetchedAt      time.Time      `json:"fetchedAt"`
	PagesProcessed int            `json:"pagesProcessed"`
	LastPage       int            `json:"lastPage"`
	ByCategory     map[string]int `json:"byCategory"`
	Complete       bool           `json:"complete"`
	FailedPages    []int          `json:"failedPages,omitempty"`
	TaxonID        string         `json:"taxonId,omitempty"`
}

// NewSnapshot returns an empty accumulator for a fresh ingestion run.
func NewSnapshot(taxonID string) *Snapshot {
	return &Snapshot{
		Species: []Species{},
		Meta: Metadata{
			ByCategory: make(map[string]int),
			TaxonID:    taxonID,
		},
	}
}

// Add appends a record and updates the running tally.
func (s *Snapshot) Add(sp Species) {
	s.Species = append(s.Species, sp)
	if s.Meta.ByCategory == nil {
		s.Meta.ByCategory = make(map[string]int)
	}
	s.Meta.ByCategory[sp.Category]++
	s.Meta.TotalSpecies = len(s.Species)
}
