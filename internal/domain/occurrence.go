package domain

// Occurrence is one species' GBIF occurrence count.
// SpeciesKey is unique within a taxon's dataset after deduplication.
type Occurrence struct {
	SpeciesKey int64 `json:"speciesKey"`
	Count      int64 `json:"count"`
}
