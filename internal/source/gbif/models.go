package gbif

// searchResponse is the faceted occurrence search response. Only the
// speciesKey facet is requested, so at most one facet block comes back.
type searchResponse struct {
	Count  int64 `json:"count"`
	Facets []struct {
		Field  string       `json:"field"`
		Counts []facetCount `json:"counts"`
	} `json:"facets"`
}

type facetCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// matchResponse is the species match-by-name response.
type matchResponse struct {
	UsageKey  int64  `json:"usageKey"`
	MatchType string `json:"matchType"`
	Rank      string `json:"rank"`
	Canonical string `json:"canonicalName"`
}
