package domain

// Red List category codes in canonical display order.
var Categories = []string{"EX", "EW", "CR", "EN", "VU", "NT", "LC", "DD"}

// ThreatenedCategories are the codes counted as threatened.
var ThreatenedCategories = []string{"CR", "EN", "VU"}

// Species is one assessed species as persisted in a snapshot.
type Species struct {
	TaxonID             int64                `json:"taxonId"`
	AssessmentID        int64                `json:"assessmentId"`
	ScientificName      string               `json:"scientificName"`
	Family              string               `json:"family,omitempty"`
	Category            string               `json:"category"`
	AssessmentDate      *string              `json:"assessmentDate"`
	YearPublished       string               `json:"yearPublished"`
	URL                 string               `json:"url"`
	PopulationTrend     *string              `json:"populationTrend"`
	Countries           []string             `json:"countries,omitempty"`
	AssessmentCount     int                  `json:"assessmentCount"`
	PreviousAssessments []PreviousAssessment `json:"previousAssessments,omitempty"`
}

// PreviousAssessment is one historical assessment of a species.
type PreviousAssessment struct {
	Year         int    `json:"year"`
	AssessmentID int64  `json:"assessmentId"`
	Category     string `json:"category"`
}

// IsThreatened reports whether the species' current category counts as threatened.
func (s Species) IsThreatened() bool {
	for _, c := range ThreatenedCategories {
		if s.Category == c {
			return true
		}
	}
	return false
}
