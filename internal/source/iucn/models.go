package iucn

// pageResponse is one page of the assessments-by-taxon endpoint.
type pageResponse struct {
	Assessments []assessmentRow `json:"assessments"`
}

type assessmentRow struct {
	TaxonID         int64  `json:"sis_taxon_id"`
	AssessmentID    int64  `json:"assessment_id"`
	ScientificName  string `json:"scientific_name"`
	CategoryCode    string `json:"red_list_category_code"`
	YearPublished   string `json:"year_published"`
	URL             string `json:"url"`
	Latest          bool   `json:"latest"`
}

// taxonResponse is the per-taxon detail endpoint: family plus the full
// assessment history.
type taxonResponse struct {
	TaxonomicNotes *string `json:"taxonomic_notes"`
	Taxon          struct {
		FamilyName string `json:"family_name"`
	} `json:"taxon"`
	Assessments []historyRow `json:"assessments"`
}

type historyRow struct {
	AssessmentID  int64  `json:"assessment_id"`
	YearPublished string `json:"year_published"`
	CategoryCode  string `json:"red_list_category_code"`
	Latest        bool   `json:"latest"`
}

// assessmentResponse is the per-assessment detail endpoint.
type assessmentResponse struct {
	AssessmentDate  *string `json:"assessment_date"`
	PopulationTrend *struct {
		Description struct {
			En string `json:"en"`
		} `json:"description"`
	} `json:"population_trend"`
	Locations []struct {
		Code        string `json:"code"`
		IsNative    bool   `json:"is_native"`
		Description struct {
			En string `json:"en"`
		} `json:"description"`
	} `json:"locations"`
}
