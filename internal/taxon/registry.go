package taxon

// Config describes one taxonomic group tracked by the dashboard. The
// registry is defined at compile time and never mutated; a group backed by
// more than one data file is a combined taxon whose constituents are merged
// on read.
type Config struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	APIPaths    []string
	DataFiles   []string
	// OccurrenceFile is the GBIF-side CSV snapshot, empty when the group has
	// no occurrence dataset configured.
	OccurrenceFile string
	GBIFFilters    []GBIFFilter
	// EstimatedSpecies is the estimated number of described species,
	// with the source of the estimate.
	EstimatedSpecies int    `json:"estimatedSpecies"`
	Citation         string `json:"citation"`
	CitationURL      string `json:"citationUrl,omitempty"`
}

// GBIFFilter is one query-parameter filter for the GBIF occurrence search,
// e.g. classKey=359 for Mammalia.
type GBIFFilter struct {
	Param string
	Key   int64
}

// Combined reports whether the taxon merges multiple snapshot files.
func (c Config) Combined() bool {
	return len(c.DataFiles) > 1
}

var registry = []Config{
	{
		ID:               "plants",
		Name:             "Plants",
		Color:            "#4caf50",
		APIPaths:         []string{"green_plants"},
		DataFiles:        []string{"plants.json"},
		OccurrenceFile:   "plants_occurrences.csv",
		GBIFFilters:      []GBIFFilter{{Param: "kingdomKey", Key: 6}},
		EstimatedSpecies: 350386,
		Citation:         "RBG Kew, State of the World's Plants (2016)",
		CitationURL:      "https://stateoftheworldsplants.org/",
	},
	{
		ID:               "mammals",
		Name:             "Mammals",
		Color:            "#8d6e63",
		APIPaths:         []string{"mammals"},
		DataFiles:        []string{"mammals.json"},
		OccurrenceFile:   "mammals_occurrences.csv",
		GBIFFilters:      []GBIFFilter{{Param: "classKey", Key: 359}},
		EstimatedSpecies: 6495,
		Citation:         "Burgin et al., Journal of Mammalogy (2018)",
		CitationURL:      "https://doi.org/10.1093/jmammal/gyx147",
	},
	{
		ID:               "birds",
		Name:             "Birds",
		Color:            "#42a5f5",
		APIPaths:         []string{"birds"},
		DataFiles:        []string{"birds.json"},
		OccurrenceFile:   "birds_occurrences.csv",
		GBIFFilters:      []GBIFFilter{{Param: "classKey", Key: 212}},
		EstimatedSpecies: 11188,
		Citation:         "BirdLife International (2022)",
		CitationURL:      "https://datazone.birdlife.org/",
	},
	{
		ID:               "amphibians",
		Name:             "Amphibians",
		Color:            "#66bb6a",
		APIPaths:         []string{"amphibians"},
		DataFiles:        []string{"amphibians.json"},
		OccurrenceFile:   "amphibians_occurrences.csv",
		GBIFFilters:      []GBIFFilter{{Param: "classKey", Key: 131}},
		EstimatedSpecies: 8722,
		Citation:         "AmphibiaWeb (2023)",
		CitationURL:      "https://amphibiaweb.org/",
	},
	{
		ID:               "reptiles",
		Name:             "Reptiles",
		Color:            "#9ccc65",
		APIPaths:         []string{"reptiles"},
		DataFiles:        []string{"reptiles.json"},
		OccurrenceFile:   "reptiles_occurrences.csv",
		GBIFFilters:      []GBIFFilter{{Param: "classKey", Key: 358}},
		EstimatedSpecies: 12060,
		Citation:         "Uetz et al., The Reptile Database (2024)",
		CitationURL:      "http://www.reptile-database.org/",
	},
	{
		ID:             "fishes",
		Name:           "Fishes",
		Color:          "#26c6da",
		APIPaths:       []string{"ray_finned_fishes", "sharks_and_rays"},
		DataFiles:      []string{"ray_finned_fishes.json", "sharks_and_rays.json"},
		OccurrenceFile: "fishes_occurrences.csv",
		GBIFFilters: []GBIFFilter{
			{Param: "classKey", Key: 204},
			{Param: "classKey", Key: 121},
		},
		EstimatedSpecies: 36470,
		Citation:         "Fricke et al., Eschmeyer's Catalog of Fishes (2024)",
		CitationURL:      "https://researcharchive.calacademy.org/research/ichthyology/catalog/",
	},
	{
		ID:             "invertebrates",
		Name:           "Invertebrates",
		Color:          "#ffa726",
		APIPaths:       []string{"insects", "molluscs"},
		DataFiles:      []string{"insects.json", "molluscs.json"},
		OccurrenceFile: "invertebrates_occurrences.csv",
		GBIFFilters: []GBIFFilter{
			{Param: "classKey", Key: 216},
			{Param: "phylumKey", Key: 52},
		},
		EstimatedSpecies: 1045000,
		Citation:         "Stork, Annual Review of Entomology (2018)",
		CitationURL:      "https://doi.org/10.1146/annurev-ento-020117-043348",
	},
}

// All returns the registry in stable display order.
func All() []Config {
	out := make([]Config, len(registry))
	copy(out, registry)
	return out
}

// Get looks up a taxon by identifier.
func Get(id string) (Config, bool) {
	for _, c := range registry {
		if c.ID == id {
			return c, true
		}
	}
	return Config{}, false
}
