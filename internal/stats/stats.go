// Package stats computes derived statistical views over a snapshot. All
// functions are pure: same snapshot in, same aggregates out.
package stats

import (
	"math"
	"sort"
	"strconv"
	"time"

	"redlist_dashboard/internal/domain"
	"redlist_dashboard/internal/taxon"
)

// CategoryCount is one bar of the category distribution chart.
type CategoryCount struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

var categoryInfo = []struct {
	code, name, color string
}{
	{"EX", "Extinct", "#000000"},
	{"EW", "Extinct in the Wild", "#542344"},
	{"CR", "Critically Endangered", "#d81e05"},
	{"EN", "Endangered", "#fc7f3f"},
	{"VU", "Vulnerable", "#f9e814"},
	{"NT", "Near Threatened", "#cce226"},
	{"LC", "Least Concern", "#60c659"},
	{"DD", "Data Deficient", "#d1d1c6"},
}

// CategoryDistribution counts records per category code. All 8 codes are
// always present in canonical order so chart axes stay stable; codes absent
// from the snapshot report zero.
func CategoryDistribution(species []domain.Species) []CategoryCount {
	counts := make(map[string]int)
	for _, sp := range species {
		counts[sp.Category]++
	}

	out := make([]CategoryCount, 0, len(categoryInfo))
	for _, info := range categoryInfo {
		out = append(out, CategoryCount{
			Code:  info.code,
			Name:  info.name,
			Color: info.color,
			Count: counts[info.code],
		})
	}
	return out
}

// ThreatenedCount counts species in the CR, EN or VU categories.
func ThreatenedCount(species []domain.Species) int {
	n := 0
	for _, sp := range species {
		if sp.IsThreatened() {
			n++
		}
	}
	return n
}

// RecencyBucket is one band of the assessment-recency view.
type RecencyBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

var recencyBands = []struct {
	label    string
	min, max int
}{
	{"0-1", 0, 1},
	{"2-5", 2, 5},
	{"6-10", 6, 10},
	{"11-20", 11, 20},
	{"20+", 21, math.MaxInt},
}

// RecencyBuckets partitions records into fixed bands by assessment age in
// years. A record with no parsable year is excluded from every band.
func RecencyBuckets(species []domain.Species, now time.Time) []RecencyBucket {
	out := make([]RecencyBucket, len(recencyBands))
	for i, band := range recencyBands {
		out[i].Label = band.label
	}

	currentYear := now.Year()
	for _, sp := range species {
		year, ok := assessmentYear(sp)
		if !ok {
			continue
		}
		age := currentYear - year
		if age < 0 {
			age = 0
		}
		for i, band := range recencyBands {
			if age >= band.min && age <= band.max {
				out[i].Count++
				break
			}
		}
	}

	return out
}

// assessmentYear extracts the year of the current assessment, preferring the
// exact assessment date over the publication year.
func assessmentYear(sp domain.Species) (int, bool) {
	if sp.AssessmentDate != nil && len(*sp.AssessmentDate) >= 4 {
		if year, err := strconv.Atoi((*sp.AssessmentDate)[:4]); err == nil && year > 0 {
			return year, true
		}
	}
	if year, err := strconv.Atoi(sp.YearPublished); err == nil && year > 0 {
		return year, true
	}
	return 0, false
}

// OccurrenceDistribution characterizes the right skew of occurrence counts
// with cumulative "at most N" buckets.
type OccurrenceDistribution struct {
	LTE1       int   `json:"lte1"`
	LTE10      int   `json:"lte10"`
	LTE100     int   `json:"lte100"`
	LTE1000    int   `json:"lte1000"`
	LTE10000   int   `json:"lte10000"`
	LTE100000  int   `json:"lte100000"`
	LTE1000000 int   `json:"lte1000000"`
	Total      int   `json:"total"`
	Median     int64 `json:"median"`
}

// Distribution computes the cumulative occurrence-count buckets and the
// median. The median is the element at index floor(n/2) of the ascending
// sort; no averaging for even n.
func Distribution(occurrences []domain.Occurrence) OccurrenceDistribution {
	dist := OccurrenceDistribution{Total: len(occurrences)}
	if len(occurrences) == 0 {
		return dist
	}

	counts := make([]int64, len(occurrences))
	for i, occ := range occurrences {
		counts[i] = occ.Count
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })

	for _, c := range counts {
		if c <= 1 {
			dist.LTE1++
		}
		if c <= 10 {
			dist.LTE10++
		}
		if c <= 100 {
			dist.LTE100++
		}
		if c <= 1_000 {
			dist.LTE1000++
		}
		if c <= 10_000 {
			dist.LTE10000++
		}
		if c <= 100_000 {
			dist.LTE100000++
		}
		if c <= 1_000_000 {
			dist.LTE1000000++
		}
	}

	dist.Median = counts[len(counts)/2]

	return dist
}

// TaxonSummary is one row of the cross-taxon rollup.
type TaxonSummary struct {
	TaxonID           string  `json:"taxonId"`
	Name              string  `json:"name"`
	Color             string  `json:"color"`
	Available         bool    `json:"available"`
	Assessed          int     `json:"assessed"`
	EstimatedSpecies  int     `json:"estimatedSpecies"`
	Citation          string  `json:"citation"`
	Threatened        int     `json:"threatened"`
	PercentAssessed   float64 `json:"percentAssessed"`
	PercentThreatened float64 `json:"percentThreatened"`
	PercentOutdated   float64 `json:"percentOutdated"`
}

// Summarize computes the rollup row for one taxon's snapshot.
func Summarize(tc taxon.Config, snap *domain.Snapshot, now time.Time) TaxonSummary {
	summary := TaxonSummary{
		TaxonID:          tc.ID,
		Name:             tc.Name,
		Color:            tc.Color,
		Available:        true,
		Assessed:         len(snap.Species),
		EstimatedSpecies: tc.EstimatedSpecies,
		Citation:         tc.Citation,
		Threatened:       ThreatenedCount(snap.Species),
	}

	if tc.EstimatedSpecies > 0 {
		summary.PercentAssessed = round1(float64(summary.Assessed) / float64(tc.EstimatedSpecies) * 100)
	}
	if summary.Assessed > 0 {
		summary.PercentThreatened = round1(float64(summary.Threatened) / float64(summary.Assessed) * 100)

		currentYear := now.Year()
		outdated := 0
		for _, sp := range snap.Species {
			if year, ok := assessmentYear(sp); ok && currentYear-year > 10 {
				outdated++
			}
		}
		summary.PercentOutdated = round1(float64(outdated) / float64(summary.Assessed) * 100)
	}

	return summary
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
