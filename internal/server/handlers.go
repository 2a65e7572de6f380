package server

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"redlist_dashboard/internal/cache"
	"redlist_dashboard/internal/domain"
	"redlist_dashboard/internal/stats"
	"redlist_dashboard/internal/taxon"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// GET /api/taxa
func (s *Server) listTaxa(c *gin.Context) {
	type taxonInfo struct {
		ID               string `json:"id"`
		Name             string `json:"name"`
		Color            string `json:"color"`
		EstimatedSpecies int    `json:"estimatedSpecies"`
		Citation         string `json:"citation"`
		CitationURL      string `json:"citationUrl,omitempty"`
		Combined         bool   `json:"combined"`
	}

	out := make([]taxonInfo, 0, len(s.registry))
	for _, tc := range s.registry {
		out = append(out, taxonInfo{
			ID:               tc.ID,
			Name:             tc.Name,
			Color:            tc.Color,
			EstimatedSpecies: tc.EstimatedSpecies,
			Citation:         tc.Citation,
			CitationURL:      tc.CitationURL,
			Combined:         tc.Combined(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"taxa": out})
}

// GET /api/taxa/:id/species
func (s *Server) listSpecies(c *gin.Context) {
	tc, snap, ok := s.taxonSnapshot(c)
	if !ok {
		return
	}

	filtered := filterSpecies(snap.Species, c.Query("category"), c.Query("q"))
	sortSpecies(filtered, c.DefaultQuery("sort", "name"), c.DefaultQuery("order", "asc"))

	page, limit := pagination(c)
	paged := paginate(filtered, page, limit)

	c.JSON(http.StatusOK, gin.H{
		"taxonId": tc.ID,
		"species": paged,
		"total":   len(filtered),
		"page":    page,
		"limit":   limit,
		"stats": gin.H{
			"totalSpecies": snap.Meta.TotalSpecies,
			"fetchedAt":    snap.Meta.FetchedAt,
			"complete":     snap.Meta.Complete,
			"categories":   stats.CategoryDistribution(snap.Species),
			"recency":      stats.RecencyBuckets(snap.Species, time.Now()),
		},
	})
}

// GET /api/taxa/:id/stats
func (s *Server) taxonStats(c *gin.Context) {
	tc, snap, ok := s.taxonSnapshot(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"taxonId":      tc.ID,
		"totalSpecies": snap.Meta.TotalSpecies,
		"fetchedAt":    snap.Meta.FetchedAt,
		"complete":     snap.Meta.Complete,
		"categories":   stats.CategoryDistribution(snap.Species),
		"recency":      stats.RecencyBuckets(snap.Species, time.Now()),
		"summary":      stats.Summarize(tc, snap, time.Now()),
	})
}

// GET /api/taxa/:id/occurrences
func (s *Server) listOccurrences(c *gin.Context) {
	tc, ok := s.lookupTaxon(c)
	if !ok {
		return
	}

	occurrences, err := s.cache.Occurrences(tc)
	if err != nil {
		s.unavailable(c, tc, err)
		return
	}

	filtered := filterOccurrences(occurrences, c.Query("min"), c.Query("max"))
	sortOccurrences(filtered, c.DefaultQuery("order", "desc"))

	page, limit := pagination(c)
	paged := paginate(filtered, page, limit)

	c.JSON(http.StatusOK, gin.H{
		"taxonId":      tc.ID,
		"occurrences":  paged,
		"total":        len(filtered),
		"page":         page,
		"limit":        limit,
		"distribution": stats.Distribution(occurrences),
	})
}

// GET /api/summary
func (s *Server) summary(c *gin.Context) {
	now := time.Now()
	out := make([]stats.TaxonSummary, 0, len(s.registry))

	for _, tc := range s.registry {
		snap, err := s.cache.Snapshot(tc)
		if err != nil {
			out = append(out, stats.TaxonSummary{
				TaxonID:          tc.ID,
				Name:             tc.Name,
				Color:            tc.Color,
				EstimatedSpecies: tc.EstimatedSpecies,
				Citation:         tc.Citation,
				Available:        false,
			})
			continue
		}
		out = append(out, stats.Summarize(tc, snap, now))
	}

	c.JSON(http.StatusOK, gin.H{"taxa": out})
}

func (s *Server) lookupTaxon(c *gin.Context) (taxon.Config, bool) {
	id := c.Param("id")
	tc, ok := taxonByID(s.registry, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown taxon %q", id)})
		return taxon.Config{}, false
	}
	return tc, true
}

func (s *Server) taxonSnapshot(c *gin.Context) (taxon.Config, *domain.Snapshot, bool) {
	tc, ok := s.lookupTaxon(c)
	if !ok {
		return taxon.Config{}, nil, false
	}

	snap, err := s.cache.Snapshot(tc)
	if err != nil {
		s.unavailable(c, tc, err)
		return taxon.Config{}, nil, false
	}

	return tc, snap, true
}

func (s *Server) unavailable(c *gin.Context, tc taxon.Config, err error) {
	if !errors.Is(err, cache.ErrUnavailable) {
		s.logger.Error("snapshot load failed", "taxon", tc.ID, "error", err)
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": fmt.Sprintf("no data available for taxon %q", tc.ID),
		"hint":  fmt.Sprintf("run: fetcher -taxon %s", tc.ID),
	})
}

func taxonByID(registry []taxon.Config, id string) (taxon.Config, bool) {
	for _, tc := range registry {
		if tc.ID == id {
			return tc, true
		}
	}
	return taxon.Config{}, false
}

func filterSpecies(species []domain.Species, category, query string) []domain.Species {
	category = strings.ToUpper(strings.TrimSpace(category))
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Species, 0, len(species))
	for _, sp := range species {
		if category != "" && sp.Category != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(sp.ScientificName), query) {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// categoryRank orders species by threat severity using the canonical
// category order.
func categoryRank(code string) int {
	for i, c := range domain.Categories {
		if c == code {
			return i
		}
	}
	return len(domain.Categories)
}

func sortSpecies(species []domain.Species, sortKey, order string) {
	desc := order == "desc"

	less := func(i, j int) bool {
		switch sortKey {
		case "category":
			ri, rj := categoryRank(species[i].Category), categoryRank(species[j].Category)
			if ri != rj {
				return ri < rj
			}
		case "year":
			yi, _ := strconv.Atoi(species[i].YearPublished)
			yj, _ := strconv.Atoi(species[j].YearPublished)
			if yi != yj {
				return yi < yj
			}
		}
		return species[i].ScientificName < species[j].ScientificName
	}

	if desc {
		sort.SliceStable(species, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(species, less)
	}
}

func filterOccurrences(occurrences []domain.Occurrence, minStr, maxStr string) []domain.Occurrence {
	minCount := int64(-1)
	maxCount := int64(-1)
	if v, err := strconv.ParseInt(minStr, 10, 64); err == nil {
		minCount = v
	}
	if v, err := strconv.ParseInt(maxStr, 10, 64); err == nil {
		maxCount = v
	}

	out := make([]domain.Occurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if minCount >= 0 && occ.Count < minCount {
			continue
		}
		if maxCount >= 0 && occ.Count > maxCount {
			continue
		}
		out = append(out, occ)
	}
	return out
}

func sortOccurrences(occurrences []domain.Occurrence, order string) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		if order == "asc" {
			return occurrences[i].Count < occurrences[j].Count
		}
		return occurrences[i].Count > occurrences[j].Count
	})
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
