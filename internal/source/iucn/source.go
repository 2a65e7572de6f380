package iucn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"redlist_dashboard/internal/domain"
)

// ErrRateLimited marks a page that still returned HTTP 429 after all retries.
var ErrRateLimited = errors.New("rate limited")

// Config holds IUCN Red List API client configuration.
type Config struct {
	BaseURL          string
	Token            string
	Timeout          time.Duration
	MaxAttempts      int
	BackoffStep      time.Duration
	DetailBatchSize  int
	DetailBatchDelay time.Duration
}

// Source fetches assessment pages from the IUCN Red List API. Pages are
// rate limited upstream; retries and the per-batch enrichment delays live
// here, the page cursor lives with the caller.
type Source struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	maxAttempts int
	backoffStep time.Duration
	batchSize   int
	batchDelay  time.Duration
	logger      *slog.Logger
}

// New creates a new IUCN source.
func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		token:       cfg.Token,
		maxAttempts: cfg.MaxAttempts,
		backoffStep: cfg.BackoffStep,
		batchSize:   cfg.DetailBatchSize,
		batchDelay:  cfg.DetailBatchDelay,
		logger:      logger.With("source", "iucn"),
	}
}

// FetchPage retrieves one page of assessments for a comprehensive group and
// enriches each record with its taxon and assessment details. An empty
// result with a nil error means the page held no records.
func (s *Source) FetchPage(ctx context.Context, apiPath string, page int) ([]domain.Species, error) {
	url := fmt.Sprintf("%s/comp-group/%s?page=%d", s.baseURL, apiPath, page)

	var resp pageResponse
	if err := s.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}

	species := s.transform(resp.Assessments)
	s.enrichBatched(ctx, species)

	s.logger.Debug("fetched page",
		"path", apiPath,
		"page", page,
		"records", len(species),
	)

	return species, nil
}

// getJSON performs one GET with bearer auth, retrying only on HTTP 429 with
// linearly increasing backoff (attempt x step).
func (s *Source) getJSON(ctx context.Context, url string, out any) error {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		status, err := s.doRequest(ctx, url, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if status != http.StatusTooManyRequests {
			return err
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := time.Duration(attempt) * s.backoffStep
		s.logger.Warn("rate limited, retrying",
			"attempt", attempt,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("after %d attempts: %w", s.maxAttempts, lastErr)
}

func (s *Source) doRequest(ctx context.Context, url string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return resp.StatusCode, fmt.Errorf("unexpected status %d: %w", resp.StatusCode, ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	return resp.StatusCode, nil
}

func (s *Source) transform(rows []assessmentRow) []domain.Species {
	species := make([]domain.Species, 0, len(rows))

	for _, r := range rows {
		species = append(species, domain.Species{
			TaxonID:         r.TaxonID,
			AssessmentID:    r.AssessmentID,
			ScientificName:  r.ScientificName,
			Category:        r.CategoryCode,
			YearPublished:   r.YearPublished,
			URL:             r.URL,
			AssessmentCount: 1,
		})
	}

	return species
}

// enrichBatched issues the secondary detail lookups in fixed-size concurrent
// batches with a delay between batches. A failed lookup leaves the record
// with its page-level fields; it never fails the batch.
func (s *Source) enrichBatched(ctx context.Context, species []domain.Species) {
	for start := 0; start < len(species); start += s.batchSize {
		end := start + s.batchSize
		if end > len(species) {
			end = len(species)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				s.enrich(gctx, &species[i])
				return nil
			})
		}
		_ = g.Wait()

		if ctx.Err() != nil {
			return
		}

		if end < len(species) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.batchDelay):
			}
		}
	}
}

func (s *Source) enrich(ctx context.Context, sp *domain.Species) {
	var taxon taxonResponse
	url := fmt.Sprintf("%s/taxa/sis/%d", s.baseURL, sp.TaxonID)
	if err := s.getJSON(ctx, url, &taxon); err != nil {
		s.logger.Warn("taxon detail lookup failed",
			"taxon_id", sp.TaxonID,
			"error", err,
		)
	} else {
		sp.Family = taxon.Taxon.FamilyName
		sp.AssessmentCount = len(taxon.Assessments)
		sp.PreviousAssessments = previousAssessments(taxon.Assessments, sp.AssessmentID)
		// A taxon always carries at least its current assessment.
		if sp.AssessmentCount < len(sp.PreviousAssessments)+1 {
			sp.AssessmentCount = len(sp.PreviousAssessments) + 1
		}
	}

	var assessment assessmentResponse
	url = fmt.Sprintf("%s/assessment/%d", s.baseURL, sp.AssessmentID)
	if err := s.getJSON(ctx, url, &assessment); err != nil {
		s.logger.Warn("assessment detail lookup failed",
			"assessment_id", sp.AssessmentID,
			"error", err,
		)
		return
	}

	sp.AssessmentDate = assessment.AssessmentDate
	if assessment.PopulationTrend != nil && assessment.PopulationTrend.Description.En != "" {
		trend := assessment.PopulationTrend.Description.En
		sp.PopulationTrend = &trend
	}
	for _, loc := range assessment.Locations {
		if loc.IsNative {
			sp.Countries = append(sp.Countries, loc.Code)
		}
	}
}

func previousAssessments(history []historyRow, currentID int64) []domain.PreviousAssessment {
	var prev []domain.PreviousAssessment
	for _, h := range history {
		if h.AssessmentID == currentID {
			continue
		}
		year, err := strconv.Atoi(h.YearPublished)
		if err != nil {
			year = 0
		}
		prev = append(prev, domain.PreviousAssessment{
			Year:         year,
			AssessmentID: h.AssessmentID,
			Category:     h.CategoryCode,
		})
	}
	return prev
}
