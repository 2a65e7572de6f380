package gbif

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"redlist_dashboard/internal/domain"
	"redlist_dashboard/internal/taxon"
)

// ErrRateLimited marks a request that still returned HTTP 429 after all retries.
var ErrRateLimited = errors.New("rate limited")

// MatchTypeNone is returned by MatchSpecies when GBIF found no usable match.
const MatchTypeNone = "NONE"

// Config holds GBIF API client configuration.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	FacetLimit  int
	MaxAttempts int
	BackoffStep time.Duration
}

// Source fetches per-species occurrence counts from the GBIF occurrence
// search using speciesKey facets. The facet cursor lives with the caller.
type Source struct {
	httpClient  *http.Client
	baseURL     string
	facetLimit  int
	maxAttempts int
	backoffStep time.Duration
	logger      *slog.Logger
}

// New creates a new GBIF source.
func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		facetLimit:  cfg.FacetLimit,
		maxAttempts: cfg.MaxAttempts,
		backoffStep: cfg.BackoffStep,
		logger:      logger.With("source", "gbif"),
	}
}

// FacetLimit returns the configured facet page size.
func (s *Source) FacetLimit() int {
	return s.facetLimit
}

// FetchFacetPage retrieves one facet page of species occurrence counts for
// the given taxon filter. An empty result with a nil error means the facet
// pagination is exhausted.
func (s *Source) FetchFacetPage(ctx context.Context, filter taxon.GBIFFilter, offset int) ([]domain.Occurrence, error) {
	q := url.Values{}
	q.Set(filter.Param, strconv.FormatInt(filter.Key, 10))
	q.Set("facet", "speciesKey")
	q.Set("facetLimit", strconv.Itoa(s.facetLimit))
	q.Set("facetOffset", strconv.Itoa(offset))
	q.Set("limit", "0")

	reqURL := fmt.Sprintf("%s/occurrence/search?%s", s.baseURL, q.Encode())

	var resp searchResponse
	if err := s.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("fetch facet page at offset %d: %w", offset, err)
	}

	var occurrences []domain.Occurrence
	for _, facet := range resp.Facets {
		if facet.Field != "SPECIES_KEY" {
			continue
		}
		for _, fc := range facet.Counts {
			key, err := strconv.ParseInt(fc.Name, 10, 64)
			if err != nil {
				s.logger.Warn("skipping non-numeric species key", "name", fc.Name)
				continue
			}
			occurrences = append(occurrences, domain.Occurrence{
				SpeciesKey: key,
				Count:      fc.Count,
			})
		}
	}

	s.logger.Debug("fetched facet page",
		"param", filter.Param,
		"key", filter.Key,
		"offset", offset,
		"species", len(occurrences),
	)

	return occurrences, nil
}

// MatchSpecies resolves a scientific name to a GBIF usage key. A zero key
// with MatchTypeNone means the name did not match anything.
func (s *Source) MatchSpecies(ctx context.Context, name string) (int64, string, error) {
	q := url.Values{}
	q.Set("name", name)

	reqURL := fmt.Sprintf("%s/species/match?%s", s.baseURL, q.Encode())

	var resp matchResponse
	if err := s.getJSON(ctx, reqURL, &resp); err != nil {
		return 0, "", fmt.Errorf("match species %q: %w", name, err)
	}

	if resp.MatchType == MatchTypeNone {
		return 0, MatchTypeNone, nil
	}

	return resp.UsageKey, resp.MatchType, nil
}

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
