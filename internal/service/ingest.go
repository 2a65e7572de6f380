package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"redlist_dashboard/internal/config"
	"redlist_dashboard/internal/domain"
	"redlist_dashboard/internal/taxon"
)

// IngestService drives the fetch-and-checkpoint loop for one or more taxa.
// The snapshot file is rewritten after every processed page so an aborted
// run never loses confirmed progress.
type IngestService struct {
	assessments AssessmentSource
	occurrences OccurrenceSource
	snapshots   SnapshotStore
	occStore    OccurrenceStore
	publisher   Publisher
	logger      *slog.Logger
	cfg         config.IngestConfig
	registry    []taxon.Config
}

func NewIngestService(
	assessments AssessmentSource,
	occurrences OccurrenceSource,
	snapshots SnapshotStore,
	occStore OccurrenceStore,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.IngestConfig,
	registry []taxon.Config,
) *IngestService {
	return &IngestService{
		assessments: assessments,
		occurrences: occurrences,
		snapshots:   snapshots,
		occStore:    occStore,
		publisher:   publisher,
		logger:      logger,
		cfg:         cfg,
		registry:    registry,
	}
}

// Ingest fetches all assessment pages for a taxon. A combined taxon is
// ingested constituent by constituent, each into its own snapshot file.
func (s *IngestService) Ingest(ctx context.Context, tc taxon.Config, resume bool) (*domain.IngestStats, error) {
	startTime := time.Now()
	stats := &domain.IngestStats{TaxonID: tc.ID, Complete: true}

	for i, apiPath := range tc.APIPaths {
		fileStats, err := s.ingestFile(ctx, tc.ID, apiPath, tc.DataFiles[i], resume)
		if fileStats != nil {
			stats.Pages += fileStats.Pages
			stats.EmptyPages += fileStats.EmptyPages
			stats.FailedPages += fileStats.FailedPages
			stats.Species += fileStats.Species
			stats.Complete = stats.Complete && fileStats.Complete
		}
		if err != nil {
			stats.Duration = time.Since(startTime)
			return stats, fmt.Errorf("ingest %s: %w", apiPath, err)
		}
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("ingestion finished",
		"taxon", tc.ID,
		"species", stats.Species,
		"pages", stats.Pages,
		"failed_pages", stats.FailedPages,
		"complete", stats.Complete,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *IngestService) ingestFile(ctx context.Context, taxonID, apiPath, file string, resume bool) (*domain.IngestStats, error) {
	logger := s.logger.With("taxon", taxonID, "path", apiPath)
	stats := &domain.IngestStats{TaxonID: taxonID}

	acc := domain.NewSnapshot(taxonID)
	startPage := 1
	var failedPages []int

	if resume {
		snap, err := s.snapshots.Load(file)
		switch {
		case err == nil && snap.Meta.Complete:
			logger.Info("snapshot already complete, nothing to resume",
				"species", snap.Meta.TotalSpecies,
				"pages", snap.Meta.PagesProcessed,
			)
			stats.Species = snap.Meta.TotalSpecies
			stats.Pages = snap.Meta.PagesProcessed
			stats.Complete = true
			return stats, nil
		case err == nil:
			acc = snap
			startPage = snap.Meta.LastPage + 1
			failedPages = snap.Meta.FailedPages
			acc.Meta.FailedPages = nil
			logger.Info("resuming from incomplete snapshot",
				"species", acc.Meta.TotalSpecies,
				"start_page", startPage,
				"failed_pages", len(failedPages),
			)
		case errors.Is(err, fs.ErrNotExist):
			// Fresh run.
		default:
			return stats, fmt.Errorf("load snapshot: %w", err)
		}
	}

	emptyPages := 0
	page := startPage

	for {
		if err := ctx.Err(); err != nil {
			s.checkpoint(logger, file, acc, failedPages, false)
			return stats, err
		}

		records, err := s.assessments.FetchPage(ctx, apiPath, page)
		if err != nil {
			if ctx.Err() != nil {
				s.checkpoint(logger, file, acc, failedPages, false)
				return stats, ctx.Err()
			}
			// Park the page and move on; it is retried after the cursor
			// is exhausted and blocks completion until it succeeds.
			logger.Error("page failed, deferring", "page", page, "error", err)
			failedPages = append(failedPages, page)
			s.checkpoint(logger, file, acc, failedPages, false)
			page++
			continue
		}

		if len(records) == 0 {
			emptyPages++
			stats.EmptyPages++
			if emptyPages >= s.cfg.EmptyPageLimit {
				break
			}
		} else {
			emptyPages = 0
			for _, sp := range records {
				acc.Add(sp)
			}
		}

		acc.Meta.PagesProcessed++
		acc.Meta.LastPage = page
		stats.Pages++

		s.checkpoint(logger, file, acc, failedPages, false)

		page++
		if err := s.pageDelay(ctx); err != nil {
			s.checkpoint(logger, file, acc, failedPages, false)
			return stats, err
		}
	}

	// One distinct retry pass over deferred pages. Pages not yet retried
	// stay on the persisted failed list so a crash here loses nothing.
	var stillFailed []int
	for i, p := range failedPages {
		records, err := s.assessments.FetchPage(ctx, apiPath, p)
		if err != nil {
			logger.Error("deferred page failed again", "page", p, "error", err)
			stillFailed = append(stillFailed, p)
			continue
		}
		for _, sp := range records {
			acc.Add(sp)
		}
		acc.Meta.PagesProcessed++
		stats.Pages++
		remaining := append(append([]int{}, stillFailed...), failedPages[i+1:]...)
		s.checkpoint(logger, file, acc, remaining, false)
	}

	complete := len(stillFailed) == 0
	s.checkpoint(logger, file, acc, stillFailed, complete)

	stats.Species = acc.Meta.TotalSpecies
	stats.FailedPages = len(stillFailed)
	stats.Complete = complete

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, acc.Meta); err != nil {
			logger.Warn("snapshot notification failed", "error", err)
		}
	}

	return stats, nil
}

// checkpoint rewrites the snapshot file with the current accumulator state.
// A failed save is logged, not fatal: the next page save retries it.
func (s *IngestService) checkpoint(logger *slog.Logger, file string, acc *domain.Snapshot, failedPages []int, complete bool) {
	acc.Meta.FetchedAt = time.Now().UTC()
	acc.Meta.FailedPages = failedPages
	acc.Meta.Complete = complete

	if err := s.snapshots.Save(file, acc); err != nil {
		logger.Error("checkpoint save failed", "file", file, "error", err)
	}
}

func (s *IngestService) pageDelay(ctx context.Context) error {
	if s.cfg.PageDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.cfg.PageDelay):
		return nil
	}
}

// IngestOccurrences walks the GBIF speciesKey facets for every filter the
// taxon declares and writes the merged counts as a CSV snapshot. Duplicate
// species keys across facet pages keep the maximum observed count.
func (s *IngestService) IngestOccurrences(ctx context.Context, tc taxon.Config) (*domain.IngestStats, error) {
	if tc.OccurrenceFile == "" || len(tc.GBIFFilters) == 0 {
		return &domain.IngestStats{TaxonID: tc.ID, Complete: true}, nil
	}

	startTime := time.Now()
	logger := s.logger.With("taxon", tc.ID)
	stats := &domain.IngestStats{TaxonID: tc.ID, Complete: true}

	byKey := make(map[int64]int64)

	for _, filter := range tc.GBIFFilters {
		offset := 0
		for {
			if err := ctx.Err(); err != nil {
				s.saveOccurrences(logger, tc.OccurrenceFile, byKey)
				return stats, err
			}

			counts, err := s.occurrences.FetchFacetPage(ctx, filter, offset)
			if err != nil {
				if ctx.Err() != nil {
					s.saveOccurrences(logger, tc.OccurrenceFile, byKey)
					return stats, ctx.Err()
				}
				logger.Error("facet page failed, abandoning filter",
					"param", filter.Param,
					"key", filter.Key,
					"offset", offset,
					"error", err,
				)
				stats.Complete = false
				break
			}
			if len(counts) == 0 {
				break
			}

			for _, occ := range counts {
				if occ.Count > byKey[occ.SpeciesKey] {
					byKey[occ.SpeciesKey] = occ.Count
				}
			}
			stats.Pages++

			s.saveOccurrences(logger, tc.OccurrenceFile, byKey)

			offset += len(counts)
			if err := s.pageDelay(ctx); err != nil {
				return stats, err
			}
		}
	}

	s.saveOccurrences(logger, tc.OccurrenceFile, byKey)
	stats.Occurrences = len(byKey)
	stats.Duration = time.Since(startTime)

	logger.Info("occurrence ingestion finished",
		"species", stats.Occurrences,
		"pages", stats.Pages,
		"complete", stats.Complete,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *IngestService) saveOccurrences(logger *slog.Logger, file string, byKey map[int64]int64) {
	occurrences := make([]domain.Occurrence, 0, len(byKey))
	for key, count := range byKey {
		occurrences = append(occurrences, domain.Occurrence{SpeciesKey: key, Count: count})
	}
	if err := s.occStore.Save(file, occurrences); err != nil {
		logger.Error("occurrence save failed", "file", file, "error", err)
	}
}

// IngestAll runs assessment and occurrence ingestion for every registered
// taxon, resuming incomplete snapshots. Used by the interval scheduler.
func (s *IngestService) IngestAll(ctx context.Context) error {
	for _, tc := range s.registry {
		if _, err := s.Ingest(ctx, tc, true); err != nil {
			if ctx.Err() != nil {
				return err
			}
			s.logger.Error("taxon ingestion failed", "taxon", tc.ID, "error", err)
		}
		if _, err := s.IngestOccurrences(ctx, tc); err != nil {
			if ctx.Err() != nil {
				return err
			}
			s.logger.Error("occurrence ingestion failed", "taxon", tc.ID, "error", err)
		}
	}
	return nil
}
