package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"redlist_dashboard/internal/domain"
	"redlist_dashboard/internal/taxon"
)

// ErrUnavailable means no snapshot data exists on disk for the taxon yet.
// It is a normal outcome, not a failure: the serving layer turns it into a
// "run ingestion" response.
var ErrUnavailable = errors.New("snapshot unavailable")

type SnapshotLoader interface {
	Load(name string) (*domain.Snapshot, error)
}

type OccurrenceLoader interface {
	Load(name string) ([]domain.Occurrence, error)
}

// Service serves the most recent snapshot per taxon with bounded staleness.
// The filesystem is the source of truth; entries expire after the TTL and
// are reloaded on the next read. Failed loads are never cached, so a fetch
// run completing concurrently becomes visible on the next request.
type Service struct {
	snapshots   SnapshotLoader
	occurrences OccurrenceLoader
	entries     *gocache.Cache
	logger      *slog.Logger
}

func NewService(snapshots SnapshotLoader, occurrences OccurrenceLoader, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		snapshots:   snapshots,
		occurrences: occurrences,
		entries:     gocache.New(ttl, 2*ttl),
		logger:      logger,
	}
}

// Snapshot returns the taxon's snapshot, merging constituent files for
// combined taxa. Missing or unreadable constituents are skipped; only a
// taxon with no readable data at all yields ErrUnavailable.
func (s *Service) Snapshot(tc taxon.Config) (*domain.Snapshot, error) {
	key := "snapshot:" + tc.ID
	if v, ok := s.entries.Get(key); ok {
		return v.(*domain.Snapshot), nil
	}

	snap, err := s.load(tc)
	if err != nil {
		return nil, err
	}

	s.entries.Set(key, snap, gocache.DefaultExpiration)
	return snap, nil
}

func (s *Service) load(tc taxon.Config) (*domain.Snapshot, error) {
	var loaded []*domain.Snapshot
	for _, file := range tc.DataFiles {
		snap, err := s.snapshots.Load(file)
		if err != nil {
			s.logger.Debug("constituent file unreadable, skipping",
				"taxon", tc.ID,
				"file", file,
				"error", err,
			)
			continue
		}
		loaded = append(loaded, snap)
	}

	if len(loaded) == 0 {
		return nil, fmt.Errorf("taxon %s: %w", tc.ID, ErrUnavailable)
	}

	if len(loaded) == 1 && !tc.Combined() {
		return loaded[0], nil
	}

	merged := Merge(loaded)
	merged.Meta.TaxonID = tc.ID
	return merged, nil
}

// Occurrences returns the taxon's GBIF occurrence counts from the CSV
// snapshot, with the same TTL and unavailability semantics as Snapshot.
func (s *Service) Occurrences(tc taxon.Config) ([]domain.Occurrence, error) {
	if tc.OccurrenceFile == "" {
		return nil, fmt.Errorf("taxon %s: %w", tc.ID, ErrUnavailable)
	}

	key := "occurrences:" + tc.ID
	if v, ok := s.entries.Get(key); ok {
		return v.([]domain.Occurrence), nil
	}

	occurrences, err := s.occurrences.Load(tc.OccurrenceFile)
	if err != nil {
		return nil, fmt.Errorf("taxon %s: %w", tc.ID, ErrUnavailable)
	}

	s.entries.Set(key, occurrences, gocache.DefaultExpiration)
	return occurrences, nil
}

// Invalidate drops the cached entries for one taxon.
func (s *Service) Invalidate(taxonID string) {
	s.entries.Delete("snapshot:" + taxonID)
	s.entries.Delete("occurrences:" + taxonID)
}

// InvalidateAll drops every cached entry.
func (s *Service) InvalidateAll() {
	s.entries.Flush()
}
