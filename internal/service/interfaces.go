package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"redlist_dashboard/internal/domain"
	"redlist_dashboard/internal/taxon"
)

type AssessmentSource interface {
	FetchPage(ctx context.Context, apiPath string, page int) ([]domain.Species, error)
}

type OccurrenceSource interface {
	FetchFacetPage(ctx context.Context, filter taxon.GBIFFilter, offset int) ([]domain.Occurrence, error)
}

type SnapshotStore interface {
	Save(name string, snap *domain.Snapshot) error
	Load(name string) (*domain.Snapshot, error)
}

type OccurrenceStore interface {
	Save(name string, occurrences []domain.Occurrence) error
	Load(name string) ([]domain.Occurrence, error)
}

type Publisher interface {
	Publish(ctx context.Context, meta domain.Metadata) error
	Close() error
}
