package cache

import "redlist_dashboard/internal/domain"

// Merge combines constituent snapshots of a combined taxon into one logical
// dataset: species lists concatenated, category tallies summed key-wise,
// the latest fetch timestamp wins. It is pure and order-insensitive with
// respect to totals and tallies.
func Merge(snaps []*domain.Snapshot) *domain.Snapshot {
	out := &domain.Snapshot{
		Species: []domain.Species{},
		Meta: domain.Metadata{
			ByCategory: make(map[string]int),
			Complete:   len(snaps) > 0,
		},
	}

	for _, snap := range snaps {
		if snap == nil {
			continue
		}
		out.Species = append(out.Species, snap.Species...)
		for code, n := range snap.Meta.ByCategory {
			out.Meta.ByCategory[code] += n
		}
		out.Meta.PagesProcessed += snap.Meta.PagesProcessed
		if snap.Meta.FetchedAt.After(out.Meta.FetchedAt) {
			out.Meta.FetchedAt = snap.Meta.FetchedAt
		}
		out.Meta.Complete = out.Meta.Complete && snap.Meta.Complete
	}

	out.Meta.TotalSpecies = len(out.Species)

	return out
}
