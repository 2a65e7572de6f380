package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redlist_dashboard/internal/domain"
)

func snapWith(fetchedAt time.Time, categories ...string) *domain.Snapshot {
	snap := domain.NewSnapshot("")
	for i, c := range categories {
		snap.Add(domain.Species{TaxonID: int64(i), Category: c})
	}
	snap.Meta.FetchedAt = fetchedAt
	snap.Meta.Complete = true
	return snap
}

func TestMerge_SumsTallies(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	a := snapWith(t1, "CR", "LC", "LC")
	b := snapWith(t2, "CR", "EN")

	merged := Merge([]*domain.Snapshot{a, b})

	assert.Equal(t, 5, merged.Meta.TotalSpecies)
	assert.Len(t, merged.Species, 5)
	assert.Equal(t, 2, merged.Meta.ByCategory["CR"])
	assert.Equal(t, 2, merged.Meta.ByCategory["LC"])
	assert.Equal(t, 1, merged.Meta.ByCategory["EN"])
	assert.Equal(t, t2, merged.Meta.FetchedAt, "latest fetch timestamp wins")
	assert.True(t, merged.Meta.Complete)
}

func TestMerge_OrderInsensitive(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := snapWith(t1, "CR", "LC")
	b := snapWith(t1.Add(time.Hour), "VU", "VU", "DD")
	c := snapWith(t1.Add(2*time.Hour), "LC")

	ab := Merge([]*domain.Snapshot{a, b, c})
	ba := Merge([]*domain.Snapshot{c, b, a})

	assert.Equal(t, ab.Meta.TotalSpecies, ba.Meta.TotalSpecies)
	assert.Equal(t, ab.Meta.ByCategory, ba.Meta.ByCategory)
	assert.Equal(t, ab.Meta.FetchedAt, ba.Meta.FetchedAt)
}

func TestMerge_Associative(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := snapWith(t1, "CR")
	b := snapWith(t1, "EN", "EN")
	c := snapWith(t1, "LC")

	left := Merge([]*domain.Snapshot{Merge([]*domain.Snapshot{a, b}), c})
	right := Merge([]*domain.Snapshot{a, Merge([]*domain.Snapshot{b, c})})

	assert.Equal(t, left.Meta.TotalSpecies, right.Meta.TotalSpecies)
	assert.Equal(t, left.Meta.ByCategory, right.Meta.ByCategory)
}

func TestMerge_IncompleteConstituent(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := snapWith(t1, "CR")
	b := snapWith(t1, "LC")
	b.Meta.Complete = false

	merged := Merge([]*domain.Snapshot{a, b})
	assert.False(t, merged.Meta.Complete)
}

func TestMerge_SkipsNil(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := snapWith(t1, "CR")

	merged := Merge([]*domain.Snapshot{nil, a})

	require.NotNil(t, merged)
	assert.Equal(t, 1, merged.Meta.TotalSpecies)
}
