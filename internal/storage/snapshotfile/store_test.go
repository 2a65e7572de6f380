package snapshotfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redlist_dashboard/internal/domain"
)

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir())

	snap := domain.NewSnapshot("mammals")
	snap.Add(domain.Species{
		TaxonID:        12392,
		AssessmentID:   197722056,
		ScientificName: "Loxodonta africana",
		Category:       "EN",
		YearPublished:  "2021",
	})
	snap.Meta.FetchedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snap.Meta.PagesProcessed = 3
	snap.Meta.LastPage = 3
	snap.Meta.Complete = true

	require.NoError(t, store.Save("mammals.json", snap))

	loaded, err := store.Load("mammals.json")
	require.NoError(t, err)

	assert.Equal(t, snap.Species, loaded.Species)
	assert.Equal(t, snap.Meta, loaded.Meta)
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("missing.json")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())

	first := domain.NewSnapshot("mammals")
	first.Add(domain.Species{ScientificName: "Lynx lynx", Category: "LC"})
	require.NoError(t, store.Save("mammals.json", first))

	second := domain.NewSnapshot("mammals")
	second.Add(domain.Species{ScientificName: "Lynx lynx", Category: "LC"})
	second.Add(domain.Species{ScientificName: "Lynx pardinus", Category: "EN"})
	require.NoError(t, store.Save("mammals.json", second))

	loaded, err := store.Load("mammals.json")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Meta.TotalSpecies)
}

func TestStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Save("mammals.json", domain.NewSnapshot("mammals")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store := NewStore(dir)

	require.NoError(t, store.Save("mammals.json", domain.NewSnapshot("mammals")))

	_, err := os.Stat(filepath.Join(dir, "mammals.json"))
	assert.NoError(t, err)
}

func TestOccurrenceStore_SaveSortsDescending(t *testing.T) {
	dir := t.TempDir()
	store := NewOccurrenceStore(dir)

	require.NoError(t, store.Save("birds_occurrences.csv", []domain.Occurrence{
		{SpeciesKey: 10, Count: 5},
		{SpeciesKey: 20, Count: 9000},
		{SpeciesKey: 30, Count: 5},
	}))

	raw, err := os.ReadFile(filepath.Join(dir, "birds_occurrences.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "species_key,occurrence_count", lines[0])
	assert.Equal(t, "20,9000", lines[1])
	assert.Equal(t, "10,5", lines[2], "ties break by ascending key")
	assert.Equal(t, "30,5", lines[3])
}

func TestOccurrenceStore_LoadRoundtrip(t *testing.T) {
	store := NewOccurrenceStore(t.TempDir())

	in := []domain.Occurrence{
		{SpeciesKey: 2482444, Count: 120345},
		{SpeciesKey: 5219404, Count: 17},
	}
	require.NoError(t, store.Save("mammals_occurrences.csv", in))

	out, err := store.Load("mammals_occurrences.csv")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestOccurrenceStore_LoadMissing(t *testing.T) {
	store := NewOccurrenceStore(t.TempDir())

	_, err := store.Load("missing.csv")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOccurrenceStore_LoadMalformedRow(t *testing.T) {
	dir := t.TempDir()
	store := NewOccurrenceStore(dir)

	csv := "species_key,occurrence_count\n123,abc\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"), []byte(csv), 0o644))

	_, err := store.Load("bad.csv")
	assert.Error(t, err)
}
