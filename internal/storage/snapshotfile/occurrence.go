package snapshotfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"redlist_dashboard/internal/domain"
)

// OccurrenceStore persists GBIF occurrence counts as a two-column CSV
// (species_key,occurrence_count) sorted descending by count. There is no
// metadata envelope, so occurrence runs are not resumable.
type OccurrenceStore struct {
	dir string
}

func NewOccurrenceStore(dir string) *OccurrenceStore {
	return &OccurrenceStore{dir: dir}
}

func (s *OccurrenceStore) Save(name string, occurrences []domain.Occurrence) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	sorted := make([]domain.Occurrence, len(occurrences))
	copy(sorted, occurrences)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].SpeciesKey < sorted[j].SpeciesKey
	})

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write occurrences: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"species_key", "occurrence_count"}); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, occ := range sorted {
		record := []string{
			strconv.FormatInt(occ.SpeciesKey, 10),
			strconv.FormatInt(occ.Count, 10),
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush occurrences: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close occurrences: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace occurrences: %w", err)
	}

	return nil
}

func (s *OccurrenceStore) Load(name string) ([]domain.Occurrence, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read occurrences: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse occurrences: %w", err)
	}

	var occurrences []domain.Occurrence
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "species_key" {
			continue
		}
		if len(row) != 2 {
			return nil, fmt.Errorf("parse occurrences: row %d has %d columns", i, len(row))
		}
		key, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse species key on row %d: %w", i, err)
		}
		count, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse count on row %d: %w", i, err)
		}
		occurrences = append(occurrences, domain.Occurrence{SpeciesKey: key, Count: count})
	}

	return occurrences, nil
}
