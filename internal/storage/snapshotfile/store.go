package snapshotfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"redlist_dashboard/internal/domain"
)

// Store persists assessment snapshots as whole-file JSON rewrites. The
// write goes through a temp file and rename so readers never observe a
// partially written snapshot.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Save(name string, snap *domain.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}

func (s *Store) Load(name string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	if snap.Meta.ByCategory == nil {
		snap.Meta.ByCategory = make(map[string]int)
	}

	return &snap, nil
}
