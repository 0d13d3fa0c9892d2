package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scorekeeper/internal/golf"
)

// FileSnapshotStore persists tournament and sidegame snapshots as JSON files.
// Writes go to a temp file first and are renamed into place so a crash can
// never leave a half-written snapshot behind.
type FileSnapshotStore struct {
	dir string
}

func NewFileSnapshotStore(dir string) (*FileSnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir %s: %w", dir, err)
	}
	return &FileSnapshotStore{dir: dir}, nil
}

func (s *FileSnapshotStore) writeAtomic(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %s: %w", name, err)
	}

	final := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot for %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp snapshot for %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp snapshot for %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to rename snapshot %s into place: %w", name, err)
	}
	return nil
}

func (s *FileSnapshotStore) SaveTournament(_ context.Context, t *golf.Tournament) error {
	return s.writeAtomic("tournament-"+t.ID+".json", t)
}

func (s *FileSnapshotStore) SaveSidegame(_ context.Context, g *golf.Sidegame) error {
	return s.writeAtomic("sidegame-"+g.ID+".json", g)
}

func (s *FileSnapshotStore) DeleteSidegame(_ context.Context, id string) error {
	err := os.Remove(filepath.Join(s.dir, "sidegame-"+id+".json"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove sidegame snapshot %s: %w", id, err)
	}
	return nil
}

// LoadAll reads every snapshot in the directory. Unreadable files are
// skipped with an error only when nothing at all can be decoded.
func (s *FileSnapshotStore) LoadAll(_ context.Context) ([]*golf.Tournament, []*golf.Sidegame, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot dir %s: %w", s.dir, err)
	}

	var tournaments []*golf.Tournament
	var sidegames []*golf.Sidegame
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		switch {
		case strings.HasPrefix(name, "tournament-"):
			var t golf.Tournament
			if err := json.Unmarshal(data, &t); err == nil {
				tournaments = append(tournaments, &t)
			}
		case strings.HasPrefix(name, "sidegame-"):
			var g golf.Sidegame
			if err := json.Unmarshal(data, &g); err == nil {
				sidegames = append(sidegames, &g)
			}
		}
	}
	return tournaments, sidegames, nil
}
