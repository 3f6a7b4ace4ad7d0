package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// StateStore persists crawl state so interrupted runs can resume.
//
// The checkpoint is a single JSON file holding the visited set and the
// pending frontier. It is overwritten wholesale on every save; absence
// of the file means "no saved state". There is no version field, the
// format is append-free and self-describing.
type StateStore struct {
	// path is the checkpoint file location.
	path string
}

// NewStateStore creates a StateStore writing to the given path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// checkpoint is the on-disk JSON shape.
type checkpoint struct {
	VisitedIDs []string `json:"visited_ids"`
	QueueIDs   []string `json:"queue_ids"`
}

// Load reads the saved checkpoint. A missing file yields empty state
// without error; a corrupt file is an error since silently starting
// fresh would re-crawl everything.
func (s *StateStore) Load() (visited map[string]struct{}, queue []string, err error) {
	visited = make(map[string]struct{})

	data, err := os.ReadFile(s.path) //nolint:gosec // State path is derived from config
	if err != nil {
		if os.IsNotExist(err) {
			return visited, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read crawl state: %w", err)
	}

	var cp checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, nil, fmt.Errorf("failed to parse crawl state %s: %w", s.path, err)
	}

	for _, id := range cp.VisitedIDs {
		visited[id] = struct{}{}
	}
	return visited, cp.QueueIDs, nil
}

// Save overwrites the checkpoint with the given state. The visited set
// is stored sorted so saves are deterministic; frontier order is
// preserved as given.
func (s *StateStore) Save(visited map[string]struct{}, queue []string) error {
	cp := checkpoint{
		VisitedIDs: make([]string, 0, len(visited)),
		QueueIDs:   append(make([]string, 0, len(queue)), queue...),
	}
	for id := range visited {
		cp.VisitedIDs = append(cp.VisitedIDs, id)
	}
	sort.Strings(cp.VisitedIDs)

	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to encode crawl state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write crawl state: %w", err)
	}
	return nil
}

// Clear deletes the checkpoint. Clearing when no checkpoint exists is
// not an error.
func (s *StateStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear crawl state: %w", err)
	}
	return nil
}
