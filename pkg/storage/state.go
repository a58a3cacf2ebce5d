package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pictorlabs/pictor/errors"
	"gopkg.in/yaml.v3"
)

// stateFileName is the sidecar file holding collection metadata that does not
// live in the directory tree itself: favorites, the trash index, and shares.
const stateFileName = "state.yml"

// ShareEntry records an item made visible to this collection by another owner.
type ShareEntry struct {
	Path      string `yaml:"path"`
	OwnerID   string `yaml:"owner_id"`
	OwnerName string `yaml:"owner_name,omitempty"`
}

// TrashEntry records a trashed item and where it came from.
type TrashEntry struct {
	Path         string    `yaml:"path"`
	OriginalPath string    `yaml:"original_path"`
	TrashedAt    time.Time `yaml:"trashed_at"`
}

// sidecarState is the persisted shape of the sidecar file.
type sidecarState struct {
	Favorites []string     `yaml:"favorites,omitempty"`
	Trash     []TrashEntry `yaml:"trash,omitempty"`
	Shares    []ShareEntry `yaml:"shares,omitempty"`
}

func (s *Store) statePath() string {
	return filepath.Join(s.root, ".pictor", stateFileName)
}

// loadState reads the sidecar state. A missing file yields empty state.
func (s *Store) loadState() (*sidecarState, error) {
	data, err := os.ReadFile(s.statePath())
	if err != nil {
		if os.IsNotExist(err) {
			return &sidecarState{}, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to read state file")
	}

	var state sidecarState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to parse state file")
	}
	return &state, nil
}

// saveState writes the sidecar state.
func (s *Store) saveState(state *sidecarState) error {
	dir := filepath.Dir(s.statePath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create state directory")
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal state")
	}

	if err := os.WriteFile(s.statePath(), data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to write state file")
	}
	return nil
}

func (st *sidecarState) isFavorite(path string) bool {
	for _, p := range st.Favorites {
		if p == path {
			return true
		}
	}
	return false
}

// rewritePrefix updates state paths when an item (and, for folders, its
// subtree) moves from oldPath to newPath.
func (st *sidecarState) rewritePrefix(oldPath, newPath string) {
	rewrite := func(p string) string {
		if p == oldPath {
			return newPath
		}
		if len(p) > len(oldPath) && p[:len(oldPath)] == oldPath && p[len(oldPath)] == '/' {
			return newPath + p[len(oldPath):]
		}
		return p
	}

	for i, p := range st.Favorites {
		st.Favorites[i] = rewrite(p)
	}
	for i := range st.Shares {
		st.Shares[i].Path = rewrite(st.Shares[i].Path)
	}
	for i := range st.Trash {
		st.Trash[i].Path = rewrite(st.Trash[i].Path)
		st.Trash[i].OriginalPath = rewrite(st.Trash[i].OriginalPath)
	}
}
