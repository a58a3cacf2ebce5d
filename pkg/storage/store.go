// Package storage implements the collections backend over a local directory
// tree. It is consumed directly by the local API client and served over HTTP
// by the dev server, so both modes share one set of semantics.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/logging"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/sirupsen/logrus"
)

// recentLimit caps the recent category listing.
const recentLimit = 50

// Store provides collection operations over a root directory.
type Store struct {
	root   string
	logger *logrus.Entry

	mu sync.Mutex

	// recent listing cache, invalidated by the watcher (watch.go) or by any
	// mutation through this store.
	recentCache []models.CollectionItem
	recentValid bool
}

// New opens a store over the given root directory, creating it if needed.
func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to resolve collections root")
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create collections root")
	}

	return &Store{
		root:   abs,
		logger: logging.NewLogger("storage"),
	}, nil
}

// Root returns the absolute root directory of the store.
func (s *Store) Root() string {
	return s.root
}

// absPath maps a canonical collection path onto the filesystem, rejecting
// unsafe paths.
func (s *Store) absPath(relPath string) (string, error) {
	relPath = nav.Canonicalize(relPath)
	if !nav.IsSafe(relPath) {
		return "", errors.InvalidPath(relPath)
	}
	return filepath.Join(s.root, filepath.FromSlash(relPath)), nil
}

// itemFor builds a CollectionItem from a filesystem entry.
func (s *Store) itemFor(relPath string, info os.FileInfo, state *sidecarState) models.CollectionItem {
	item := models.CollectionItem{
		Path:         relPath,
		Name:         info.Name(),
		Kind:         models.KindFile,
		ModifiedTime: info.ModTime(),
	}
	if info.IsDir() {
		item.Kind = models.KindFolder
	} else {
		item.Size = info.Size()
		item.IsImage = models.IsImageName(info.Name())
	}
	if state != nil {
		item.IsFavorite = state.isFavorite(relPath)
	}
	return item
}

// List returns the items directly under relPath, folders first, then
// alphabetically, matching what the backend API serves for general paths.
func (s *Store) List(relPath string) ([]models.CollectionItem, error) {
	abs, err := s.absPath(relPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ItemNotFound(relPath)
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to stat path")
	}
	if !info.IsDir() {
		return nil, errors.InvalidPath(relPath).WithDetail("reason", "not a folder")
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to read directory")
	}

	s.mu.Lock()
	state, err := s.loadState()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	rel := nav.Canonicalize(relPath)
	items := make([]models.CollectionItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Name() == ".pictor" {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			s.logger.WithError(err).WithField("entry", entry.Name()).Warn("Skipping unreadable entry")
			continue
		}
		items = append(items, s.itemFor(nav.JoinPath(rel, entry.Name()), fi, state))
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsFolder() != items[j].IsFolder() {
			return items[i].IsFolder()
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	return items, nil
}

// ListCategory returns the items of a virtual category.
func (s *Store) ListCategory(category nav.Category) ([]models.CollectionItem, error) {
	switch category {
	case nav.CategoryRecent:
		return s.listRecent()
	case nav.CategoryFavorites:
		return s.listFavorites()
	case nav.CategoryShared:
		return s.listShared()
	case nav.CategoryTrash:
		return s.listTrash()
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "invalid category").
		WithDetail("category", string(category))
}

// listRecent walks the tree for the most recently modified files. The result
// is cached until a mutation or a filesystem event invalidates it.
func (s *Store) listRecent() ([]models.CollectionItem, error) {
	s.mu.Lock()
	if s.recentValid {
		cached := make([]models.CollectionItem, len(s.recentCache))
		copy(cached, s.recentCache)
		s.mu.Unlock()
		return cached, nil
	}
	state, err := s.loadState()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var items []models.CollectionItem
	err = filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, skip
		}
		if d.IsDir() {
			if d.Name() == ".pictor" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return nil
		}
		fi, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		items = append(items, s.itemFor(filepath.ToSlash(rel), fi, state))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to walk collections root")
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ModifiedTime.After(items[j].ModifiedTime)
	})
	if len(items) > recentLimit {
		items = items[:recentLimit]
	}

	s.mu.Lock()
	s.recentCache = make([]models.CollectionItem, len(items))
	copy(s.recentCache, items)
	s.recentValid = true
	s.mu.Unlock()

	return items, nil
}

func (s *Store) listFavorites() ([]models.CollectionItem, error) {
	s.mu.Lock()
	state, err := s.loadState()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	items := make([]models.CollectionItem, 0, len(state.Favorites))
	for _, relPath := range state.Favorites {
		abs, err := s.absPath(relPath)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			s.logger.WithField("path", relPath).Warn("Favorite points at a missing item")
			continue
		}
		items = append(items, s.itemFor(relPath, info, state))
	}
	return items, nil
}

func (s *Store) listShared() ([]models.CollectionItem, error) {
	s.mu.Lock()
	state, err := s.loadState()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	items := make([]models.CollectionItem, 0, len(state.Shares))
	for _, share := range state.Shares {
		abs, err := s.absPath(share.Path)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			s.logger.WithField("path", share.Path).Warn("Shared item not found")
			continue
		}
		item := s.itemFor(share.Path, info, state)
		item.OwnerID = share.OwnerID
		item.SharedBy = share.OwnerName
		items = append(items, item)
	}
	return items, nil
}

func (s *Store) listTrash() ([]models.CollectionItem, error) {
	s.mu.Lock()
	state, err := s.loadState()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	items := make([]models.CollectionItem, 0, len(state.Trash))
	for _, entry := range state.Trash {
		abs, err := s.absPath(entry.Path)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			continue
		}
		items = append(items, s.itemFor(entry.Path, info, state))
	}
	return items, nil
}

// Open returns a reader over a file's raw bytes.
func (s *Store) Open(relPath string) (io.ReadCloser, error) {
	abs, err := s.absPath(relPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ItemNotFound(relPath)
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to open file")
	}
	return f, nil
}

// invalidateRecent drops the cached recent listing.
func (s *Store) invalidateRecent() {
	s.mu.Lock()
	s.recentValid = false
	s.recentCache = nil
	s.mu.Unlock()
}
