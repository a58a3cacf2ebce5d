package storage

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
)

// Move relocates an item into a target folder. Validation mirrors the client
// side: no-op moves and folder self-containment are rejected before any disk
// access, then existence and collision checks run against the tree.
func (s *Store) Move(req models.MoveRequest) error {
	sourcePath := nav.Canonicalize(req.SourcePath)
	targetPath := nav.Canonicalize(req.TargetPath)

	if !nav.IsSafe(sourcePath) || !nav.IsSafe(targetPath) {
		return errors.InvalidPath(req.SourcePath)
	}
	if sourcePath == "" {
		return errors.MoveRejected("cannot move the collection root")
	}
	if nav.ParentPath(sourcePath) == targetPath {
		return errors.MoveRejected("item is already in this folder")
	}

	sourceAbs, err := s.absPath(sourcePath)
	if err != nil {
		return err
	}
	sourceInfo, err := os.Stat(sourceAbs)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ItemNotFound(sourcePath)
		}
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to stat source")
	}

	if sourceInfo.IsDir() && nav.IsSelfOrDescendant(targetPath, sourcePath) {
		return errors.MoveRejected("cannot move a folder into itself")
	}

	targetAbs, err := s.absPath(targetPath)
	if err != nil {
		return err
	}
	targetInfo, err := os.Stat(targetAbs)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ItemNotFound(targetPath)
		}
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to stat target")
	}
	if !targetInfo.IsDir() {
		return errors.MoveRejected("move target is not a folder")
	}

	newPath := nav.JoinPath(targetPath, nav.LeafName(sourcePath))
	newAbs, err := s.absPath(newPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(newAbs); err == nil {
		return errors.ItemExists(newPath)
	}

	if err := os.Rename(sourceAbs, newAbs); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to move item")
	}

	s.invalidateRecent()

	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.loadState()
	if err != nil {
		return err
	}
	state.rewritePrefix(sourcePath, newPath)
	if err := s.saveState(state); err != nil {
		return err
	}

	s.logger.WithField("source", sourcePath).WithField("target", targetPath).Info("Moved item")
	return nil
}

// CreateFolder creates a new folder under parentPath.
func (s *Store) CreateFolder(parentPath, name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "folder name is required")
	}
	if strings.ContainsAny(name, "/\\") || strings.HasPrefix(name, ".") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid folder name").
			WithDetail("name", name)
	}

	parentAbs, err := s.absPath(parentPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(parentAbs); err != nil {
		if os.IsNotExist(err) {
			return errors.ItemNotFound(nav.Canonicalize(parentPath))
		}
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to stat parent")
	}

	newPath := nav.JoinPath(nav.Canonicalize(parentPath), name)
	newAbs, err := s.absPath(newPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(newAbs); err == nil {
		return errors.ItemExists(newPath)
	}

	if err := os.Mkdir(newAbs, 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create folder")
	}
	return nil
}

// Upload stores a new file named name under folderPath, creating the folder
// when it does not exist yet. Uploading over an existing name replaces the
// file, matching the backend API. Returns the stored item.
func (s *Store) Upload(folderPath, name string, content io.Reader) (models.CollectionItem, error) {
	if name == "" {
		return models.CollectionItem{}, errors.New(errors.ErrCodeInvalidInput, "file name is required")
	}
	if strings.ContainsAny(name, "/\\") || strings.HasPrefix(name, ".") {
		return models.CollectionItem{}, errors.New(errors.ErrCodeInvalidInput, "invalid file name").
			WithDetail("name", name)
	}

	folderPath = nav.Canonicalize(folderPath)
	folderAbs, err := s.absPath(folderPath)
	if err != nil {
		return models.CollectionItem{}, err
	}
	if err := os.MkdirAll(folderAbs, 0755); err != nil {
		return models.CollectionItem{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to create upload folder")
	}

	relPath := nav.JoinPath(folderPath, name)
	abs, err := s.absPath(relPath)
	if err != nil {
		return models.CollectionItem{}, err
	}

	f, err := os.Create(abs)
	if err != nil {
		return models.CollectionItem{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to create file")
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(abs)
		return models.CollectionItem{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to write file")
	}
	if err := f.Close(); err != nil {
		return models.CollectionItem{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to write file")
	}

	s.invalidateRecent()

	info, err := os.Stat(abs)
	if err != nil {
		return models.CollectionItem{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to stat uploaded file")
	}

	s.mu.Lock()
	state, err := s.loadState()
	s.mu.Unlock()
	if err != nil {
		return models.CollectionItem{}, err
	}

	s.logger.WithField("path", relPath).Info("Uploaded file")
	return s.itemFor(relPath, info, state), nil
}

// Rename gives an item a new leaf name in place and returns the new path.
func (s *Store) Rename(oldPath, newName string) (string, error) {
	oldPath = nav.Canonicalize(oldPath)
	if oldPath == "" || newName == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "missing path or new name")
	}
	if strings.ContainsAny(newName, "/\\") || strings.HasPrefix(newName, ".") {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid new name").
			WithDetail("name", newName)
	}

	oldAbs, err := s.absPath(oldPath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(oldAbs); err != nil {
		if os.IsNotExist(err) {
			return "", errors.ItemNotFound(oldPath)
		}
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to stat item")
	}

	newPath := nav.JoinPath(nav.ParentPath(oldPath), newName)
	newAbs, err := s.absPath(newPath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(newAbs); err == nil {
		return "", errors.ItemExists(newPath)
	}

	if err := os.Rename(oldAbs, newAbs); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to rename item")
	}

	s.invalidateRecent()

	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.loadState()
	if err != nil {
		return newPath, err
	}
	state.rewritePrefix(oldPath, newPath)
	if err := s.saveState(state); err != nil {
		return newPath, err
	}
	return newPath, nil
}

// Delete removes an item permanently.
func (s *Store) Delete(relPath string) error {
	relPath = nav.Canonicalize(relPath)
	if relPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cannot delete the collection root")
	}

	abs, err := s.absPath(relPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return errors.ItemNotFound(relPath)
		}
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to stat item")
	}

	if err := os.RemoveAll(abs); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to delete item")
	}

	s.invalidateRecent()

	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.loadState()
	if err != nil {
		return err
	}

	keepFavorites := state.Favorites[:0]
	for _, p := range state.Favorites {
		if !nav.IsSelfOrDescendant(p, relPath) {
			keepFavorites = append(keepFavorites, p)
		}
	}
	state.Favorites = keepFavorites

	keepTrash := state.Trash[:0]
	for _, e := range state.Trash {
		if !nav.IsSelfOrDescendant(e.Path, relPath) {
			keepTrash = append(keepTrash, e)
		}
	}
	state.Trash = keepTrash

	return s.saveState(state)
}

// ToggleFavorite flips an item's favorite flag and returns the new state.
func (s *Store) ToggleFavorite(relPath string) (bool, error) {
	relPath = nav.Canonicalize(relPath)
	if relPath == "" {
		return false, errors.New(errors.ErrCodeInvalidInput, "no path provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.loadState()
	if err != nil {
		return false, err
	}

	for i, p := range state.Favorites {
		if p == relPath {
			state.Favorites = append(state.Favorites[:i], state.Favorites[i+1:]...)
			return false, s.saveState(state)
		}
	}

	state.Favorites = append(state.Favorites, relPath)
	return true, s.saveState(state)
}

// Trash moves an item into the trash folder and records its origin so the
// trash category can list it.
func (s *Store) Trash(relPath string) error {
	relPath = nav.Canonicalize(relPath)
	if relPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no path provided")
	}

	abs, err := s.absPath(relPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return errors.ItemNotFound(relPath)
		}
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to stat item")
	}

	trashDir, err := s.absPath("trash")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(trashDir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create trash folder")
	}

	trashPath := nav.JoinPath("trash", nav.LeafName(relPath))
	trashAbs, err := s.absPath(trashPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(trashAbs); err == nil {
		return errors.ItemExists(trashPath)
	}

	if err := os.Rename(abs, trashAbs); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to move item to trash")
	}

	s.invalidateRecent()

	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.loadState()
	if err != nil {
		return err
	}
	state.Trash = append(state.Trash, TrashEntry{
		Path:         trashPath,
		OriginalPath: relPath,
		TrashedAt:    time.Now(),
	})
	return s.saveState(state)
}

// AddShare records an item shared into this collection. Used by tests and by
// tooling that seeds shared fixtures; the real sharing flow lives server-side.
func (s *Store) AddShare(share ShareEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.loadState()
	if err != nil {
		return err
	}
	state.Shares = append(state.Shares, share)
	return s.saveState(state)
}
