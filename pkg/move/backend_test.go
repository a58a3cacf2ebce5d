package move

import (
	"context"
	"io"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
)

// fakeBackend is a no-op Client base that test doubles embed and override.
type fakeBackend struct{}

func (fakeBackend) FetchListing(ctx context.Context, target nav.Target) (*models.ListingPayload, error) {
	return &models.ListingPayload{HasCollections: true}, nil
}
func (fakeBackend) Move(ctx context.Context, req models.MoveRequest) error { return nil }
func (fakeBackend) CreateFolder(ctx context.Context, parentPath, name string) error {
	return nil
}
func (fakeBackend) Rename(ctx context.Context, path, newName string) (string, error) {
	return "", nil
}
func (fakeBackend) Delete(ctx context.Context, path string) error { return nil }
func (fakeBackend) ToggleFavorite(ctx context.Context, path string) (bool, error) {
	return false, nil
}
func (fakeBackend) Trash(ctx context.Context, path string) error { return nil }
func (fakeBackend) Upload(ctx context.Context, folderPath, name string, content io.Reader) (models.CollectionItem, error) {
	return models.CollectionItem{}, nil
}
func (fakeBackend) OpenFile(ctx context.Context, path, ownerID string) (io.ReadCloser, error) {
	return nil, errors.ItemNotFound(path)
}
func (fakeBackend) IsAvailable() bool { return true }
func (fakeBackend) Close() error      { return nil }
