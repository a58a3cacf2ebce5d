package api

import (
	"context"
	"io"

	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/pkg/storage"
)

// LocalClient implements Client by operating on a collection tree on the
// local filesystem. It is used when no server is configured or reachable,
// providing the same API but executing all operations in-process.
type LocalClient struct {
	store *storage.Store
}

// NewLocalClient creates a LocalClient over the collection tree rooted at
// root.
func NewLocalClient(root string) (*LocalClient, error) {
	store, err := storage.New(root)
	if err != nil {
		return nil, err
	}
	return &LocalClient{store: store}, nil
}

// Store exposes the underlying store for callers that serve it directly.
func (c *LocalClient) Store() *storage.Store {
	return c.store
}

// FetchListing builds a listing payload with the same field shapes the
// server would send: path listings fill collections/path/parent, category
// listings fill items.
func (c *LocalClient) FetchListing(ctx context.Context, target nav.Target) (*models.ListingPayload, error) {
	if target.IsCategory() {
		items, err := c.store.ListCategory(target.Category())
		if err != nil {
			return nil, err
		}
		return &models.ListingPayload{
			Items:    items,
			HasItems: true,
		}, nil
	}

	items, err := c.store.List(target.Path())
	if err != nil {
		return nil, err
	}
	payload := &models.ListingPayload{
		Collections:    items,
		Path:           target.Path(),
		HasCollections: true,
	}
	if !target.IsRoot() {
		parent := nav.ParentPath(target.Path())
		payload.Parent = &parent
	}
	return payload, nil
}

// Move relocates an item into a target folder.
func (c *LocalClient) Move(ctx context.Context, req models.MoveRequest) error {
	return c.store.Move(req)
}

// CreateFolder creates a new folder under parentPath.
func (c *LocalClient) CreateFolder(ctx context.Context, parentPath, name string) error {
	return c.store.CreateFolder(parentPath, name)
}

// Rename changes an item's leaf name and returns its new path.
func (c *LocalClient) Rename(ctx context.Context, path, newName string) (string, error) {
	return c.store.Rename(path, newName)
}

// Delete permanently removes an item.
func (c *LocalClient) Delete(ctx context.Context, path string) error {
	return c.store.Delete(path)
}

// ToggleFavorite flips an item's favorite flag and returns the new state.
func (c *LocalClient) ToggleFavorite(ctx context.Context, path string) (bool, error) {
	return c.store.ToggleFavorite(path)
}

// Trash moves an item into the trash folder.
func (c *LocalClient) Trash(ctx context.Context, path string) error {
	return c.store.Trash(path)
}

// Upload stores a new file under folderPath in the local tree.
func (c *LocalClient) Upload(ctx context.Context, folderPath, name string, content io.Reader) (models.CollectionItem, error) {
	return c.store.Upload(folderPath, name, content)
}

// OpenFile opens an item's content from the local tree. ownerID is ignored
// locally since the whole tree belongs to the caller.
func (c *LocalClient) OpenFile(ctx context.Context, path, ownerID string) (io.ReadCloser, error) {
	return c.store.Open(path)
}

// IsAvailable always reports true; the local tree has no liveness.
func (c *LocalClient) IsAvailable() bool {
	return true
}

// Close is a no-op for LocalClient.
func (c *LocalClient) Close() error {
	return nil
}

// Ensure LocalClient implements Client.
var _ Client = (*LocalClient)(nil)
