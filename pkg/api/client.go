// Package api provides a client interface for the collections backend.
// It implements a transparent fallback pattern: if a server is configured
// and reachable, use HTTP; if not, fall back to direct filesystem calls.
package api

import (
	"context"
	"io"

	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
)

// Client defines the interface for interacting with the collections backend.
// Both RemoteClient (HTTP) and LocalClient (direct calls) implement it.
type Client interface {
	// FetchListing returns the normalized listing payload for a target.
	FetchListing(ctx context.Context, target nav.Target) (*models.ListingPayload, error)

	// Move relocates an item into a target folder. A nil error means the
	// backend accepted and performed the move.
	Move(ctx context.Context, req models.MoveRequest) error

	// CreateFolder creates a new folder under parentPath.
	CreateFolder(ctx context.Context, parentPath, name string) error

	// Rename changes an item's leaf name and returns its new path.
	Rename(ctx context.Context, path, newName string) (string, error)

	// Delete permanently removes an item.
	Delete(ctx context.Context, path string) error

	// ToggleFavorite flips an item's favorite flag and returns the new state.
	ToggleFavorite(ctx context.Context, path string) (bool, error)

	// Trash moves an item into the trash folder.
	Trash(ctx context.Context, path string) error

	// Upload stores a new file named name under folderPath, creating the
	// folder when needed, and returns the stored item.
	Upload(ctx context.Context, folderPath, name string, content io.Reader) (models.CollectionItem, error)

	// OpenFile opens an item's content for reading. ownerID is set for
	// items visible through sharing.
	OpenFile(ctx context.Context, path, ownerID string) (io.ReadCloser, error)

	// IsAvailable returns true if the backend is reachable and responding.
	IsAvailable() bool

	// Close cleans up any resources used by the client.
	Close() error
}
