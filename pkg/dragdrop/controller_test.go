package dragdrop

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/pkg/gallery"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/move"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/pkg/notify"
)

// recordingBackend counts move requests; everything else is inert.
type recordingBackend struct {
	moves   []models.MoveRequest
	moveErr error
}

func (b *recordingBackend) FetchListing(ctx context.Context, target nav.Target) (*models.ListingPayload, error) {
	return &models.ListingPayload{HasCollections: true}, nil
}
func (b *recordingBackend) Move(ctx context.Context, req models.MoveRequest) error {
	b.moves = append(b.moves, req)
	return b.moveErr
}
func (b *recordingBackend) CreateFolder(ctx context.Context, parentPath, name string) error {
	return nil
}
func (b *recordingBackend) Rename(ctx context.Context, path, newName string) (string, error) {
	return "", nil
}
func (b *recordingBackend) Delete(ctx context.Context, path string) error { return nil }
func (b *recordingBackend) ToggleFavorite(ctx context.Context, path string) (bool, error) {
	return false, nil
}
func (b *recordingBackend) Trash(ctx context.Context, path string) error { return nil }
func (b *recordingBackend) Upload(ctx context.Context, folderPath, name string, content io.Reader) (models.CollectionItem, error) {
	return models.CollectionItem{}, nil
}
func (b *recordingBackend) OpenFile(ctx context.Context, path, ownerID string) (io.ReadCloser, error) {
	return nil, errors.ItemNotFound(path)
}
func (b *recordingBackend) IsAvailable() bool { return true }
func (b *recordingBackend) Close() error      { return nil }

type silentNotifier struct{}

type silentHandle struct{}

func (silentHandle) Close() {}

func (silentNotifier) Notify(notify.Severity, string, string) notify.Handle {
	return silentHandle{}
}
func (silentNotifier) NotifyTimed(notify.Severity, string, string, time.Duration) notify.Handle {
	return silentHandle{}
}

type fixture struct {
	container  *gallery.Container
	controller *Controller
	backend    *recordingBackend
}

func newFixture(t *testing.T, target nav.Target, items ...models.CollectionItem) *fixture {
	t.Helper()

	container := gallery.NewContainer("gallery")
	renderer, err := gallery.NewRenderer(container)
	require.NoError(t, err)
	renderer.Render(target, items)

	backend := &recordingBackend{}
	svc := move.NewService(backend, nil, silentNotifier{})
	controller, err := NewController(container, svc, silentNotifier{})
	require.NoError(t, err)

	return &fixture{container: container, controller: controller, backend: backend}
}

func folder(path string) models.CollectionItem {
	return models.CollectionItem{Path: path, Name: nav.LeafName(path), Kind: models.KindFolder}
}

func file(path string) models.CollectionItem {
	return models.CollectionItem{Path: path, Name: nav.LeafName(path), Kind: models.KindFile}
}

func TestDropOnFolderIssuesMove(t *testing.T) {
	f := newFixture(t, nav.PathTarget("photos"),
		folder("photos/albums"),
		file("photos/x.jpg"),
	)

	f.controller.Start(f.container.FindByPath("photos/x.jpg"))
	assert.Equal(t, StateDragging, f.controller.State())

	err := f.controller.Drop(context.Background(), f.container.FindByPath("photos/albums"))
	require.NoError(t, err)

	require.Len(t, f.backend.moves, 1)
	assert.Equal(t, "photos/x.jpg", f.backend.moves[0].SourcePath)
	assert.Equal(t, "photos/albums", f.backend.moves[0].TargetPath)
	assert.Equal(t, StateIdle, f.controller.State())
	assert.Nil(t, f.controller.Context())
}

func TestDropOnContainerUsesCurrentFolder(t *testing.T) {
	f := newFixture(t, nav.PathTarget("photos"), file("photos/albums/x.jpg"))

	// The rendered listing is "photos" but this node came from deeper; a
	// drop on empty space targets the folder the user is looking at.
	f.controller.Start(f.container.FindByPath("photos/albums/x.jpg"))
	err := f.controller.Drop(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, f.backend.moves, 1)
	assert.Equal(t, "photos", f.backend.moves[0].TargetPath)
}

func TestDropBackIntoSameFolderRejected(t *testing.T) {
	f := newFixture(t, nav.PathTarget("photos"), file("photos/x.jpg"))

	f.controller.Start(f.container.FindByPath("photos/x.jpg"))
	err := f.controller.Drop(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidationRejected))
	assert.Contains(t, errors.GetMessage(err), "already in this folder")

	// Rejected before anything reached the backend.
	assert.Empty(t, f.backend.moves)
	assert.Equal(t, StateIdle, f.controller.State())
}

func TestDropFolderIntoItselfRejected(t *testing.T) {
	f := newFixture(t, nav.Root(),
		folder("photos"),
		folder("photos/vacation"),
	)

	f.controller.Start(f.container.FindByPath("photos"))
	err := f.controller.Drop(context.Background(), f.container.FindByPath("photos/vacation"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidationRejected))
	assert.Contains(t, errors.GetMessage(err), "into itself")
	assert.Empty(t, f.backend.moves)
}

func TestDropSiblingWithSharedPrefixAllowed(t *testing.T) {
	f := newFixture(t, nav.Root(),
		folder("photos"),
		folder("photos-backup"),
	)

	// "photos-backup" shares a name prefix with "photos" but is a sibling,
	// not a descendant.
	f.controller.Start(f.container.FindByPath("photos"))
	err := f.controller.Drop(context.Background(), f.container.FindByPath("photos-backup"))
	require.NoError(t, err)
	require.Len(t, f.backend.moves, 1)
}

func TestDropInCategoryViewRejected(t *testing.T) {
	f := newFixture(t, nav.CategoryTarget(nav.CategoryRecent), file("photos/x.jpg"))

	f.controller.Start(f.container.FindByPath("photos/x.jpg"))
	err := f.controller.Drop(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidationRejected))
	assert.Empty(t, f.backend.moves)
}

func TestHoverTracksFoldersOnly(t *testing.T) {
	f := newFixture(t, nav.PathTarget("photos"),
		folder("photos/albums"),
		file("photos/x.jpg"),
		file("photos/y.jpg"),
	)

	f.controller.Start(f.container.FindByPath("photos/y.jpg"))

	f.controller.HoverEnter(f.container.FindByPath("photos/albums"))
	assert.Equal(t, StateHovering, f.controller.State())
	require.NotNil(t, f.controller.HoverTarget())
	assert.Equal(t, "photos/albums", f.controller.HoverTarget().Path())

	f.controller.HoverEnter(f.container.FindByPath("photos/x.jpg"))
	assert.Equal(t, StateDragging, f.controller.State())
	assert.Nil(t, f.controller.HoverTarget())

	f.controller.HoverEnter(f.container.FindByPath("photos/albums"))
	f.controller.HoverLeave()
	assert.Equal(t, StateDragging, f.controller.State())
	assert.Nil(t, f.controller.HoverTarget())
}

func TestCancelClearsContext(t *testing.T) {
	f := newFixture(t, nav.PathTarget("photos"), file("photos/x.jpg"))

	f.controller.Start(f.container.FindByPath("photos/x.jpg"))
	require.NotNil(t, f.controller.Context())

	f.controller.Cancel()
	assert.Equal(t, StateIdle, f.controller.State())
	assert.Nil(t, f.controller.Context())
	assert.Empty(t, f.backend.moves)
}

func TestDropWhileIdleIsNoop(t *testing.T) {
	f := newFixture(t, nav.PathTarget("photos"), folder("photos/albums"))

	err := f.controller.Drop(context.Background(), f.container.FindByPath("photos/albums"))
	assert.NoError(t, err)
	assert.Empty(t, f.backend.moves)
}

func TestContextClearedAfterFailedMove(t *testing.T) {
	f := newFixture(t, nav.PathTarget("photos"),
		folder("photos/albums"),
		file("photos/x.jpg"),
	)
	f.backend.moveErr = errors.ItemExists("photos/albums/x.jpg")

	f.controller.Start(f.container.FindByPath("photos/x.jpg"))
	err := f.controller.Drop(context.Background(), f.container.FindByPath("photos/albums"))

	require.Error(t, err)
	assert.Equal(t, StateIdle, f.controller.State())
	assert.Nil(t, f.controller.Context())
}

func TestStartReplacesActiveDrag(t *testing.T) {
	f := newFixture(t, nav.PathTarget("photos"),
		folder("photos/albums"),
		file("photos/x.jpg"),
		file("photos/y.jpg"),
	)

	f.controller.Start(f.container.FindByPath("photos/x.jpg"))
	f.controller.Start(f.container.FindByPath("photos/y.jpg"))

	require.NotNil(t, f.controller.Context())
	assert.Equal(t, "photos/y.jpg", f.controller.Context().SourcePath)

	err := f.controller.Drop(context.Background(), f.container.FindByPath("photos/albums"))
	require.NoError(t, err)
	require.Len(t, f.backend.moves, 1)
	assert.Equal(t, "photos/y.jpg", f.backend.moves[0].SourcePath)
}
