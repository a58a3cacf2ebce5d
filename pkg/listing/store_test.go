package listing

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
)

const (
	testWait = 2 * time.Second
	testTick = 10 * time.Millisecond
)

// fakeClient serves canned payloads per target and can hold responses until
// released, to exercise overlapping navigations.
type fakeClient struct {
	mu       sync.Mutex
	payloads map[nav.Target]*models.ListingPayload
	errs     map[nav.Target]error
	gates    map[nav.Target]chan struct{}
	fetches  int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		payloads: make(map[nav.Target]*models.ListingPayload),
		errs:     make(map[nav.Target]error),
		gates:    make(map[nav.Target]chan struct{}),
	}
}

func (f *fakeClient) serve(t nav.Target, items ...models.CollectionItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads[t] = &models.ListingPayload{Collections: items, HasCollections: true}
}

func (f *fakeClient) gate(t nav.Target) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[t] = ch
	return ch
}

func (f *fakeClient) FetchListing(ctx context.Context, target nav.Target) (*models.ListingPayload, error) {
	f.mu.Lock()
	f.fetches++
	gate := f.gates[target]
	payload := f.payloads[target]
	err := f.errs[target]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errors.ItemNotFound(target.String())
	}
	return payload, nil
}

func (f *fakeClient) Move(ctx context.Context, req models.MoveRequest) error { return nil }
func (f *fakeClient) CreateFolder(ctx context.Context, parentPath, name string) error {
	return nil
}
func (f *fakeClient) Rename(ctx context.Context, path, newName string) (string, error) {
	return "", nil
}
func (f *fakeClient) Delete(ctx context.Context, path string) error { return nil }
func (f *fakeClient) ToggleFavorite(ctx context.Context, path string) (bool, error) {
	return false, nil
}
func (f *fakeClient) Trash(ctx context.Context, path string) error { return nil }
func (f *fakeClient) Upload(ctx context.Context, folderPath, name string, content io.Reader) (models.CollectionItem, error) {
	return models.CollectionItem{}, nil
}
func (f *fakeClient) OpenFile(ctx context.Context, path, ownerID string) (io.ReadCloser, error) {
	return nil, errors.ItemNotFound(path)
}
func (f *fakeClient) IsAvailable() bool { return true }
func (f *fakeClient) Close() error      { return nil }

func item(path, name string) models.CollectionItem {
	return models.CollectionItem{Path: path, Name: name, Kind: models.KindFile}
}

func TestNavigateAppliesListing(t *testing.T) {
	client := newFakeClient()
	client.serve(nav.PathTarget("photos"), item("photos/a.jpg", "a.jpg"))

	store := NewStore(client)
	got, err := store.Navigate(context.Background(), nav.PathTarget("photos"))
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, nav.PathTarget("photos"), got.Target)
	require.Len(t, got.Items, 1)
	require.Len(t, got.Crumbs, 2)
	assert.Equal(t, "Home", got.Crumbs[0].Label)
	assert.Equal(t, got, store.Current())
}

func TestNavigateTargetAdvancesBeforeFetchCompletes(t *testing.T) {
	client := newFakeClient()
	client.serve(nav.PathTarget("slow"))
	release := client.gate(nav.PathTarget("slow"))

	store := NewStore(client)
	done := make(chan struct{})
	go func() {
		defer close(done)
		store.Navigate(context.Background(), nav.PathTarget("slow"))
	}()

	// The intended target is visible while the fetch is still in flight.
	assert.Eventually(t, func() bool {
		return store.Target() == nav.PathTarget("slow")
	}, testWait, testTick)
	assert.Nil(t, store.Current())

	close(release)
	<-done
	assert.NotNil(t, store.Current())
}

func TestNavigateLastCallWins(t *testing.T) {
	client := newFakeClient()
	client.serve(nav.PathTarget("slow"), item("slow/old.jpg", "old.jpg"))
	client.serve(nav.PathTarget("fast"), item("fast/new.jpg", "new.jpg"))
	release := client.gate(nav.PathTarget("slow"))

	store := NewStore(client)

	var slowResult *Listing
	var slowErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		slowResult, slowErr = store.Navigate(context.Background(), nav.PathTarget("slow"))
	}()

	assert.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.fetches == 1
	}, testWait, testTick)

	// Second navigation completes while the first is still blocked.
	fast, err := store.Navigate(context.Background(), nav.PathTarget("fast"))
	require.NoError(t, err)
	require.NotNil(t, fast)

	// Now the first response lands and must be discarded.
	close(release)
	<-done
	require.NoError(t, slowErr)
	assert.Nil(t, slowResult)

	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, nav.PathTarget("fast"), current.Target)
	assert.Equal(t, "new.jpg", current.Items[0].Name)
}

func TestNavigateFailureRetainsPreviousListing(t *testing.T) {
	client := newFakeClient()
	client.serve(nav.PathTarget("good"), item("good/a.jpg", "a.jpg"))

	store := NewStore(client)
	_, err := store.Navigate(context.Background(), nav.PathTarget("good"))
	require.NoError(t, err)

	client.mu.Lock()
	client.errs[nav.PathTarget("bad")] = errors.NetworkFailure("/api/collections", nil)
	client.mu.Unlock()

	_, err = store.Navigate(context.Background(), nav.PathTarget("bad"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNetworkFailure))

	// The displayed listing survives the failed fetch, but the intended
	// target has moved on.
	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, nav.PathTarget("good"), current.Target)
	assert.Equal(t, nav.PathTarget("bad"), store.Target())
}

func TestNavigateMalformedPayload(t *testing.T) {
	client := newFakeClient()
	client.mu.Lock()
	client.payloads[nav.PathTarget("odd")] = &models.ListingPayload{}
	client.mu.Unlock()

	store := NewStore(client)
	_, err := store.Navigate(context.Background(), nav.PathTarget("odd"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeMalformedResponse))
	assert.Nil(t, store.Current())
}

func TestNavigateSupersededMalformedPayloadDiscarded(t *testing.T) {
	client := newFakeClient()
	client.mu.Lock()
	client.payloads[nav.PathTarget("odd")] = &models.ListingPayload{}
	client.mu.Unlock()
	client.serve(nav.PathTarget("fast"), item("fast/new.jpg", "new.jpg"))
	release := client.gate(nav.PathTarget("odd"))

	store := NewStore(client)

	var oddResult *Listing
	var oddErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		oddResult, oddErr = store.Navigate(context.Background(), nav.PathTarget("odd"))
	}()

	assert.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.fetches == 1
	}, testWait, testTick)

	fast, err := store.Navigate(context.Background(), nav.PathTarget("fast"))
	require.NoError(t, err)
	require.NotNil(t, fast)

	// The malformed response lands after being superseded: it is discarded,
	// not surfaced as an error over the newer listing.
	close(release)
	<-done
	assert.NoError(t, oddErr)
	assert.Nil(t, oddResult)

	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, nav.PathTarget("fast"), current.Target)
}

func TestNavigateCategoryItems(t *testing.T) {
	client := newFakeClient()
	client.mu.Lock()
	client.payloads[nav.CategoryTarget(nav.CategoryRecent)] = &models.ListingPayload{
		Items:    []models.CollectionItem{item("x.jpg", "x.jpg")},
		HasItems: true,
	}
	client.mu.Unlock()

	store := NewStore(client)
	got, err := store.Navigate(context.Background(), nav.CategoryTarget(nav.CategoryRecent))
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
}

func TestSubscribe(t *testing.T) {
	client := newFakeClient()
	client.serve(nav.Root(), item("a.jpg", "a.jpg"))

	store := NewStore(client)
	var seen []nav.Target
	store.Subscribe(func(l Listing) {
		seen = append(seen, l.Target)
	})

	_, err := store.Navigate(context.Background(), nav.Root())
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, nav.Root(), seen[0])
}
