package move

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/pkg/listing"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/pkg/notify"
)

// recordingNotifier captures notification lifecycle events in order.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

type recordedHandle struct {
	notifier *recordingNotifier
	label    string
	once     sync.Once
}

func (h *recordedHandle) Close() {
	h.once.Do(func() {
		h.notifier.mu.Lock()
		defer h.notifier.mu.Unlock()
		h.notifier.events = append(h.notifier.events, "close:"+h.label)
	})
}

func (r *recordingNotifier) Notify(sev notify.Severity, title, message string) notify.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "open:"+string(sev))
	return &recordedHandle{notifier: r, label: string(sev)}
}

func (r *recordingNotifier) NotifyTimed(sev notify.Severity, title, message string, d time.Duration) notify.Handle {
	return r.Notify(sev, title, message)
}

func (r *recordingNotifier) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// moveFunc adapts a function into the one Client method the service uses.
type moveClient struct {
	fakeBackend
	moveErr error
	calls   []models.MoveRequest
}

func (c *moveClient) Move(ctx context.Context, req models.MoveRequest) error {
	c.calls = append(c.calls, req)
	return c.moveErr
}

func TestMoveSuccessNotificationPairing(t *testing.T) {
	client := &moveClient{}
	notifier := &recordingNotifier{}
	svc := NewService(client, nil, notifier)

	err := svc.Move(context.Background(), models.MoveRequest{SourcePath: "a/x.jpg", TargetPath: "b"})
	require.NoError(t, err)

	require.Len(t, client.calls, 1)
	assert.Equal(t, []string{
		"open:progress",
		"close:progress",
		"open:success",
	}, notifier.Events())
}

func TestMoveFailureClosesProgress(t *testing.T) {
	client := &moveClient{moveErr: errors.MoveRejected("item is already in this folder")}
	notifier := &recordingNotifier{}
	svc := NewService(client, nil, notifier)

	err := svc.Move(context.Background(), models.MoveRequest{SourcePath: "a/x.jpg", TargetPath: "a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidationRejected))

	// The progress notification is closed even though the move failed, and
	// the failure surfaces as its own notification.
	assert.Equal(t, []string{
		"open:progress",
		"close:progress",
		"open:error",
	}, notifier.Events())
}

type countingClient struct {
	fakeBackend
	moveErr error
	fetches int
}

func (c *countingClient) FetchListing(ctx context.Context, target nav.Target) (*models.ListingPayload, error) {
	c.fetches++
	return &models.ListingPayload{HasCollections: true}, nil
}

func (c *countingClient) Move(ctx context.Context, req models.MoveRequest) error {
	return c.moveErr
}

func TestMoveRefreshesListingOnSuccessOnly(t *testing.T) {
	client := &countingClient{}
	store := listing.NewStore(client)
	_, err := store.Navigate(context.Background(), nav.Root())
	require.NoError(t, err)
	require.Equal(t, 1, client.fetches)

	svc := NewService(client, store, &recordingNotifier{})
	require.NoError(t, svc.Move(context.Background(), models.MoveRequest{SourcePath: "x.jpg", TargetPath: "b"}))
	assert.Equal(t, 2, client.fetches)

	client.moveErr = errors.MoveRejected("nope")
	require.Error(t, svc.Move(context.Background(), models.MoveRequest{SourcePath: "x.jpg", TargetPath: "b"}))
	assert.Equal(t, 2, client.fetches)
}
