package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteFetchListingPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/collections", r.URL.Path)
		gotPath = r.URL.Query().Get("path")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"collections": [{"path": "photos/a", "name": "a", "type": "folder"}], "path": "photos", "parent": ""}`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, 0)
	defer client.Close()

	payload, err := client.FetchListing(context.Background(), nav.PathTarget("photos"))
	require.NoError(t, err)

	assert.Equal(t, "photos", gotPath)
	assert.True(t, payload.HasCollections)
	assert.False(t, payload.HasItems)
	require.Len(t, payload.Collections, 1)
	assert.Equal(t, models.KindFolder, payload.Collections[0].Kind)
	require.NotNil(t, payload.Parent)
}

func TestRemoteFetchListingCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The shared category travels under the backend's name for it.
		require.Equal(t, "/api/collections/list/permitted", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "items": [{"path": "x.jpg", "name": "x.jpg", "type": "file", "owner_id": "7"}]}`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, 0)
	defer client.Close()

	payload, err := client.FetchListing(context.Background(), nav.CategoryTarget(nav.CategoryShared))
	require.NoError(t, err)

	assert.True(t, payload.HasItems)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "7", payload.Items[0].OwnerID)
}

func TestRemoteFetchListingServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, 0)
	defer client.Close()

	_, err := client.FetchListing(context.Background(), nav.Root())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeServerError))
}

func TestRemoteFetchListingNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewRemoteClient(srv.URL, 0)
	_, err := client.FetchListing(context.Background(), nav.Root())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNetworkFailure))
}

func TestRemoteFetchListingMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, 0)
	defer client.Close()

	_, err := client.FetchListing(context.Background(), nav.Root())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeMalformedResponse))
}

func TestRemoteMove(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, nav.MoveEndpoint, r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, 0)
	defer client.Close()

	err := client.Move(context.Background(), models.MoveRequest{SourcePath: "a/x.jpg", TargetPath: "b"})
	assert.NoError(t, err)
}

func TestRemoteMoveRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "error": "item is already in this folder"}`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, 0)
	defer client.Close()

	err := client.Move(context.Background(), models.MoveRequest{SourcePath: "a/x.jpg", TargetPath: "a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeValidationRejected))
	assert.Contains(t, err.Error(), "already in this folder")
}

func TestRemoteToggleFavorite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, nav.FavoriteEndpoint, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "is_favorite": true}`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, 0)
	defer client.Close()

	fav, err := client.ToggleFavorite(context.Background(), "x.jpg")
	require.NoError(t, err)
	assert.True(t, fav)
}

func TestRemoteOpenFileNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, 0)
	defer client.Close()

	_, err := client.OpenFile(context.Background(), "ghost.jpg", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeItemNotFound))
}

func TestRemoteIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, 0)
	defer client.Close()
	assert.True(t, client.IsAvailable())

	srv.Close()
	assert.False(t, client.IsAvailable())
}
