package api

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pictorlabs/pictor/config"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalFixture(t *testing.T) *LocalClient {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "albums"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sunset.jpg"), []byte("x"), 0644))

	client, err := NewLocalClient(root)
	require.NoError(t, err)
	return client
}

func TestLocalFetchListingShape(t *testing.T) {
	client := newLocalFixture(t)
	defer client.Close()

	payload, err := client.FetchListing(context.Background(), nav.Root())
	require.NoError(t, err)

	// Root path listings look like the server's: collections present,
	// no parent.
	assert.True(t, payload.HasCollections)
	assert.False(t, payload.HasItems)
	assert.Nil(t, payload.Parent)
	require.Len(t, payload.Collections, 2)
	assert.Equal(t, "albums", payload.Collections[0].Name)

	payload, err = client.FetchListing(context.Background(), nav.PathTarget("albums"))
	require.NoError(t, err)
	require.NotNil(t, payload.Parent)
	assert.Equal(t, "", *payload.Parent)
}

func TestLocalFetchListingCategoryShape(t *testing.T) {
	client := newLocalFixture(t)
	defer client.Close()

	payload, err := client.FetchListing(context.Background(), nav.CategoryTarget(nav.CategoryFavorites))
	require.NoError(t, err)
	assert.True(t, payload.HasItems)
	assert.False(t, payload.HasCollections)
	assert.Empty(t, payload.Items)
}

func TestLocalMove(t *testing.T) {
	client := newLocalFixture(t)
	defer client.Close()

	err := client.Move(context.Background(), models.MoveRequest{SourcePath: "sunset.jpg", TargetPath: "albums"})
	require.NoError(t, err)

	payload, err := client.FetchListing(context.Background(), nav.PathTarget("albums"))
	require.NoError(t, err)
	require.Len(t, payload.Collections, 1)
	assert.Equal(t, "albums/sunset.jpg", payload.Collections[0].Path)
}

func TestFactoryFallsBackToLocal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.URL = "http://127.0.0.1:1" // nothing listens here
	cfg.Collections.Root = t.TempDir()

	client, err := New(cfg)
	require.NoError(t, err)
	defer client.Close()

	_, ok := client.(*LocalClient)
	assert.True(t, ok)
}
