package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
)

func folder(path, name string) models.CollectionItem {
	return models.CollectionItem{Path: path, Name: name, Kind: models.KindFolder}
}

func file(path, name string) models.CollectionItem {
	return models.CollectionItem{Path: path, Name: name, Kind: models.KindFile}
}

func TestRenderReplacesNodesInOrder(t *testing.T) {
	c := NewContainer("gallery")
	r, err := NewRenderer(c)
	require.NoError(t, err)

	r.Render(nav.PathTarget("photos"), []models.CollectionItem{
		folder("photos/albums", "albums"),
		file("photos/a.jpg", "a.jpg"),
	})

	require.Equal(t, 2, c.Len())
	assert.Equal(t, "albums", c.NodeAt(0).Name())
	assert.True(t, c.NodeAt(0).IsFolder())
	assert.Equal(t, "a.jpg", c.NodeAt(1).Name())
	assert.Equal(t, nav.PathTarget("photos"), c.Target())

	// A second render discards the previous nodes entirely.
	r.Render(nav.Root(), []models.CollectionItem{file("b.jpg", "b.jpg")})
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "b.jpg", c.NodeAt(0).Name())
	assert.Nil(t, c.FindByPath("photos/a.jpg"))
}

func TestNewRendererRequiresContainer(t *testing.T) {
	_, err := NewRenderer(nil)
	require.Error(t, err)
}

func TestNodeHandlerSlotReplaces(t *testing.T) {
	n := NewNode(file("a.jpg", "a.jpg"))

	var calls []string
	n.On("activate", func(*Node) { calls = append(calls, "first") })
	n.On("activate", func(*Node) { calls = append(calls, "second") })

	assert.True(t, n.Fire("activate"))
	assert.Equal(t, []string{"second"}, calls)

	assert.False(t, n.Fire("unknown"))
}

func TestBinderIdempotent(t *testing.T) {
	c := NewContainer("gallery")
	r, err := NewRenderer(c)
	require.NoError(t, err)
	r.Render(nav.Root(), []models.CollectionItem{file("a.jpg", "a.jpg"), file("b.jpg", "b.jpg")})

	bindCount := 0
	b, err := NewBinder(c, func(n *Node) { bindCount++ })
	require.NoError(t, err)

	b.BindAll()
	b.BindAll()
	b.BindAll()
	assert.Equal(t, 2, bindCount)
}

func TestBinderRebindsAfterRender(t *testing.T) {
	c := NewContainer("gallery")
	r, err := NewRenderer(c)
	require.NoError(t, err)

	bindCount := 0
	b, err := NewBinder(c, func(n *Node) { bindCount++ })
	require.NoError(t, err)
	b.Attach()

	r.Render(nav.Root(), []models.CollectionItem{file("a.jpg", "a.jpg")})
	assert.Equal(t, 1, bindCount)

	// Fresh nodes from the next render start unbound and get bound again.
	r.Render(nav.Root(), []models.CollectionItem{file("a.jpg", "a.jpg"), file("b.jpg", "b.jpg")})
	assert.Equal(t, 3, bindCount)

	for _, n := range c.Nodes() {
		assert.True(t, n.Bound())
	}
}

func TestBinderRequiresContainer(t *testing.T) {
	_, err := NewBinder(nil, func(*Node) {})
	require.Error(t, err)
}
