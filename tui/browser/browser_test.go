package browser

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pictorlabs/pictor/pkg/api"
	"github.com/pictorlabs/pictor/pkg/dragdrop"
	"github.com/pictorlabs/pictor/pkg/nav"
)

func newTestBrowser(t *testing.T) *Model {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "albums"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sunset.jpg"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "beach.png"), []byte("x"), 0644))

	client, err := api.NewLocalClient(root)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	m, err := New(client, nav.Root())
	require.NoError(t, err)

	// Run the initial navigation synchronously.
	msg := m.Init()()
	m.Update(msg)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// press sends a key and runs any command it produced.
func press(t *testing.T, m *Model, k string) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	if cmd != nil {
		m.Update(cmd())
	}
}

func TestBrowserInitialListing(t *testing.T) {
	m := newTestBrowser(t)

	nodes := m.container.Nodes()
	require.Len(t, nodes, 3)
	// Folders render first.
	assert.Equal(t, "albums", nodes[0].Name())
	assert.True(t, nodes[0].IsFolder())
}

func TestBrowserOpenFolderAndBack(t *testing.T) {
	m := newTestBrowser(t)

	press(t, m, "enter") // cursor starts on "albums"
	assert.Equal(t, nav.PathTarget("albums"), m.store.Target())
	assert.Equal(t, 0, m.container.Len())

	press(t, m, "backspace")
	assert.Equal(t, nav.Root(), m.store.Target())
	assert.Equal(t, 3, m.container.Len())
}

func TestBrowserGrabAndDrop(t *testing.T) {
	m := newTestBrowser(t)

	// Move cursor to "beach.png" (row 1) and pick it up.
	press(t, m, "j")
	press(t, m, "m")
	require.Equal(t, dragdrop.StateDragging, m.controller.State())
	require.NotNil(t, m.controller.Context())
	assert.Equal(t, "beach.png", m.controller.Context().SourcePath)

	// Move up to the folder and drop onto it.
	press(t, m, "k")
	assert.Equal(t, dragdrop.StateHovering, m.controller.State())
	press(t, m, "p")

	assert.Equal(t, dragdrop.StateIdle, m.controller.State())
	assert.Nil(t, m.container.FindByPath("beach.png"))

	// The item landed in the folder.
	press(t, m, "enter")
	require.Equal(t, 1, m.container.Len())
	assert.Equal(t, "albums/beach.png", m.container.NodeAt(0).Path())
}

func TestBrowserCancelDrag(t *testing.T) {
	m := newTestBrowser(t)

	press(t, m, "j")
	press(t, m, "m")
	require.Equal(t, dragdrop.StateDragging, m.controller.State())

	press(t, m, "esc")
	assert.Equal(t, dragdrop.StateIdle, m.controller.State())
	assert.Nil(t, m.controller.Context())
	// Nothing moved.
	assert.Equal(t, 3, m.container.Len())
}

func TestBrowserDropInPlaceRejected(t *testing.T) {
	m := newTestBrowser(t)

	press(t, m, "j")
	press(t, m, "m")
	// Drop right back into the current folder: rejected, gesture over.
	press(t, m, "p")

	assert.Equal(t, dragdrop.StateIdle, m.controller.State())
	assert.Equal(t, 3, m.container.Len())
}

func TestBrowserFilter(t *testing.T) {
	m := newTestBrowser(t)

	press(t, m, "/")
	press(t, m, "b")
	press(t, m, "e")
	require.Len(t, m.visibleNodes(), 1)
	assert.Equal(t, "beach.png", m.visibleNodes()[0].Name())

	press(t, m, "esc")
	assert.Len(t, m.visibleNodes(), 3)
}

func TestBrowserNewFolder(t *testing.T) {
	m := newTestBrowser(t)

	press(t, m, "n")
	for _, r := range "trips" {
		press(t, m, string(r))
	}
	press(t, m, "enter")

	require.NotNil(t, m.container.FindByPath("trips"))
}

func TestBrowserCategoryView(t *testing.T) {
	m := newTestBrowser(t)

	press(t, m, "1")
	assert.Equal(t, nav.CategoryTarget(nav.CategoryRecent), m.store.Target())
	assert.Equal(t, 2, m.container.Len())

	// View renders without panicking in category mode.
	assert.NotEmpty(t, m.View())
}

func TestBrowserViewRenders(t *testing.T) {
	m := newTestBrowser(t)

	view := m.View()
	assert.Contains(t, view, "Home")
	assert.Contains(t, view, "albums")

	press(t, m, "j")
	press(t, m, "m")
	view = m.View()
	assert.Contains(t, view, "Moving")
}
