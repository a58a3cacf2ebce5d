package browser

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sirupsen/logrus"

	"github.com/pictorlabs/pictor/pkg/api"
	"github.com/pictorlabs/pictor/pkg/dragdrop"
	"github.com/pictorlabs/pictor/pkg/gallery"
	"github.com/pictorlabs/pictor/pkg/listing"
	"github.com/pictorlabs/pictor/pkg/move"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/pkg/notify"
	"github.com/pictorlabs/pictor/tui/theme"
)

// inputMode says what the text input at the bottom is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputFilter
	inputNewFolder
	inputRename
)

// Model is the browser's bubbletea model.
type Model struct {
	client     api.Client
	store      *listing.Store
	notifier   *notify.Center
	moves      *move.Service
	container  *gallery.Container
	renderer   *gallery.Renderer
	controller *dragdrop.Controller
	logger     *logrus.Entry

	keys  KeyMap
	theme *theme.Theme

	start nav.Target

	cursor       int
	scrollOffset int
	width        int
	height       int
	lastKeyWasG  bool

	filter string
	mode   inputMode
	input  textinput.Model

	// renamePath is the item being renamed while mode == inputRename.
	renamePath string

	loading bool
	err     error
}

// visibleNodes returns the rendered nodes that pass the text filter.
func (m *Model) visibleNodes() []*gallery.Node {
	nodes := m.container.Nodes()
	if m.filter == "" {
		return nodes
	}
	filtered := make([]*gallery.Node, 0, len(nodes))
	for _, n := range nodes {
		if containsFold(n.Name(), m.filter) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// nodeAtCursor returns the node under the cursor, or nil when the view is
// empty.
func (m *Model) nodeAtCursor() *gallery.Node {
	nodes := m.visibleNodes()
	if m.cursor < 0 || m.cursor >= len(nodes) {
		return nil
	}
	return nodes[m.cursor]
}

func (m *Model) clampCursor() {
	n := len(m.visibleNodes())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) ensureCursorVisible() {
	available := m.listHeight()
	if available < 1 {
		available = 1
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+available {
		m.scrollOffset = m.cursor - available + 1
	}
}
