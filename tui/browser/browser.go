// Package browser implements the interactive collections browser TUI. It
// wires the listing store, gallery renderer, and drag controller into a
// bubbletea model.
package browser

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pictorlabs/pictor/logging"
	"github.com/pictorlabs/pictor/pkg/api"
	"github.com/pictorlabs/pictor/pkg/dragdrop"
	"github.com/pictorlabs/pictor/pkg/gallery"
	"github.com/pictorlabs/pictor/pkg/listing"
	"github.com/pictorlabs/pictor/pkg/move"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/pkg/notify"
	"github.com/pictorlabs/pictor/tui/theme"
)

// New assembles a browser over the given backend client, starting at target.
func New(client api.Client, start nav.Target) (*Model, error) {
	store := listing.NewStore(client)
	notifier := notify.NewCenter()
	moves := move.NewService(client, store, notifier)

	container := gallery.NewContainer("gallery")
	renderer, err := gallery.NewRenderer(container)
	if err != nil {
		return nil, err
	}

	controller, err := dragdrop.NewController(container, moves, notifier)
	if err != nil {
		return nil, err
	}
	if _, err := controller.AttachBinder(); err != nil {
		return nil, err
	}

	input := textinput.New()
	input.CharLimit = 128

	m := &Model{
		client:     client,
		store:      store,
		notifier:   notifier,
		moves:      moves,
		container:  container,
		renderer:   renderer,
		controller: controller,
		keys:       DefaultKeyMap,
		theme:      theme.NewTheme(),
		input:      input,
		start:      start,
		logger:     logging.NewLogger("browser"),
	}
	return m, nil
}

// Init kicks off the first navigation.
func (m *Model) Init() tea.Cmd {
	return m.navigateCmd(m.start)
}
