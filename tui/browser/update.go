package browser

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pictorlabs/pictor/pkg/dragdrop"
	"github.com/pictorlabs/pictor/pkg/nav"
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case listingAppliedMsg:
		m.loading = false
		m.err = nil
		m.renderer.Render(msg.listing.Target, msg.listing.Items)
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil

	case listingSupersededMsg:
		// A later navigation owns the view now; nothing to do.
		return m, nil

	case listingErrMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case mutationDoneMsg:
		// Failures already surfaced as notifications; re-render whatever
		// the store holds now.
		m.clampCursor()
		if cur := m.store.Current(); cur != nil {
			m.renderer.Render(cur.Target, cur.Items)
			m.clampCursor()
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

// updateInput handles keys while the text input is collecting a filter, a
// folder name, or a new item name.
func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		mode := m.mode
		m.mode = inputNone
		m.input.Blur()
		m.input.SetValue("")
		if mode == inputFilter {
			m.filter = ""
			m.clampCursor()
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = inputNone
		m.input.Blur()
		m.input.SetValue("")

		switch mode {
		case inputFilter:
			// Filter stays applied after confirming.
			return m, nil
		case inputNewFolder:
			if value == "" {
				return m, nil
			}
			return m, m.newFolderCmd(value)
		case inputRename:
			if value == "" || m.renamePath == "" {
				return m, nil
			}
			path := m.renamePath
			m.renamePath = ""
			return m, m.renameCmd(path, value)
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.mode == inputFilter {
			m.filter = m.input.Value()
			m.cursor = 0
			m.scrollOffset = 0
		}
		return m, cmd
	}
}

// updateKeys handles normal-mode keys.
func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dragging := m.controller.State() != dragdrop.StateIdle

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if dragging {
			m.controller.Cancel()
			return m, nil
		}
		if m.filter != "" {
			m.filter = ""
			m.clampCursor()
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
			m.syncHover()
		}
		m.lastKeyWasG = false

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleNodes())-1 {
			m.cursor++
			m.ensureCursorVisible()
			m.syncHover()
		}
		m.lastKeyWasG = false

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.listHeight() / 2
		m.clampCursor()
		m.ensureCursorVisible()
		m.syncHover()
		m.lastKeyWasG = false

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.listHeight() / 2
		m.clampCursor()
		m.ensureCursorVisible()
		m.syncHover()
		m.lastKeyWasG = false

	case key.Matches(msg, m.keys.Top):
		if m.lastKeyWasG {
			m.cursor = 0
			m.ensureCursorVisible()
			m.syncHover()
			m.lastKeyWasG = false
		} else {
			m.lastKeyWasG = true
		}

	case key.Matches(msg, m.keys.Bottom):
		if n := len(m.visibleNodes()); n > 0 {
			m.cursor = n - 1
			m.ensureCursorVisible()
			m.syncHover()
		}
		m.lastKeyWasG = false

	case key.Matches(msg, m.keys.Open):
		if dragging {
			return m, m.dropAtCursor()
		}
		if node := m.nodeAtCursor(); node != nil && node.IsFolder() {
			m.resetViewState()
			m.loading = true
			return m, m.navigateCmd(nav.PathTarget(node.Path()))
		}

	case key.Matches(msg, m.keys.Back):
		target := m.store.Target()
		if target.IsCategory() {
			m.resetViewState()
			m.loading = true
			return m, m.navigateCmd(nav.Root())
		}
		if !target.IsRoot() {
			m.resetViewState()
			m.loading = true
			return m, m.navigateCmd(target.Parent())
		}

	case key.Matches(msg, m.keys.Home):
		m.resetViewState()
		m.loading = true
		return m, m.navigateCmd(nav.Root())

	case key.Matches(msg, m.keys.Recent):
		return m.gotoCategory(nav.CategoryRecent)
	case key.Matches(msg, m.keys.Favorites):
		return m.gotoCategory(nav.CategoryFavorites)
	case key.Matches(msg, m.keys.Shared):
		return m.gotoCategory(nav.CategoryShared)
	case key.Matches(msg, m.keys.TrashView):
		return m.gotoCategory(nav.CategoryTrash)

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Filter):
		m.mode = inputFilter
		m.input.Placeholder = "filter"
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Grab):
		if node := m.nodeAtCursor(); node != nil {
			node.Fire(dragdrop.EventGrab)
			m.syncHover()
		}

	case key.Matches(msg, m.keys.Drop):
		if dragging {
			return m, m.dropAtCursor()
		}

	case key.Matches(msg, m.keys.NewFolder):
		if !m.store.Target().IsCategory() {
			m.mode = inputNewFolder
			m.input.Placeholder = "folder name"
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Rename):
		if node := m.nodeAtCursor(); node != nil {
			m.mode = inputRename
			m.renamePath = node.Path()
			m.input.Placeholder = "new name"
			m.input.SetValue(node.Name())
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Favorite):
		if node := m.nodeAtCursor(); node != nil && !node.IsFolder() {
			return m, m.favoriteCmd(node.Path())
		}

	case key.Matches(msg, m.keys.Trash):
		if node := m.nodeAtCursor(); node != nil {
			return m, m.trashCmd(node.Path())
		}

	default:
		m.lastKeyWasG = false
	}

	return m, nil
}

// dropAtCursor ends the drag on the node under the cursor. A folder receives
// the item; anything else drops into the folder being viewed.
func (m *Model) dropAtCursor() tea.Cmd {
	node := m.nodeAtCursor()
	if node != nil && !node.IsFolder() {
		node = nil
	}
	return m.dropCmd(node)
}

// syncHover keeps the controller's hover target in step with the cursor so
// the view can highlight the folder a drop would land in.
func (m *Model) syncHover() {
	if m.controller.State() == dragdrop.StateIdle {
		return
	}
	m.controller.HoverEnter(m.nodeAtCursor())
}

func (m *Model) gotoCategory(c nav.Category) (tea.Model, tea.Cmd) {
	m.resetViewState()
	m.loading = true
	return m, m.navigateCmd(nav.CategoryTarget(c))
}

func (m *Model) resetViewState() {
	m.cursor = 0
	m.scrollOffset = 0
	m.filter = ""
	m.lastKeyWasG = false
}
