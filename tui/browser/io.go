package browser

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pictorlabs/pictor/pkg/gallery"
	"github.com/pictorlabs/pictor/pkg/listing"
	"github.com/pictorlabs/pictor/pkg/nav"
)

// listingAppliedMsg is sent when a navigation finished and its listing was
// applied.
type listingAppliedMsg struct {
	listing *listing.Listing
}

// listingSupersededMsg is sent when a navigation was overtaken by a later
// one; its response was discarded.
type listingSupersededMsg struct{}

// listingErrMsg is sent when a fetch failed. The previous listing stays on
// screen.
type listingErrMsg struct {
	err error
}

// mutationDoneMsg is sent after a mutating operation (move, trash, rename,
// folder, favorite) finished, successfully or not. The listing store has
// already been refreshed where appropriate.
type mutationDoneMsg struct {
	err error
}

// navigateCmd fetches a target through the listing store.
func (m *Model) navigateCmd(target nav.Target) tea.Cmd {
	return func() tea.Msg {
		l, err := m.store.Navigate(context.Background(), target)
		if err != nil {
			return listingErrMsg{err: err}
		}
		if l == nil {
			return listingSupersededMsg{}
		}
		return listingAppliedMsg{listing: l}
	}
}

// refreshCmd re-fetches the current target.
func (m *Model) refreshCmd() tea.Cmd {
	return m.navigateCmd(m.store.Target())
}

// dropCmd completes the drag gesture on target (nil drops into the current
// folder). The move service refreshes the listing store itself, so the
// follow-up message only re-renders.
func (m *Model) dropCmd(target *gallery.Node) tea.Cmd {
	return func() tea.Msg {
		err := m.controller.Drop(context.Background(), target)
		return mutationDoneMsg{err: err}
	}
}

// trashCmd moves an item to the trash and refreshes.
func (m *Model) trashCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.client.Trash(ctx, path); err != nil {
			return mutationDoneMsg{err: err}
		}
		_, err := m.store.Refresh(ctx)
		return mutationDoneMsg{err: err}
	}
}

// favoriteCmd toggles an item's favorite flag and refreshes.
func (m *Model) favoriteCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := m.client.ToggleFavorite(ctx, path); err != nil {
			return mutationDoneMsg{err: err}
		}
		_, err := m.store.Refresh(ctx)
		return mutationDoneMsg{err: err}
	}
}

// newFolderCmd creates a folder in the current path and refreshes.
func (m *Model) newFolderCmd(name string) tea.Cmd {
	parent := m.store.Target().Path()
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.client.CreateFolder(ctx, parent, name); err != nil {
			return mutationDoneMsg{err: err}
		}
		_, err := m.store.Refresh(ctx)
		return mutationDoneMsg{err: err}
	}
}

// renameCmd renames an item and refreshes.
func (m *Model) renameCmd(path, newName string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := m.client.Rename(ctx, path, newName); err != nil {
			return mutationDoneMsg{err: err}
		}
		_, err := m.store.Refresh(ctx)
		return mutationDoneMsg{err: err}
	}
}
