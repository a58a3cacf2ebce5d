package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pictorlabs/pictor/pkg/gallery"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/pkg/notify"
)

const (
	headerHeight = 3
	footerHeight = 3
	topMargin    = 1
)

// listHeight returns the number of item rows the main box can show.
func (m *Model) listHeight() int {
	h := m.height - headerHeight - footerHeight - topMargin - 4
	if h < 1 {
		return 1
	}
	return h
}

// View renders the browser layout: breadcrumb header, gallery, and a footer
// carrying notifications or key hints.
func (m *Model) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small. Please resize."
	}

	mainAreaHeight := m.height - headerHeight - footerHeight - topMargin

	headerStyle := m.theme.Box.
		BorderForeground(m.theme.Colors.Orange).
		Width(m.width - 4).
		Height(headerHeight - 2)

	mainStyle := m.theme.Box.
		Width(m.width - 4).
		Height(mainAreaHeight - 2)

	footerStyle := m.theme.Box.
		BorderForeground(m.theme.Colors.Orange).
		Width(m.width - 4).
		Height(footerHeight - 2)

	header := headerStyle.Render(m.breadcrumbView())
	main := mainStyle.Render(m.galleryView())
	footer := footerStyle.Render(m.footerView())

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, header, main, footer)
}

// breadcrumbView renders the trail for the intended target, so it follows
// the user's latest navigation even while the fetch is in flight.
func (m *Model) breadcrumbView() string {
	target := m.store.Target()
	crumbs := nav.BreadcrumbFor(target)

	parts := make([]string, 0, len(crumbs))
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			parts = append(parts, m.theme.CrumbActive.Render(c.Label))
		} else {
			parts = append(parts, m.theme.Crumb.Render(c.Label))
		}
	}
	line := strings.Join(parts, m.theme.Crumb.Render(" > "))

	cur := m.store.Current()
	if m.loading && (cur == nil || cur.Target != target) {
		line += m.theme.Muted.Render("  loading…")
	}
	return line
}

// galleryView renders the visible slice of nodes with cursor, drag, and
// favorite markers.
func (m *Model) galleryView() string {
	nodes := m.visibleNodes()
	if m.err != nil {
		return m.theme.Error.Render("Could not load listing") + "\n" +
			m.theme.Muted.Render(m.err.Error())
	}
	if len(nodes) == 0 {
		if m.filter != "" {
			return m.theme.Muted.Render("No items match the filter.")
		}
		return m.theme.Muted.Render("This folder is empty.")
	}

	available := m.listHeight()
	start := m.scrollOffset
	if start >= len(nodes) {
		start = 0
	}
	end := start + available
	if end > len(nodes) {
		end = len(nodes)
	}

	drag := m.controller.Context()
	hover := m.controller.HoverTarget()

	var b strings.Builder
	for i, node := range nodes[start:end] {
		idx := start + i
		b.WriteString(m.renderRow(node, idx == m.cursor, drag != nil && drag.SourcePath == node.Path(), hover == node))
		b.WriteString("\n")
	}

	if len(nodes) > available {
		b.WriteString(m.theme.Muted.Render(
			fmt.Sprintf("Showing %d-%d of %d items", start+1, end, len(nodes))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderRow(node *gallery.Node, selected, dragged, hovered bool) string {
	item := node.Item()

	marker := "  "
	if selected {
		marker = m.theme.Cursor.Render("> ")
	}

	icon := "·"
	style := m.theme.Normal
	switch {
	case node.IsFolder():
		icon = "▸"
		style = m.theme.Folder
	case item.IsImage:
		icon = "◩"
		style = m.theme.Image
	}

	name := item.Name
	if item.SharedBy != "" {
		name += m.theme.Muted.Render(" (from " + item.SharedBy + ")")
	}

	var badges []string
	if item.IsFavorite {
		badges = append(badges, m.theme.Favorite.Render("★"))
	}
	if dragged {
		badges = append(badges, m.theme.Dragging.Render("◂ moving"))
	}
	if hovered {
		style = m.theme.DropTarget
		badges = append(badges, m.theme.DropTarget.Render("▾ drop here"))
	}

	row := marker + icon + " " + style.Render(name)
	if len(badges) > 0 {
		row += " " + strings.Join(badges, " ")
	}
	if selected {
		return m.theme.Selected.Render(row)
	}
	return row
}

// footerView shows, in priority order: the text input, active notifications,
// the drag status, then key hints.
func (m *Model) footerView() string {
	if m.mode != inputNone {
		label := map[inputMode]string{
			inputFilter:    "Filter",
			inputNewFolder: "New folder",
			inputRename:    "Rename",
		}[m.mode]
		return label + ": " + m.input.View()
	}

	if active := m.notifier.Active(); len(active) > 0 {
		n := active[len(active)-1]
		style := m.theme.Info
		switch n.Severity {
		case notify.SeveritySuccess:
			style = m.theme.Success
		case notify.SeverityError:
			style = m.theme.Error
		case notify.SeverityProgress:
			style = m.theme.Progress
		}
		text := n.Title
		if n.Message != "" {
			text += ": " + n.Message
		}
		return style.Render(text)
	}

	if drag := m.controller.Context(); drag != nil {
		return m.theme.Dragging.Render(
			fmt.Sprintf("Moving %s", drag.SourceName)) +
			m.theme.Muted.Render("  enter/p drop · esc cancel")
	}

	if m.filter != "" {
		return fmt.Sprintf("Filter: %s", m.filter)
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	return m.theme.Muted.Render(strings.Join(hints, " · "))
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
