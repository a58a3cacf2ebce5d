// Package gallery models the rendered collection view: a container of nodes
// rebuilt from each applied listing, with handler slots that interaction
// controllers bind onto after every render.
package gallery

import (
	"github.com/pictorlabs/pictor/pkg/models"
)

// Handler reacts to an interaction event on a node.
type Handler func(n *Node)

// Node is one rendered entry. It carries the item it was rendered from, a
// slot per interaction event, and a bound flag so handler wiring can run
// repeatedly without stacking duplicate handlers.
type Node struct {
	item     models.CollectionItem
	handlers map[string]Handler
	bound    bool
}

// NewNode creates an unbound node for an item.
func NewNode(item models.CollectionItem) *Node {
	return &Node{
		item:     item,
		handlers: make(map[string]Handler),
	}
}

// Item returns the item this node renders.
func (n *Node) Item() models.CollectionItem {
	return n.item
}

// Path returns the item's collection path.
func (n *Node) Path() string {
	return n.item.Path
}

// Name returns the item's display name.
func (n *Node) Name() string {
	return n.item.Name
}

// IsFolder reports whether the node renders a folder.
func (n *Node) IsFolder() bool {
	return n.item.Kind == models.KindFolder
}

// OwnerID returns the sharing owner, empty for the user's own items.
func (n *Node) OwnerID() string {
	return n.item.OwnerID
}

// On sets the handler for an event, replacing any previous one. A node holds
// at most one handler per event.
func (n *Node) On(event string, h Handler) {
	n.handlers[event] = h
}

// Fire invokes the handler for an event. Returns false when no handler is
// bound, so callers can tell an ignored event from a handled one.
func (n *Node) Fire(event string) bool {
	h, ok := n.handlers[event]
	if !ok {
		return false
	}
	h(n)
	return true
}

// Bound reports whether interaction handlers have been wired to this node.
func (n *Node) Bound() bool {
	return n.bound
}

// MarkBound records that handler wiring ran for this node.
func (n *Node) MarkBound() {
	n.bound = true
}
