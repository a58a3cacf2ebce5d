package dragdrop

import (
	"context"

	"github.com/pictorlabs/pictor/pkg/gallery"
)

// Gesture events bound onto gallery nodes.
const (
	EventGrab       = "drag:grab"
	EventHoverEnter = "drag:hover-enter"
	EventHoverLeave = "drag:hover-leave"
	EventDrop       = "drag:drop"
)

// BindNode wires the drag gesture handlers onto one node. Errors from the
// move itself surface through notifications, so the drop handler does not
// propagate them.
func (c *Controller) BindNode(n *gallery.Node) {
	n.On(EventGrab, func(n *gallery.Node) { c.Start(n) })
	n.On(EventHoverEnter, func(n *gallery.Node) { c.HoverEnter(n) })
	n.On(EventHoverLeave, func(*gallery.Node) { c.HoverLeave() })
	n.On(EventDrop, func(n *gallery.Node) {
		_ = c.Drop(context.Background(), n)
	})
}

// AttachBinder creates a binder that keeps gesture handlers wired across
// renders and attaches it to the controller's container.
func (c *Controller) AttachBinder() (*gallery.Binder, error) {
	b, err := gallery.NewBinder(c.container, c.BindNode)
	if err != nil {
		return nil, err
	}
	b.Attach()
	return b, nil
}
