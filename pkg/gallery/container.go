package gallery

import (
	"sync"

	"github.com/pictorlabs/pictor/pkg/nav"
)

// Container is the view root the gallery renders into. It remembers which
// target its nodes were rendered from, so drops onto the container body
// resolve against the listing the user is actually looking at.
type Container struct {
	name string

	mu        sync.Mutex
	target    nav.Target
	nodes     []*Node
	listeners []func()
}

// NewContainer creates an empty container.
func NewContainer(name string) *Container {
	return &Container{name: name, target: nav.Root()}
}

// Name identifies the container for diagnostics.
func (c *Container) Name() string {
	return c.name
}

// Target returns the navigation target of the currently rendered listing.
func (c *Container) Target() nav.Target {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Nodes returns the rendered nodes in listing order.
func (c *Container) Nodes() []*Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Len returns the number of rendered nodes.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.nodes)
}

// NodeAt returns the node at listing position i, or nil out of range.
func (c *Container) NodeAt(i int) *Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.nodes) {
		return nil
	}
	return c.nodes[i]
}

// FindByPath returns the node rendering the item at path, or nil.
func (c *Container) FindByPath(path string) *Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.nodes {
		if n.Path() == path {
			return n
		}
	}
	return nil
}

// OnRenderComplete registers a callback invoked after every render, once the
// new nodes are in place. This is the hook interaction binding runs from.
func (c *Container) OnRenderComplete(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// replace swaps in a freshly rendered node set and fires the render-complete
// callbacks.
func (c *Container) replace(target nav.Target, nodes []*Node) {
	c.mu.Lock()
	c.target = target
	c.nodes = nodes
	listeners := make([]func(), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
