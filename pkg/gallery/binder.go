package gallery

import (
	"github.com/sirupsen/logrus"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/logging"
)

// Binder wires interaction handlers onto rendered nodes. It runs after every
// render and may run again at any time; the per-node bound flag makes extra
// passes no-ops, so overlapping triggers never stack duplicate handlers.
type Binder struct {
	container *Container
	bind      func(*Node)
	logger    *logrus.Entry
}

// NewBinder creates a binder that applies bind to each unbound node of
// container. The container must exist before binding starts.
func NewBinder(container *Container, bind func(*Node)) (*Binder, error) {
	if container == nil {
		return nil, errors.BindingTargetMissing("gallery container")
	}
	return &Binder{
		container: container,
		bind:      bind,
		logger:    logging.NewLogger("gallery"),
	}, nil
}

// Attach subscribes the binder to the container's render-complete callbacks
// and performs an initial pass over whatever is already rendered.
func (b *Binder) Attach() {
	b.container.OnRenderComplete(func() { b.BindAll() })
	b.BindAll()
}

// BindAll binds every node that is not bound yet. Idempotent.
func (b *Binder) BindAll() {
	bound := 0
	for _, n := range b.container.Nodes() {
		if n.Bound() {
			continue
		}
		b.bind(n)
		n.MarkBound()
		bound++
	}
	if bound > 0 {
		b.logger.WithField("nodes", bound).Debug("Bound interaction handlers")
	}
}
