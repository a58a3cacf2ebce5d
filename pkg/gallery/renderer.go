package gallery

import (
	"github.com/sirupsen/logrus"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/logging"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
)

// Renderer rebuilds a container from listings. Rendering is full
// replacement: the previous nodes are discarded wholesale, never patched,
// so a rendered view is always exactly one listing.
type Renderer struct {
	container *Container
	logger    *logrus.Entry
}

// NewRenderer creates a renderer targeting container. A nil container is a
// wiring bug surfaced as an error rather than a later panic.
func NewRenderer(container *Container) (*Renderer, error) {
	if container == nil {
		return nil, errors.BindingTargetMissing("gallery container")
	}
	return &Renderer{
		container: container,
		logger:    logging.NewLogger("gallery"),
	}, nil
}

// Container returns the container this renderer draws into.
func (r *Renderer) Container() *Container {
	return r.container
}

// Render replaces the container's contents with fresh nodes for items,
// preserving listing order. Fresh nodes start unbound; binding re-runs via
// the container's render-complete callbacks.
func (r *Renderer) Render(target nav.Target, items []models.CollectionItem) {
	nodes := make([]*Node, len(items))
	for i, item := range items {
		nodes[i] = NewNode(item)
	}

	r.logger.WithFields(logrus.Fields{
		"target": target.String(),
		"items":  len(items),
	}).Debug("Rendered listing")

	r.container.replace(target, nodes)
}
