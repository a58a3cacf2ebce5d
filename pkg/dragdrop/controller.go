// Package dragdrop implements the pick-up/drop gesture for reorganizing
// collections. A controller tracks exactly one drag at a time, validates the
// drop before anything reaches the backend, and always returns to idle when
// the gesture ends, no matter how it ended.
package dragdrop

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/logging"
	"github.com/pictorlabs/pictor/pkg/gallery"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/move"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/pkg/notify"
)

const rejectDismiss = 4 * time.Second

// State is the controller's gesture phase.
type State int

const (
	// StateIdle means no drag is in progress.
	StateIdle State = iota

	// StateDragging means an item has been picked up.
	StateDragging

	// StateHovering means the dragged item is over a candidate drop target.
	StateHovering
)

// DragContext describes the item being dragged. It exists from pick-up to
// gesture end and never outlives the gesture.
type DragContext struct {
	SourcePath string
	SourceName string
	SourceKind models.Kind
}

// Controller runs the drag state machine over a gallery container.
type Controller struct {
	container *gallery.Container
	moves     *move.Service
	notifier  notify.Notifier
	logger    *logrus.Entry

	mu    sync.Mutex
	state State
	drag  *DragContext
	hover *gallery.Node
}

// NewController creates a controller for container. The container must exist
// before gestures can be wired to it.
func NewController(container *gallery.Container, moves *move.Service, notifier notify.Notifier) (*Controller, error) {
	if container == nil {
		return nil, errors.BindingTargetMissing("gallery container")
	}
	return &Controller{
		container: container,
		moves:     moves,
		notifier:  notifier,
		logger:    logging.NewLogger("dragdrop"),
	}, nil
}

// State returns the current gesture phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Context returns a copy of the active drag context, or nil when idle.
func (c *Controller) Context() *DragContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drag == nil {
		return nil
	}
	ctx := *c.drag
	return &ctx
}

// HoverTarget returns the node currently hovered as a drop candidate, or nil.
func (c *Controller) HoverTarget() *gallery.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hover
}

// Start picks up a node. Starting while a drag is active replaces it; the
// previous gesture is abandoned the way a new mousedown abandons a stale one.
func (c *Controller) Start(n *gallery.Node) {
	if n == nil {
		return
	}
	item := n.Item()

	c.mu.Lock()
	c.state = StateDragging
	c.drag = &DragContext{
		SourcePath: item.Path,
		SourceName: item.Name,
		SourceKind: item.Kind,
	}
	c.hover = nil
	c.mu.Unlock()

	c.logger.WithField("source", item.Path).Debug("Drag started")
}

// HoverEnter marks a node as the drop candidate. Only folders accept drops,
// so hovering anything else leaves the candidate empty. Ignored when idle.
func (c *Controller) HoverEnter(n *gallery.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle {
		return
	}
	if n != nil && n.IsFolder() {
		c.hover = n
		c.state = StateHovering
		return
	}
	c.hover = nil
	c.state = StateDragging
}

// HoverLeave clears the drop candidate. Ignored when idle.
func (c *Controller) HoverLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle {
		return
	}
	c.hover = nil
	c.state = StateDragging
}

// Cancel abandons the gesture without moving anything.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle {
		return
	}
	c.logger.WithField("source", c.drag.SourcePath).Debug("Drag cancelled")
	c.reset()
}

// Drop ends the gesture on a target. A folder node receives the item; any
// other node, or a nil target, drops into the container's current folder.
// The gesture always ends here: validation rejections and backend failures
// clear the drag context just like a success does.
func (c *Controller) Drop(ctx context.Context, target *gallery.Node) error {
	c.mu.Lock()
	if c.state == StateIdle || c.drag == nil {
		c.mu.Unlock()
		return nil
	}
	drag := *c.drag
	c.reset()
	c.mu.Unlock()

	targetPath, err := c.resolveDropTarget(target)
	if err == nil {
		err = validate(drag, targetPath)
	}
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"source": drag.SourcePath,
		}).WithError(err).Debug("Drop rejected")
		if c.notifier != nil {
			c.notifier.NotifyTimed(notify.SeverityError, "Cannot move", errors.GetMessage(err), rejectDismiss)
		}
		return err
	}

	return c.moves.Move(ctx, models.MoveRequest{
		SourcePath: drag.SourcePath,
		TargetPath: targetPath,
	})
}

// resolveDropTarget maps a drop location to a destination folder path.
func (c *Controller) resolveDropTarget(target *gallery.Node) (string, error) {
	if target != nil && target.IsFolder() {
		return target.Path(), nil
	}
	containerTarget := c.container.Target()
	if containerTarget.IsCategory() {
		return "", errors.MoveRejected("cannot move items within " + containerTarget.Category().Label())
	}
	return containerTarget.Path(), nil
}

// validate rejects drops that cannot possibly succeed, before any request is
// issued. Order matters: the no-op check runs first so dropping an item back
// where it came from reads as "already here" rather than a containment error.
func validate(drag DragContext, targetPath string) error {
	if nav.ParentPath(drag.SourcePath) == targetPath {
		return errors.MoveRejected("item is already in this folder")
	}
	if drag.SourceKind == models.KindFolder && nav.IsSelfOrDescendant(targetPath, drag.SourcePath) {
		return errors.MoveRejected("cannot move a folder into itself")
	}
	return nil
}

// reset returns the controller to idle. Callers hold the lock.
func (c *Controller) reset() {
	c.state = StateIdle
	c.drag = nil
	c.hover = nil
}
