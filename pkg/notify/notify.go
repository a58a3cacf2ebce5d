// Package notify manages user-facing notifications. Notifications are
// explicit objects with a lifetime: callers open one and close it when the
// work it describes is finished, so progress indicators never outlive the
// operation they announce.
package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pictorlabs/pictor/logging"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
	SeverityError    Severity = "error"
	SeverityProgress Severity = "progress"
)

// Notification is one active entry in the center.
type Notification struct {
	ID        int64
	Severity  Severity
	Title     string
	Message   string
	CreatedAt time.Time
}

// Handle closes the notification it was returned for. Closing twice is safe.
type Handle interface {
	Close()
}

// Notifier opens notifications. Center is the real implementation; tests
// substitute a recorder.
type Notifier interface {
	Notify(severity Severity, title, message string) Handle
	NotifyTimed(severity Severity, title, message string, dismissAfter time.Duration) Handle
}

// Center holds active notifications and tells subscribers when the set
// changes. It is safe for concurrent use.
type Center struct {
	logger *logrus.Entry

	mu        sync.Mutex
	nextID    int64
	active    []Notification
	listeners []func()
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{logger: logging.NewLogger("notify")}
}

// Notify opens a notification that stays active until its handle is closed.
func (c *Center) Notify(severity Severity, title, message string) Handle {
	return c.open(severity, title, message, 0)
}

// NotifyTimed opens a notification that dismisses itself after dismissAfter,
// or earlier if the handle is closed.
func (c *Center) NotifyTimed(severity Severity, title, message string, dismissAfter time.Duration) Handle {
	return c.open(severity, title, message, dismissAfter)
}

// Active returns a snapshot of the open notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Subscribe registers a callback invoked after every open or close.
func (c *Center) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Center) open(severity Severity, title, message string, dismissAfter time.Duration) Handle {
	c.mu.Lock()
	c.nextID++
	n := Notification{
		ID:        c.nextID,
		Severity:  severity,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	c.active = append(c.active, n)
	listeners := c.snapshotListenersLocked()
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"severity": severity,
		"title":    title,
	}).Debug(message)

	for _, fn := range listeners {
		fn()
	}

	h := &handle{center: c, id: n.ID}
	if dismissAfter > 0 {
		time.AfterFunc(dismissAfter, h.Close)
	}
	return h
}

func (c *Center) close(id int64) {
	c.mu.Lock()
	found := false
	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			found = true
			break
		}
	}
	var listeners []func()
	if found {
		listeners = c.snapshotListenersLocked()
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (c *Center) snapshotListenersLocked() []func() {
	out := make([]func(), len(c.listeners))
	copy(out, c.listeners)
	return out
}

type handle struct {
	center *Center
	id     int64
	once   sync.Once
}

func (h *handle) Close() {
	h.once.Do(func() {
		h.center.close(h.id)
	})
}

var _ Notifier = (*Center)(nil)
