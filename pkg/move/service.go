// Package move performs item relocations and keeps the user informed while
// they run.
package move

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pictorlabs/pictor/logging"
	"github.com/pictorlabs/pictor/pkg/api"
	"github.com/pictorlabs/pictor/pkg/listing"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
	"github.com/pictorlabs/pictor/pkg/notify"
)

const (
	successDismiss = 3 * time.Second
	errorDismiss   = 6 * time.Second
)

// Service executes move requests against the backend. Every move opens a
// progress notification before the request and closes it when the request
// finishes, on success and failure alike, so a stuck indicator always means
// a stuck request.
type Service struct {
	client   api.Client
	store    *listing.Store
	notifier notify.Notifier
	logger   *logrus.Entry
}

// NewService creates a move service. store may be nil for callers that do
// not hold a listing (the mv subcommand).
func NewService(client api.Client, store *listing.Store, notifier notify.Notifier) *Service {
	return &Service{
		client:   client,
		store:    store,
		notifier: notifier,
		logger:   logging.NewLogger("move"),
	}
}

// Move relocates an item into a target folder. The listing is never patched
// locally: on success the current target is re-fetched so the view shows the
// backend's state, on failure it is left exactly as it was.
func (s *Service) Move(ctx context.Context, req models.MoveRequest) error {
	source := nav.LeafName(req.SourcePath)
	dest := targetLabel(req.TargetPath)

	progress := s.notifier.Notify(notify.SeverityProgress, "Moving",
		fmt.Sprintf("Moving %s to %s", source, dest))

	err := s.client.Move(ctx, req)
	progress.Close()

	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"source": req.SourcePath,
			"target": req.TargetPath,
		}).WithError(err).Warn("Move failed")
		s.notifier.NotifyTimed(notify.SeverityError, "Move failed", err.Error(), errorDismiss)
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"source": req.SourcePath,
		"target": req.TargetPath,
	}).Info("Moved item")
	s.notifier.NotifyTimed(notify.SeveritySuccess, "Moved",
		fmt.Sprintf("Moved %s to %s", source, dest), successDismiss)

	if s.store != nil {
		if _, err := s.store.Refresh(ctx); err != nil {
			// The move itself succeeded; a failed refresh only means the
			// view is momentarily stale.
			s.logger.WithError(err).Warn("Failed to refresh listing after move")
		}
	}
	return nil
}

func targetLabel(targetPath string) string {
	if targetPath == "" {
		return "Home"
	}
	return nav.LeafName(targetPath)
}
