package api

import (
	"os"
	"time"

	"github.com/pictorlabs/pictor/config"
	"github.com/pictorlabs/pictor/logging"
)

// New returns a Client for the given configuration. If a server URL is
// configured and the server responds, the remote client is used; otherwise
// the client falls back to operating on the local collection tree.
//
// This implements the transparent backend pattern: callers don't need to
// know whether a server is running. The same API works in both modes.
func New(cfg *config.Config) (Client, error) {
	logger := logging.NewLogger("api")

	if cfg != nil && cfg.Server.URL != "" {
		timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
		remote := NewRemoteClient(cfg.Server.URL, timeout)
		if remote.IsAvailable() {
			logger.WithField("url", cfg.Server.URL).Debug("Using remote collections backend")
			return remote, nil
		}
		remote.Close()
		logger.WithField("url", cfg.Server.URL).Warn("Server not reachable, falling back to local collections")
	}

	root := ""
	if cfg != nil {
		root = cfg.Collections.Root
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = cwd
	}

	logger.WithField("root", root).Debug("Using local collections backend")
	return NewLocalClient(root)
}
