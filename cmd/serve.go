package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pictorlabs/pictor/cli"
	"github.com/pictorlabs/pictor/internal/server"
	"github.com/pictorlabs/pictor/logging"
	"github.com/pictorlabs/pictor/pkg/storage"
)

// NewServeCmd creates the `serve` command
func NewServeCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"serve",
		"Serve collections over HTTP",
	)
	cmd.Long = `Serve the local collection tree over the HTTP API that remote pictor
clients consume. Runs in the foreground until interrupted.`

	cmd.Flags().String("addr", ":8484", "Address to listen on")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := logging.NewLogger("serve")
		handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return handler.Handle(err)
		}

		root := cfg.Collections.Root
		if root == "" {
			root, err = os.Getwd()
			if err != nil {
				return err
			}
		}

		store, err := storage.New(root)
		if err != nil {
			return handler.Handle(err)
		}

		addr, _ := cmd.Flags().GetString("addr")
		srv := server.New(store)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-stop
			logger.Info("Received stop signal")
			cancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Errorf("Shutdown failed: %v", err)
			}
		}()

		logger.WithField("addr", addr).WithField("root", root).Info("Serving collections")
		return srv.ListenAndServe(ctx, addr)
	}

	return cmd
}
