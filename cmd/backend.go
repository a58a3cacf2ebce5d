// Package cmd implements the pictor subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pictorlabs/pictor/cli"
	"github.com/pictorlabs/pictor/config"
	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/pkg/api"
)

// loadConfig resolves and loads pictor.yml for a command. A missing config
// file yields the zero config, which means local mode over the current
// directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := cli.GetOptions(cmd)

	path, err := cli.InitConfig(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &config.Config{}, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, errors.ErrCodeConfigNotFound) {
			return &config.Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// newClient loads configuration and builds the backend client, remote when a
// reachable server is configured and local otherwise.
func newClient(cmd *cobra.Command) (api.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return api.New(cfg)
}
