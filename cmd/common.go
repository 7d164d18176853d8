// Package cmd holds the offline subcommands. They run against the log
// directory directly and do not need the HTTP server.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/smazurov/openlogger/internal/config"
	"github.com/smazurov/openlogger/internal/logs"
)

// localFlags are shared by every offline subcommand.
type localFlags struct {
	configFile string
	directory  string
}

func (f *localFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "config.toml", "Path to configuration file")
	cmd.Flags().StringVarP(&f.directory, "log-directory", "d", "", "Override logger.directory")
}

// service builds a log service from the config file, env and flags.
func (f *localFlags) service() (*logs.ServiceImpl, error) {
	l, err := config.LoadLogger(f.configFile)
	if err != nil {
		return nil, err
	}
	if f.directory != "" {
		l.Directory = f.directory
	}
	opts, err := l.Options()
	if err != nil {
		return nil, err
	}
	return logs.NewService(logs.ServiceOptions{Options: opts}), nil
}
