// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/manojkumarbalamurugan16/task/internal/config"
)

const defaultConfigPath = "./etc/"

var (
	configPath string // directory holding main.toml
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "multibox",
		Short: "MultiBox serves named groups of selectable text inputs",
		Long: `MultiBox is a JSON API for named groups that own an ordered list of
selectable text inputs, with soft deletion and a bulk save that reconciles
the stored inputs of a group with the posted list.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath,
		"directory of main.toml, "+config.EnvConfigJSON+" overrides single values as JSON")
}

// readConfig loads the configuration for commands that need it.
func readConfig(_ *cobra.Command, _ []string) error {
	var err error

	cfg, err = config.ReadConfig(configPath)

	return err
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
