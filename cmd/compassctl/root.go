package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lernwerk/compass/internal/version"
	"github.com/lernwerk/compass/pkg/compass"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "compassctl",
	Short: "Score apprenticeships and inspect the compass engine",
	Long: `compassctl runs the compass compatibility engine locally.

It ranks candidate apprenticeships for an applicant, explains the regional
proximity between cantons and checks quiz catalogs before they are deployed.
Weights and tiers come from the built-in tables unless --config points to a
compass YAML configuration.`,
	Version:      version.String(),
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "compass YAML configuration (default: built-in tables)")
}

// newEngine builds an in-memory engine from the --config flag.
func newEngine(cmd *cobra.Command) (engine *compass.Engine, err error) {
	opts := []compass.Option{}
	if configFile != "" {
		opts = append(opts, compass.WithConfigFile(configFile))
	}
	if verbose {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, compass.WithLogger(logger))
	}

	engine, err = compass.New(context.Background(), opts...)
	if err != nil {
		err = errors.Wrap(err, "failed to create engine")
		return engine, err
	}
	return engine, err
}
