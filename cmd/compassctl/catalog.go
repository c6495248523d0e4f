package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lernwerk/compass/internal/config"
	domquiz "github.com/lernwerk/compass/internal/domain/quiz"
	"github.com/lernwerk/compass/internal/domain/quiz/catalog"
)

//nolint:gochecknoglobals // Cobra boilerplate
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with quiz catalogs",
}

//nolint:gochecknoglobals // Cobra boilerplate
var catalogCheckCmd = &cobra.Command{
	Use:   "check [FILE]",
	Short: "Validate a quiz catalog against the quiz rules",
	Long: `Parses a quiz catalog YAML file and checks that every tile phase offers
enough unique tiles for the configured picks per phase.
Without FILE the built-in catalog is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogCheck,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
}

func runCatalogCheck(cmd *cobra.Command, args []string) (err error) {
	rules := domquiz.DefaultRules()
	if configFile != "" {
		var cfg config.Config
		cfg, err = config.LoadFile(configFile)
		if err != nil {
			err = errors.Wrap(err, "failed to load config")
			return err
		}
		var tables config.Engine
		tables, err = cfg.Engine()
		if err != nil {
			err = errors.Wrap(err, "invalid engine configuration")
			return err
		}
		rules = tables.Rules
	}

	source := "built-in catalog"
	c := catalog.Default()
	if len(args) == 1 {
		source = args[0]
		c, err = catalog.Load(args[0])
		if err != nil {
			return err
		}
	}

	err = c.Validate(rules.PicksPerPhase)
	if err != nil {
		err = errors.Wrapf(err, "%s is invalid", source)
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d morning tiles, %d afternoon tiles, %d scenarios, %d picks per phase)\n",
		source, len(c.Morning), len(c.Afternoon), len(c.Scenarios), rules.PicksPerPhase)
	return err
}
