package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/lernwerk/compass/pkg/compass"
)

//nolint:gochecknoglobals // Cobra boilerplate
var regionsLang string

//nolint:gochecknoglobals // Cobra boilerplate
var regionsCmd = &cobra.Command{
	Use:   "regions [CANTON [CANTON]]",
	Short: "List cantons or explain the proximity between two of them",
	Long: `Without arguments, lists every canton with its languages.
With one canton, shows its languages and neighbors.
With two cantons, prints their proximity score.

Examples:
  compassctl regions
  compassctl regions GR --lang de
  compassctl regions ZH GE`,
	Args: cobra.MaximumNArgs(2),
	RunE: runRegions,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(regionsCmd)
	regionsCmd.Flags().StringVar(&regionsLang, "lang", "en", "language used for language names (BCP 47 tag)")
}

func runRegions(cmd *cobra.Command, args []string) (err error) {
	var names display.Namer
	names, err = languageNamer(regionsLang)
	if err != nil {
		return err
	}

	var engine *compass.Engine
	engine, err = newEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	out := cmd.OutOrStdout()
	switch len(args) {
	case 0:
		for _, code := range engine.Regions() {
			if err = printRegion(out, engine, names, code); err != nil {
				return err
			}
		}
	case 1:
		if err = printRegion(out, engine, names, args[0]); err != nil {
			return err
		}
		var neighbors []string
		neighbors, err = engine.Neighbors(args[0])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "  neighbors: %s\n", strings.Join(neighbors, ", "))
	default:
		var p float64
		p, err = engine.Proximity(args[0], args[1])
		if err != nil {
			err = errors.Wrap(err, "proximity failed")
			return err
		}
		_, _ = fmt.Fprintf(out, "%s -> %s: %.2f\n", strings.ToUpper(args[0]), strings.ToUpper(args[1]), p)
	}
	return err
}

func printRegion(out io.Writer, engine *compass.Engine, names display.Namer, code string) (err error) {
	var langs []string
	langs, err = engine.Languages(code)
	if err != nil {
		err = errors.Wrapf(err, "canton %s", code)
		return err
	}
	labels := make([]string, len(langs))
	for i, l := range langs {
		labels[i] = languageName(names, l)
	}
	_, _ = fmt.Fprintf(out, "%-3s %s\n", strings.ToUpper(code), strings.Join(labels, ", "))
	return err
}

// languageNamer returns a namer for language names in the given display language.
func languageNamer(tag string) (namer display.Namer, err error) {
	var t language.Tag
	t, err = language.Parse(tag)
	if err != nil {
		err = errors.Wrapf(err, "invalid --lang %q", tag)
		return namer, err
	}
	namer = display.Languages(t)
	if namer == nil {
		err = errors.Errorf("no language names available for %q", tag)
		return namer, err
	}
	return namer, err
}

func languageName(names display.Namer, code string) string {
	t, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := names.Name(t); name != "" {
		return name
	}
	return code
}
