// Package catalog loads quiz content from YAML.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lernwerk/compass/internal/domain/quiz"
)

//go:embed default.yaml
var defaultYAML []byte

type fileDTO struct {
	Morning   []tileDTO     `yaml:"morning"`
	Afternoon []tileDTO     `yaml:"afternoon"`
	Scenarios []scenarioDTO `yaml:"scenarios"`
}

type tileDTO struct {
	ID      string             `yaml:"id"`
	Label   string             `yaml:"label"`
	Weights map[string]float64 `yaml:"weights"`
}

type optionDTO struct {
	Label   string             `yaml:"label"`
	Weights map[string]float64 `yaml:"weights"`
}

type scenarioDTO struct {
	ID      string      `yaml:"id"`
	Prompt  string      `yaml:"prompt"`
	Options []optionDTO `yaml:"options"`
}

// Parse decodes a YAML catalog. Pool sizes are checked against the pick
// count when a session is created, not here.
func Parse(data []byte) (*quiz.Catalog, error) {
	var f fileDTO
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &quiz.Catalog{}
	var err error
	if c.Morning, err = tiles(f.Morning); err != nil {
		return nil, fmt.Errorf("morning: %w", err)
	}
	if c.Afternoon, err = tiles(f.Afternoon); err != nil {
		return nil, fmt.Errorf("afternoon: %w", err)
	}
	for i, s := range f.Scenarios {
		if len(s.Options) != quiz.OptionsPerScenario {
			return nil, fmt.Errorf("scenario %d (%s): need %d options, got %d",
				i, s.ID, quiz.OptionsPerScenario, len(s.Options))
		}
		sc := quiz.Scenario{ID: s.ID, Prompt: s.Prompt}
		for j, o := range s.Options {
			w, err := quiz.ParseWeights(o.Weights)
			if err != nil {
				return nil, fmt.Errorf("scenario %s option %d: %w", s.ID, j, err)
			}
			sc.Options[j] = quiz.Option{Label: o.Label, Weights: w}
		}
		c.Scenarios = append(c.Scenarios, sc)
	}
	return c, nil
}

func tiles(in []tileDTO) ([]quiz.Tile, error) {
	out := make([]quiz.Tile, 0, len(in))
	for _, t := range in {
		w, err := quiz.ParseWeights(t.Weights)
		if err != nil {
			return nil, fmt.Errorf("tile %s: %w", t.ID, err)
		}
		out = append(out, quiz.Tile{ID: t.ID, Label: t.Label, Weights: w})
	}
	return out, nil
}

// Load reads a catalog file.
func Load(path string) (*quiz.Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *quiz.Catalog
)

// Default returns the built-in catalog: 12 tiles per tile phase and
// 6 scenarios. The returned value is shared and must not be modified.
func Default() *quiz.Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultYAML)
		if err != nil {
			panic(fmt.Sprintf("built-in quiz catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
