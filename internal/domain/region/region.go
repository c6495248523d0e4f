// Package region models geographic closeness between regions as a static
// adjacency graph annotated with language membership.
package region

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lernwerk/compass/internal/domain"
)

// Code is a region identifier (a Swiss canton code in the built-in graph).
type Code string

// Language is a language-region tag.
type Language string

// Language regions of the built-in graph.
const (
	German  Language = "de"
	French  Language = "fr"
	Italian Language = "it"
	Romansh Language = "rm"
)

// Tiers holds the proximity value for each relationship class.
type Tiers struct {
	Same             float64
	AdjacentLanguage float64
	SharedLanguage   float64
	Adjacent         float64
	Distant          float64
}

// DefaultTiers returns the standard tier values.
func DefaultTiers() Tiers {
	return Tiers{
		Same:             1.00,
		AdjacentLanguage: 0.75,
		SharedLanguage:   0.50,
		Adjacent:         0.35,
		Distant:          0.10,
	}
}

// Validate checks every tier lies in [0,1].
func (t Tiers) Validate() error {
	for name, v := range map[string]float64{
		"same": t.Same, "adjacent_language": t.AdjacentLanguage,
		"shared_language": t.SharedLanguage, "adjacent": t.Adjacent, "distant": t.Distant,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("proximity tier %s must be between 0 and 1, got %v", name, v)
		}
	}
	return nil
}

// Secondary-site blend weights for Combined.
const (
	PrimaryShare   = 0.6
	SecondaryShare = 0.4
)

// Graph is an immutable region graph. Safe for concurrent use.
type Graph struct {
	adjacent  map[Code]map[Code]struct{}
	languages map[Code]map[Language]struct{}
	tiers     Tiers
}

// Edge is an undirected adjacency between two regions.
type Edge struct {
	A, B Code
}

// NewGraph builds a graph from a language-membership table and an edge list.
// Edges are inserted in both directions so proximity is symmetric.
// Every edge endpoint must appear in the membership table.
func NewGraph(membership map[Code][]Language, edges []Edge, tiers Tiers) (*Graph, error) {
	if err := tiers.Validate(); err != nil {
		return nil, err
	}
	g := &Graph{
		adjacent:  make(map[Code]map[Code]struct{}, len(membership)),
		languages: make(map[Code]map[Language]struct{}, len(membership)),
		tiers:     tiers,
	}
	for code, langs := range membership {
		if code == "" {
			return nil, fmt.Errorf("empty region code")
		}
		set := make(map[Language]struct{}, len(langs))
		for _, l := range langs {
			set[l] = struct{}{}
		}
		g.languages[code] = set
		g.adjacent[code] = make(map[Code]struct{})
	}
	for _, e := range edges {
		if _, ok := g.languages[e.A]; !ok {
			return nil, fmt.Errorf("edge %s-%s: %w %q", e.A, e.B, domain.ErrUnknownRegion, e.A)
		}
		if _, ok := g.languages[e.B]; !ok {
			return nil, fmt.Errorf("edge %s-%s: %w %q", e.A, e.B, domain.ErrUnknownRegion, e.B)
		}
		if e.A == e.B {
			continue
		}
		g.adjacent[e.A][e.B] = struct{}{}
		g.adjacent[e.B][e.A] = struct{}{}
	}
	return g, nil
}

// Normalize upper-cases and trims a raw region code.
func Normalize(raw string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(raw)))
}

// Has reports whether the code is a vertex of the graph.
func (g *Graph) Has(c Code) bool {
	_, ok := g.languages[c]
	return ok
}

// Validate returns ErrUnknownRegion when the code is not in the graph.
func (g *Graph) Validate(c Code) error {
	if !g.Has(c) {
		return fmt.Errorf("%w %q", domain.ErrUnknownRegion, c)
	}
	return nil
}

// Codes returns all region codes in sorted order.
func (g *Graph) Codes() []Code {
	out := make([]Code, 0, len(g.languages))
	for c := range g.languages {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Adjacent reports whether two regions share a border.
func (g *Graph) Adjacent(a, b Code) bool {
	_, ok := g.adjacent[a][b]
	return ok
}

// Neighbors returns the sorted neighbors of a region.
func (g *Graph) Neighbors(c Code) []Code {
	out := make([]Code, 0, len(g.adjacent[c]))
	for n := range g.adjacent[c] {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Languages returns the sorted language tags of a region.
func (g *Graph) Languages(c Code) []Language {
	out := make([]Language, 0, len(g.languages[c]))
	for l := range g.languages[c] {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SharesLanguage reports whether two regions have a language in common.
func (g *Graph) SharesLanguage(a, b Code) bool {
	for l := range g.languages[a] {
		if _, ok := g.languages[b][l]; ok {
			return true
		}
	}
	return false
}

// Speaks reports whether a region belongs to the given language group.
func (g *Graph) Speaks(c Code, l Language) bool {
	_, ok := g.languages[c][l]
	return ok
}

// Proximity returns the proximity tier between two regions.
func (g *Graph) Proximity(a, b Code) (float64, error) {
	if err := g.Validate(a); err != nil {
		return 0, err
	}
	if err := g.Validate(b); err != nil {
		return 0, err
	}
	if a == b {
		return g.tiers.Same, nil
	}
	adjacent := g.Adjacent(a, b)
	shared := g.SharesLanguage(a, b)
	switch {
	case adjacent && shared:
		return g.tiers.AdjacentLanguage, nil
	case shared:
		return g.tiers.SharedLanguage, nil
	case adjacent:
		return g.tiers.Adjacent, nil
	default:
		return g.tiers.Distant, nil
	}
}

// Combined blends proximity to a primary site and an optional secondary site
// (0.6 / 0.4). Without a secondary site it equals Proximity(student, primary).
func (g *Graph) Combined(student, primary Code, secondary *Code) (float64, error) {
	p, err := g.Proximity(student, primary)
	if err != nil {
		return 0, err
	}
	if secondary == nil {
		return p, nil
	}
	s, err := g.Proximity(student, *secondary)
	if err != nil {
		return 0, err
	}
	return PrimaryShare*p + SecondaryShare*s, nil
}
