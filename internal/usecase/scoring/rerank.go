package scoring

import (
	"sort"

	"github.com/lernwerk/compass/internal/domain/compatibility"
	"github.com/lernwerk/compass/internal/domain/tag"
)

// DefaultDiversityCap is the per-category admission limit in cold start.
const DefaultDiversityCap = 3

// rerank drops results below minScore, sorts the rest by descending score
// (ties keep input order) and cuts to batchSize. With diversify set, each
// category admits at most perCategory entries.
func rerank(
	results []compatibility.Result, minScore float64, batchSize int, diversify bool, perCategory int,
) []compatibility.Result {
	kept := make([]compatibility.Result, 0, len(results))
	for _, r := range results {
		if r.Score() >= minScore {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score() > kept[j].Score()
	})

	if !diversify {
		if len(kept) > batchSize {
			kept = kept[:batchSize]
		}
		return kept
	}

	out := make([]compatibility.Result, 0, min(batchSize, len(kept)))
	counts := make(map[string]int)
	for _, r := range kept {
		if len(out) >= batchSize {
			break
		}
		key := tag.Normalize(r.Category())
		if counts[key] >= perCategory {
			continue
		}
		counts[key]++
		out = append(out, r)
	}
	return out
}
