package gocalc

import (
	"sort"

	"github.com/hbollon/go-edlib"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a "did you mean" hint.
const suggestThreshold = 0.8

var knownNames = func() []string {
	seen := map[string]bool{"pi": true, "e": true, "ans": true, "x": true}
	for name := range builtins {
		seen[name] = true
	}
	for alias := range calculatorAliases {
		seen[alias] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}()

// suggestName returns the closest known function or constant name, or "" when
// nothing is similar enough.
func suggestName(name string) string {
	best, bestScore := "", float32(suggestThreshold)
	for _, candidate := range knownNames {
		score, err := edlib.StringsSimilarity(name, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best
}
