// Package query answers name-based questions over a mapping database:
// glob matching of class names and fuzzy suggestions for near misses.
package query

import (
	"cmp"
	"fmt"
	"path"
	"slices"

	"github.com/gobwas/glob"
	"github.com/hbollon/go-edlib"
	"github.com/mvp-joe/cartographer/internal/srg"
)

// DefaultMinSimilarity is the Jaro-Winkler score below which a class is not
// suggested.
const DefaultMinSimilarity = 0.8

// Classes returns the classes whose canonical or external name matches the
// glob pattern, sorted by canonical name. '*' does not cross a package
// separator; '**' does.
func Classes(db *srg.Database, pattern string) ([]srg.Class, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid class pattern %q: %w", pattern, err)
	}

	var out []srg.Class
	for _, c := range db.Classes() {
		if g.Match(c.Name) || g.Match(c.ExternalName) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Suggestion is a class whose name is close to a query.
type Suggestion struct {
	Class srg.Class
	Score float64
}

// Suggest returns up to limit classes similar to name, best first. Both the
// full canonical name and its simple name are scored; the higher counts.
func Suggest(db *srg.Database, name string, limit int, minSimilarity float64) []Suggestion {
	if name == "" || limit <= 0 {
		return nil
	}

	var out []Suggestion
	for _, c := range db.Classes() {
		score := max(similarity(name, c.Name), similarity(name, path.Base(c.Name)))
		if score >= minSimilarity {
			out = append(out, Suggestion{Class: c, Score: score})
		}
	}

	slices.SortFunc(out, func(a, b Suggestion) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			cmp.Compare(a.Class.Name, b.Class.Name),
		)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0.0
	}
	return float64(score)
}
