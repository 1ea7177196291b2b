// Package search maps a free-text query plus the city and place candidate
// pools to ranked matches. Matching is locale-aware, case-insensitive
// substring containment; the package performs no I/O and holds no state, so
// a call per keystroke is safe.
package search

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/marosa/locator-service/internal/cities"
	"github.com/marosa/locator-service/internal/places"
)

// Options tunes a single match call.
type Options struct {
	// MaxResults truncates each result pool independently after ranking.
	// Zero means unlimited. The two pools never share a budget.
	MaxResults int
}

// Result holds the ranked matches. Both slices are non-nil; an empty or
// whitespace-only query yields two empty slices.
type Result struct {
	Cities []cities.City  `json:"cities"`
	Places []places.Place `json:"locations"`
}

// Match runs the query against both candidate pools.
//
// Script detection picks the city match field: a query containing any
// Cyrillic rune is folded with Bulgarian rules and matched against
// BulgarianName; otherwise default folding against EnglishName. Place names
// are Bulgarian-authored text and always use Bulgarian folding, regardless
// of the query script.
func Match(query string, cityPool []cities.City, placePool []places.Place, opts Options) Result {
	result := Result{Cities: []cities.City{}, Places: []places.Place{}}

	q := strings.TrimSpace(query)
	if q == "" {
		return result
	}

	// Casers are stateful transformers, so they are created per call
	// rather than shared.
	foldBG := cases.Lower(language.Bulgarian)
	foldDefault := cases.Lower(language.Und)

	if containsCyrillic(q) {
		needle := foldBG.String(q)
		for _, c := range cityPool {
			if strings.Contains(foldBG.String(c.BulgarianName), needle) {
				result.Cities = append(result.Cities, c)
			}
		}
	} else {
		needle := foldDefault.String(q)
		for _, c := range cityPool {
			if strings.Contains(foldDefault.String(c.EnglishName), needle) {
				result.Cities = append(result.Cities, c)
			}
		}
	}

	needle := foldBG.String(q)
	type rankedPlace struct {
		place  places.Place
		prefix bool
	}
	ranked := make([]rankedPlace, 0, len(placePool))
	for _, p := range placePool {
		name := p.Name()
		if name == "" {
			continue
		}
		folded := foldBG.String(name)
		if !strings.Contains(folded, needle) {
			continue
		}
		ranked = append(ranked, rankedPlace{place: p, prefix: strings.HasPrefix(folded, needle)})
	}

	// Prefix matches sort before interior matches; ties keep input order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].prefix && !ranked[j].prefix
	})
	for _, r := range ranked {
		result.Places = append(result.Places, r.place)
	}

	if opts.MaxResults > 0 {
		if len(result.Cities) > opts.MaxResults {
			result.Cities = result.Cities[:opts.MaxResults]
		}
		if len(result.Places) > opts.MaxResults {
			result.Places = result.Places[:opts.MaxResults]
		}
	}
	return result
}

func containsCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}
