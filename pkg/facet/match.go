package facet

import (
	"slices"
	"strings"

	"github.com/matst80/slask-catalog/pkg/types"
)

// Match reports whether a single group passes every active filter. The free
// text query is expected to be trimmed and lower cased already.
func Match(g *types.ProductGroup, f *types.Filters, query string) bool {
	if f.Type != types.TypeAll && f.Type != "" && g.Type != f.Type {
		return false
	}
	if len(f.Series) > 0 && !slices.Contains(f.Series, g.Series) {
		return false
	}
	if len(f.Size) > 0 && !(g.HasSize() && slices.Contains(f.Size, g.GetSize())) {
		return false
	}
	for _, tag := range f.Tags {
		if !g.HasTag(tag) {
			return false
		}
	}
	if query != "" && !strings.Contains(g.SearchText(), query) {
		return false
	}
	return true
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// ApplyFilters returns the groups passing all filters, sorted by the
// requested sort mode. The input slice is never modified.
func ApplyFilters(groups []*types.ProductGroup, f types.Filters) []*types.ProductGroup {
	out := filter(groups, &f)
	SortGroups(out, f.Sort)
	return out
}

func filter(groups []*types.ProductGroup, f *types.Filters) []*types.ProductGroup {
	query := normalizeQuery(f.Query)
	out := make([]*types.ProductGroup, 0, len(groups))
	for _, g := range groups {
		if Match(g, f, query) {
			out = append(out, g)
		}
	}
	return out
}

// FacetCounts counts the values of one facet over the groups matching every
// filter except the facet's own selection. A group adds to all of its tags,
// groups without a size are not counted for the size facet.
func FacetCounts(groups []*types.ProductGroup, f types.Filters, facet types.FacetName) map[string]int {
	base := f.WithOut(facet)
	counts := make(map[string]int)
	for _, g := range filter(groups, &base) {
		switch facet {
		case types.FacetType:
			counts[string(g.Type)]++
		case types.FacetSeries:
			counts[g.Series]++
		case types.FacetSize:
			if g.HasSize() {
				counts[g.GetSize()]++
			}
		case types.FacetTags:
			for _, t := range g.Tags {
				counts[t]++
			}
		}
	}
	return counts
}
