package facet

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matst80/slask-catalog/pkg/types"
)

// Collation language for series, sizes and option lists.
var Locale = language.Russian

// newCollator returns a fresh collator, they keep internal buffers and can not
// be shared between requests.
func newCollator() *collate.Collator {
	return collate.New(Locale)
}

// SortGroups sorts in place. All sorts are stable, SortDefault keeps the
// catalog order.
func SortGroups(groups []*types.ProductGroup, mode types.SortMode) {
	switch mode {
	case types.SortSeries:
		c := newCollator()
		slices.SortStableFunc(groups, func(a, b *types.ProductGroup) int {
			return c.CompareString(a.Series, b.Series)
		})
	case types.SortSize:
		c := newCollator()
		slices.SortStableFunc(groups, func(a, b *types.ProductGroup) int {
			return c.CompareString(a.GetSize(), b.GetSize())
		})
	case types.SortVariants:
		slices.SortStableFunc(groups, func(a, b *types.ProductGroup) int {
			return cmp.Compare(b.VariantCount, a.VariantCount)
		})
	}
}

// UniqueSorted deduplicates values and orders them with the locale collator.
// Empty strings are dropped.
func UniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	c := newCollator()
	slices.SortStableFunc(result, func(a, b string) int {
		return c.CompareString(a, b)
	})
	return result
}
