package facet

import (
	"github.com/matst80/slask-catalog/pkg/types"
)

// Options holds the selectable values of every facet, derived once from the
// whole catalog so options stay visible even when their count drops to zero.
type Options struct {
	Types  []types.ProductType `json:"types"`
	Series []string            `json:"series"`
	Sizes  []string            `json:"sizes"`
	Tags   []string            `json:"tags"`
}

// TypeOptions is the sentinel, then the fixed base types, then any type found
// in the data that is not a base type in collated order.
func TypeOptions(groups []*types.ProductGroup) []types.ProductType {
	result := make([]types.ProductType, 0, len(types.BaseTypes)+1)
	result = append(result, types.TypeAll)
	result = append(result, types.BaseTypes...)

	unknown := make([]string, 0)
	for _, g := range groups {
		if g.Type == "" || g.Type == types.TypeAll || types.IsBaseType(g.Type) {
			continue
		}
		unknown = append(unknown, string(g.Type))
	}
	for _, t := range UniqueSorted(unknown) {
		result = append(result, types.ProductType(t))
	}
	return result
}

func NewOptions(groups []*types.ProductGroup) *Options {
	series := make([]string, 0, len(groups))
	sizes := make([]string, 0, len(groups))
	tags := make([]string, 0, len(groups))
	for _, g := range groups {
		series = append(series, g.Series)
		sizes = append(sizes, g.GetSize())
		tags = append(tags, g.Tags...)
	}
	return &Options{
		Types:  TypeOptions(groups),
		Series: UniqueSorted(series),
		Sizes:  UniqueSorted(sizes),
		Tags:   UniqueSorted(tags),
	}
}

// IsKnownType reports whether t can be selected, the sentinel included.
func (o *Options) IsKnownType(t types.ProductType) bool {
	for _, known := range o.Types {
		if known == t {
			return true
		}
	}
	return false
}
