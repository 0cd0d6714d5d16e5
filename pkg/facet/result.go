package facet

import (
	"slices"

	"github.com/matst80/slask-catalog/pkg/types"
)

// Result is one full evaluation of the filters against the catalog. It is
// recomputed from scratch on every filter change.
type Result struct {
	Filters types.Filters                      `json:"filters"`
	Groups  []*types.ProductGroup              `json:"-"`
	Total   int                                `json:"total"`
	Counts  map[types.FacetName]map[string]int `json:"counts"`
}

func Evaluate(groups []*types.ProductGroup, f types.Filters) *Result {
	filtered := ApplyFilters(groups, f)
	counts := make(map[types.FacetName]map[string]int, len(types.FacetNames))
	for _, name := range types.FacetNames {
		counts[name] = FacetCounts(groups, f, name)
	}
	return &Result{
		Filters: f,
		Groups:  filtered,
		Total:   len(filtered),
		Counts:  counts,
	}
}

// Row is one checkbox line in the sidebar.
type Row struct {
	Facet   types.FacetName `json:"facet"`
	Value   string          `json:"value"`
	Label   string          `json:"label"`
	Checked bool            `json:"checked"`
	Count   int             `json:"count"`
}

func (r *Result) Rows(facet types.FacetName, opts *Options) []Row {
	counts := r.Counts[facet]
	switch facet {
	case types.FacetType:
		rows := make([]Row, 0, len(opts.Types))
		for _, t := range opts.Types {
			count := counts[string(t)]
			if t == types.TypeAll {
				count = r.Total
			}
			rows = append(rows, Row{
				Facet:   facet,
				Value:   string(t),
				Label:   string(t),
				Checked: r.Filters.Type == t,
				Count:   count,
			})
		}
		return rows
	case types.FacetSeries:
		return makeRows(facet, opts.Series, r.Filters.Series, counts, nil)
	case types.FacetSize:
		return makeRows(facet, opts.Sizes, r.Filters.Size, counts, types.HumanSize)
	case types.FacetTags:
		return makeRows(facet, opts.Tags, r.Filters.Tags, counts, nil)
	}
	return []Row{}
}

func makeRows(facet types.FacetName, values []string, selected []string, counts map[string]int, label func(string) string) []Row {
	rows := make([]Row, 0, len(values))
	for _, v := range values {
		l := v
		if label != nil {
			l = label(v)
		}
		rows = append(rows, Row{
			Facet:   facet,
			Value:   v,
			Label:   l,
			Checked: slices.Contains(selected, v),
			Count:   counts[v],
		})
	}
	return rows
}
