// Package view holds the state of one presented catalog: the filter state bound
// to the location, the visible result window and the sidebar sections.
package view

import (
	"github.com/matst80/slask-catalog/pkg/facet"
	"github.com/matst80/slask-catalog/pkg/query"
	"github.com/matst80/slask-catalog/pkg/types"
)

const DefaultPageStep = 24

type CatalogView struct {
	location Location
	codec    *query.Codec
	groups   []*types.ProductGroup
	options  *facet.Options
	step     int

	filters types.Filters
	visible int
	result  *facet.Result

	Sections *Sections
	Drawer   *Drawer
}

type Options struct {
	PageStep int
	Codec    *query.Codec
	Options  *facet.Options
}

// NewCatalogView reads the initial state from the location.
func NewCatalogView(location Location, groups []*types.ProductGroup, opts Options) *CatalogView {
	if opts.PageStep <= 0 {
		opts.PageStep = DefaultPageStep
	}
	if opts.Options == nil {
		opts.Options = facet.NewOptions(groups)
	}
	if opts.Codec == nil {
		opts.Codec = &query.Codec{KnownType: opts.Options.IsKnownType}
	}
	v := &CatalogView{
		location: location,
		codec:    opts.Codec,
		groups:   groups,
		options:  opts.Options,
		step:     opts.PageStep,
		Sections: DefaultSections(),
		Drawer:   &Drawer{},
	}
	v.Sync()
	return v
}

// Sync re-reads the filter state after a navigation and resets the window.
func (v *CatalogView) Sync() {
	v.setFilters(v.codec.Decode(v.location.Query()))
}

func (v *CatalogView) setFilters(f types.Filters) {
	v.filters = f
	v.visible = v.step
	v.result = facet.Evaluate(v.groups, f)
}

func (v *CatalogView) Filters() types.Filters {
	return v.filters.Clone()
}

func (v *CatalogView) Options() *facet.Options {
	return v.options
}

func (v *CatalogView) Result() *facet.Result {
	return v.result
}

// Update applies a partial change and replaces the location with the newly
// encoded state.
func (v *CatalogView) Update(change func(*types.Filters)) {
	next := v.filters.Clone()
	change(&next)
	v.setFilters(next)
	v.location.Replace(v.codec.Href(v.location.Path(), next))
}

// Href is the location the view would be replaced with after change, used to
// render plain links for every action.
func (v *CatalogView) Href(change func(*types.Filters)) string {
	next := v.filters.Clone()
	change(&next)
	return v.codec.Href(v.location.Path(), next)
}

func (v *CatalogView) SetQuery(q string) {
	v.Update(func(f *types.Filters) { f.Query = q })
}

// SetType selects a single type, anything outside the type options selects
// every type.
func (v *CatalogView) SetType(t types.ProductType) {
	if !v.options.IsKnownType(t) {
		t = types.TypeAll
	}
	v.Update(func(f *types.Filters) { f.Type = t })
}

func (v *CatalogView) SetSort(mode types.SortMode) {
	v.Update(func(f *types.Filters) { f.Sort = mode })
}

func (v *CatalogView) Toggle(facetName types.FacetName, value string) {
	if facetName == types.FacetType {
		v.SetType(types.ProductType(value))
		return
	}
	v.Update(func(f *types.Filters) { f.Toggle(facetName, value) })
}

func (v *CatalogView) Reset() {
	v.Update(func(f *types.Filters) { *f = types.EmptyFilters() })
}

func (v *CatalogView) ShowMore() {
	if v.HasMore() {
		v.visible += v.step
	}
}

// SetVisible restores a window size, rounded up to whole steps.
func (v *CatalogView) SetVisible(n int) {
	if n <= v.step {
		v.visible = v.step
		return
	}
	v.visible = ((n + v.step - 1) / v.step) * v.step
}

func (v *CatalogView) VisibleCount() int {
	return v.visible
}

func (v *CatalogView) Visible() []*types.ProductGroup {
	groups := v.result.Groups
	return groups[:min(v.visible, len(groups))]
}

func (v *CatalogView) HasMore() bool {
	return v.visible < len(v.result.Groups)
}

func (v *CatalogView) Found() int {
	return v.result.Total
}

func (v *CatalogView) Rows(facetName types.FacetName) []facet.Row {
	return v.result.Rows(facetName, v.options)
}
