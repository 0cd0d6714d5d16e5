package pages

import (
	"io"
	"net/url"
	"strconv"

	"github.com/matst80/slask-catalog/pkg/facet"
	"github.com/matst80/slask-catalog/pkg/types"
	"github.com/matst80/slask-catalog/pkg/view"
)

const (
	// ShownKey carries the size of the visible window in catalog links.
	ShownKey = "shown"
	// DrawerKey opens the filter drawer on narrow screens.
	DrawerKey = "filters"
	// MaxCardTags is the number of tags shown on a product card.
	MaxCardTags = 3
)

var sortLabels = map[types.SortMode]string{
	types.SortDefault:  "Сортировка",
	types.SortSeries:   "по серии",
	types.SortSize:     "по размеру",
	types.SortVariants: "по кол-ву дизайнов",
}

type SortOption struct {
	Value    types.SortMode
	Label    string
	Selected bool
}

type RowLink struct {
	facet.Row
	Href string
}

type SectionBlock struct {
	Facet types.FacetName
	Title string
	Open  bool
	Rows  []RowLink
}

type Card struct {
	Group *types.ProductGroup
	Href  string
	Image string
	Size  string
	Tags  []string
}

type CatalogPage struct {
	Action      string
	State       string
	Query       string
	SortOptions []SortOption
	Sections    []SectionBlock
	Cards       []Card
	Found       int
	ResetHref   string
	MoreHref    string
	DrawerOpen  bool
	DrawerHref  string
	// Static pages are served without the storefront, the sidebar only lists
	// the catalog options.
	Static bool
}

// WithShown adds the window size to a catalog href. Sizes of one step or
// less are left out.
func WithShown(href string, shown, step int) string {
	if shown <= step {
		return href
	}
	return withParam(href, ShownKey, strconv.Itoa(shown))
}

func withParam(href, key, value string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

// NewCatalogPage builds the catalog grid from the current view state. Every
// sidebar row links to the state it would produce when toggled.
func (r *Renderer) NewCatalogPage(v *view.CatalogView, step int) *CatalogPage {
	current := v.Filters()
	stateHref := v.Href(func(*types.Filters) {})
	state := ""
	if u, err := url.Parse(stateHref); err == nil {
		state = u.RawQuery
	}

	page := &CatalogPage{
		Action:     r.Link("/catalog"),
		State:      state,
		Query:      current.Query,
		Found:      v.Found(),
		ResetHref:  v.Href(func(f *types.Filters) { *f = types.EmptyFilters() }),
		DrawerOpen: v.Drawer.IsOpen(),
		DrawerHref: stateHref,
	}
	if !page.DrawerOpen {
		page.DrawerHref = withParam(stateHref, DrawerKey, "1")
	}
	for _, mode := range types.SortModes {
		page.SortOptions = append(page.SortOptions, SortOption{
			Value:    mode,
			Label:    sortLabels[mode],
			Selected: current.Sort == mode,
		})
	}
	for _, section := range v.Sections.All() {
		block := SectionBlock{Facet: section.Facet, Title: section.Title, Open: section.IsOpen()}
		for _, row := range v.Rows(section.Facet) {
			block.Rows = append(block.Rows, RowLink{Row: row, Href: rowHref(v, row)})
		}
		page.Sections = append(page.Sections, block)
	}
	for _, g := range v.Visible() {
		page.Cards = append(page.Cards, r.card(g))
	}
	if v.HasMore() {
		page.MoreHref = WithShown(stateHref, v.VisibleCount()+step, step)
	}
	return page
}

func rowHref(v *view.CatalogView, row facet.Row) string {
	if row.Facet == types.FacetType {
		return v.Href(func(f *types.Filters) { f.Type = types.ProductType(row.Value) })
	}
	return v.Href(func(f *types.Filters) { f.Toggle(row.Facet, row.Value) })
}

func (r *Renderer) card(g *types.ProductGroup) Card {
	tags := g.Tags
	if len(tags) > MaxCardTags {
		tags = tags[:MaxCardTags]
	}
	image := r.Image(g.GetCoverImage())
	if image != "" && r.ThumbnailDir != "" {
		image = r.Link(r.ThumbnailDir + "/" + g.Id + ".jpg")
	}
	return Card{
		Group: g,
		Href:  r.Link("/catalog/" + url.PathEscape(g.Id)),
		Image: image,
		Size:  types.HumanSize(g.GetSize()),
		Tags:  tags,
	}
}

func (r *Renderer) Catalog(w io.Writer, page *CatalogPage) error {
	return r.render(w, PageCatalog, "Каталог", page)
}
