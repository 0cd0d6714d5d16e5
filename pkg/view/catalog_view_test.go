package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/slask-catalog/pkg/types"
)

func makeGroups(n int) []*types.ProductGroup {
	groups := make([]*types.ProductGroup, n)
	for i := range groups {
		series := "S1"
		if i%2 == 1 {
			series = "S2"
		}
		groups[i] = &types.ProductGroup{
			Id:           fmt.Sprintf("g%d", i),
			Type:         types.TypeKraft,
			Series:       series,
			Size:         types.StringPtr("20x30"),
			Title:        series,
			Tags:         []string{"eco"},
			VariantCount: 1,
			Variants:     []types.ProductVariant{{Sku: fmt.Sprintf("SKU-%d", i)}},
		}
	}
	return groups
}

func TestViewReadsInitialStateFromLocation(t *testing.T) {
	loc := NewMemoryLocation("/catalog?series=S2&sort=variants&type=bogus")
	v := NewCatalogView(loc, makeGroups(6), Options{})

	f := v.Filters()
	assert.Equal(t, []string{"S2"}, f.Series)
	assert.Equal(t, types.SortVariants, f.Sort)
	assert.Equal(t, types.TypeAll, f.Type)
	assert.Equal(t, 3, v.Found())
	assert.Empty(t, loc.Replaced, "reading the state must not navigate")
}

func TestUpdateReplacesLocation(t *testing.T) {
	loc := NewMemoryLocation("/catalog")
	v := NewCatalogView(loc, makeGroups(4), Options{})

	v.Toggle(types.FacetSeries, "S1")
	v.SetQuery("sku-2")
	v.Toggle(types.FacetSeries, "S1")

	assert.Equal(t, []string{
		"/catalog?series=S1",
		"/catalog?q=sku-2&series=S1",
		"/catalog?q=sku-2",
	}, loc.Replaced)
	assert.Equal(t, 1, v.Found())

	v.Reset()
	assert.Equal(t, "/catalog", loc.Replaced[len(loc.Replaced)-1])
	assert.True(t, v.Filters().IsEmpty())
	assert.Equal(t, 4, v.Found())
}

func TestToggleTypeSelectsSingleType(t *testing.T) {
	loc := NewMemoryLocation("/catalog")
	v := NewCatalogView(loc, makeGroups(2), Options{})
	v.Toggle(types.FacetType, string(types.TypePlain))
	assert.Equal(t, types.TypePlain, v.Filters().Type)
	assert.Equal(t, 0, v.Found())
	assert.Empty(t, v.Visible())
	assert.False(t, v.HasMore())
}

func TestPagination(t *testing.T) {
	loc := NewMemoryLocation("/catalog")
	v := NewCatalogView(loc, makeGroups(2), Options{PageStep: 1})

	require.Len(t, v.Visible(), 1)
	assert.True(t, v.HasMore())

	v.ShowMore()
	assert.Equal(t, 2, v.VisibleCount())
	assert.Len(t, v.Visible(), 2)
	assert.False(t, v.HasMore())

	v.ShowMore()
	assert.Equal(t, 2, v.VisibleCount(), "show more is a no-op without more results")
}

func TestFilterChangeResetsWindow(t *testing.T) {
	loc := NewMemoryLocation("/catalog")
	v := NewCatalogView(loc, makeGroups(60), Options{})
	assert.Len(t, v.Visible(), DefaultPageStep)
	v.ShowMore()
	v.ShowMore()
	assert.Len(t, v.Visible(), 60)

	v.SetSort(types.SortSeries)
	assert.Equal(t, DefaultPageStep, v.VisibleCount())

	v.ShowMore()
	loc.Navigate("/catalog?series=S1")
	v.Sync()
	assert.Equal(t, DefaultPageStep, v.VisibleCount())
	assert.Equal(t, 30, v.Found())
}

func TestSetVisibleRoundsToSteps(t *testing.T) {
	v := NewCatalogView(NewMemoryLocation("/catalog"), makeGroups(100), Options{PageStep: 10})
	v.SetVisible(0)
	assert.Equal(t, 10, v.VisibleCount())
	v.SetVisible(25)
	assert.Equal(t, 30, v.VisibleCount())
}

func TestHrefDoesNotNavigate(t *testing.T) {
	loc := NewMemoryLocation("/catalog?tag=eco")
	v := NewCatalogView(loc, makeGroups(2), Options{})
	href := v.Href(func(f *types.Filters) { f.Toggle(types.FacetTags, "eco") })
	assert.Equal(t, "/catalog", href)
	assert.Empty(t, loc.Replaced)
	assert.Equal(t, []string{"eco"}, v.Filters().Tags)
}

func TestSectionsAreIndependent(t *testing.T) {
	s := DefaultSections()
	assert.True(t, s.IsOpen(types.FacetType))
	assert.False(t, s.IsOpen(types.FacetTags))

	s.Toggle(types.FacetTags)
	s.Toggle(types.FacetType)
	assert.True(t, s.IsOpen(types.FacetTags))
	assert.False(t, s.IsOpen(types.FacetType))
	assert.True(t, s.IsOpen(types.FacetSeries))
	assert.True(t, s.IsOpen(types.FacetSize))

	custom := NewSections(NewSection(types.FacetSize, "Размер", false))
	assert.False(t, custom.IsOpen(types.FacetSize))
	assert.False(t, custom.IsOpen(types.FacetType), "unknown sections are closed")

	custom.SetOpen(types.FacetSize, true)
	custom.SetOpen(types.FacetType, true)
	assert.True(t, custom.IsOpen(types.FacetSize))
	assert.False(t, custom.IsOpen(types.FacetType))
}

func TestDrawer(t *testing.T) {
	d := &Drawer{}
	assert.False(t, d.IsOpen())
	d.Open()
	assert.True(t, d.IsOpen())
	d.Close()
	assert.False(t, d.IsOpen())
}

func TestSetTypeOutsideOptionsSelectsAll(t *testing.T) {
	loc := NewMemoryLocation("/catalog?type=" + string(types.TypeKraft))
	v := NewCatalogView(loc, makeGroups(2), Options{})
	require.Equal(t, types.TypeKraft, v.Filters().Type)

	v.Toggle(types.FacetType, "Картон")
	assert.Equal(t, types.TypeAll, v.Filters().Type)
	assert.Equal(t, []string{"/catalog"}, loc.Replaced)
}
