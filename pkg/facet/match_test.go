package facet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/slask-catalog/pkg/types"
)

func group(id string, t types.ProductType, series string, size *string, count int, tags ...string) *types.ProductGroup {
	variants := make([]types.ProductVariant, count)
	for i := range variants {
		variants[i] = types.ProductVariant{Sku: id + "-sku"}
	}
	return &types.ProductGroup{
		Id:           id,
		Type:         t,
		Series:       series,
		Size:         size,
		Title:        series,
		Tags:         tags,
		VariantCount: count,
		Variants:     variants,
		Images:       []string{},
	}
}

func ids(groups []*types.ProductGroup) []string {
	ret := make([]string, len(groups))
	for i, g := range groups {
		ret[i] = g.Id
	}
	return ret
}

func twoKraftGroups() []*types.ProductGroup {
	return []*types.ProductGroup{
		group("a", types.TypeKraft, "S1", types.StringPtr("20x30"), 2, "eco"),
		group("b", types.TypeKraft, "S2", types.StringPtr("20x30"), 1, "eco", "mini"),
	}
}

func TestApplyFiltersTypeAndSize(t *testing.T) {
	all := twoKraftGroups()
	f := types.EmptyFilters()
	f.Type = types.TypeKraft
	f.Size = []string{"20x30"}

	assert.Equal(t, []string{"a", "b"}, ids(ApplyFilters(all, f)))

	counts := FacetCounts(all, f, types.FacetTags)
	if diff := cmp.Diff(map[string]int{"eco": 2, "mini": 1}, counts); diff != "" {
		t.Errorf("tag counts mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFiltersQueryMatchesSeries(t *testing.T) {
	f := types.EmptyFilters()
	f.Query = "S1"
	assert.Equal(t, []string{"a"}, ids(ApplyFilters(twoKraftGroups(), f)))
}

func TestApplyFiltersQuery(t *testing.T) {
	g := group("c", types.TypePremium, "Золото", types.StringPtr("18x24"), 3, "Новый год")
	g.Title = "Пакет люкс"
	g.Variants[1].Sku = "LUX-7781"
	all := []*types.ProductGroup{g}

	cases := map[string]bool{
		"  золото ": true,
		"18x24":     true,
		"ЛЮКС":      true,
		"новый":     true,
		"lux-7781":  true,
		"серебро":   false,
	}
	for q, want := range cases {
		f := types.EmptyFilters()
		f.Query = q
		assert.Equal(t, want, len(ApplyFilters(all, f)) == 1, "query %q", q)
	}
}

func TestEmptyFiltersKeepEveryGroup(t *testing.T) {
	for _, g := range []*types.ProductGroup{
		group("x", types.TypeBottle, "", nil, 0),
		group("y", "Новый тип", "S", types.StringPtr(""), 5, "a", "b"),
	} {
		got := ApplyFilters([]*types.ProductGroup{g}, types.EmptyFilters())
		require.Len(t, got, 1)
		assert.Same(t, g, got[0])
	}
}

func TestTagFilterIsConjunctive(t *testing.T) {
	all := []*types.ProductGroup{group("a", types.TypeKraft, "S", nil, 1, "A", "B")}
	f := types.EmptyFilters()
	f.Tags = []string{"A", "C"}
	assert.Empty(t, ApplyFilters(all, f))

	f.Tags = []string{"A", "B"}
	assert.Len(t, ApplyFilters(all, f), 1)
}

func TestSizeFilterExcludesSizeless(t *testing.T) {
	all := []*types.ProductGroup{
		group("nil", types.TypeKraft, "S", nil, 1),
		group("empty", types.TypeKraft, "S", types.StringPtr(""), 1),
		group("sized", types.TypeKraft, "S", types.StringPtr("10x10"), 1),
	}
	f := types.EmptyFilters()
	f.Size = []string{"10x10", ""}
	assert.Equal(t, []string{"sized"}, ids(ApplyFilters(all, f)))
}

func TestTypeAndSeriesFilter(t *testing.T) {
	all := []*types.ProductGroup{
		group("a", types.TypeKraft, "S1", nil, 1),
		group("b", types.TypePlain, "S1", nil, 1),
		group("c", types.TypePlain, "S2", nil, 1),
	}
	f := types.EmptyFilters()
	f.Type = types.TypePlain
	assert.Equal(t, []string{"b", "c"}, ids(ApplyFilters(all, f)))

	f.Series = []string{"S1", "S3"}
	assert.Equal(t, []string{"b"}, ids(ApplyFilters(all, f)))
}

func TestSortByVariantsIsNonIncreasing(t *testing.T) {
	all := []*types.ProductGroup{
		group("a", types.TypeKraft, "S", nil, 2),
		group("b", types.TypeKraft, "S", nil, 7),
		group("c", types.TypeKraft, "S", nil, 2),
		group("d", types.TypeKraft, "S", nil, 0),
		group("e", types.TypeKraft, "S", nil, 9),
	}
	f := types.EmptyFilters()
	f.Sort = types.SortVariants
	got := ApplyFilters(all, f)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].VariantCount, got[i].VariantCount)
	}
	// ties keep catalog order
	assert.Equal(t, []string{"e", "b", "a", "c", "d"}, ids(got))
	// the input is left untouched
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(all))
}

func TestSortBySeriesAndSize(t *testing.T) {
	all := []*types.ProductGroup{
		group("1", types.TypeKraft, "Ёлка", types.StringPtr("30x40"), 1),
		group("2", types.TypeKraft, "Арбуз", nil, 1),
		group("3", types.TypeKraft, "Яблоко", types.StringPtr("20x30"), 1),
		group("4", types.TypeKraft, "Дом", types.StringPtr("10x15"), 1),
	}
	f := types.EmptyFilters()
	f.Sort = types.SortSeries
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(ApplyFilters(all, f)))

	f.Sort = types.SortSize
	assert.Equal(t, []string{"2", "4", "3", "1"}, ids(ApplyFilters(all, f)))

	f.Sort = types.SortDefault
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(ApplyFilters(all, f)))
}

func TestTypeCountsSumToTotal(t *testing.T) {
	all := []*types.ProductGroup{
		group("a", types.TypeKraft, "S1", nil, 1),
		group("b", types.TypePlain, "S1", nil, 1),
		group("c", types.TypePlain, "S2", nil, 1),
		group("d", "Экзотика", "S3", nil, 1),
	}
	counts := FacetCounts(all, types.EmptyFilters(), types.FacetType)
	sum := 0
	for _, c := range counts {
		sum += c
	}
	assert.Equal(t, len(all), sum)
}

func TestFacetCountsIgnoreOwnSelection(t *testing.T) {
	all := []*types.ProductGroup{
		group("a", types.TypeKraft, "S1", types.StringPtr("10x10"), 1, "eco"),
		group("b", types.TypeKraft, "S2", types.StringPtr("20x20"), 1),
		group("c", types.TypePlain, "S1", nil, 1, "eco"),
	}
	f := types.EmptyFilters()
	f.Type = types.TypeKraft
	f.Series = []string{"S1"}

	// series counts ignore the series selection but keep the type
	if diff := cmp.Diff(map[string]int{"S1": 1, "S2": 1}, FacetCounts(all, f, types.FacetSeries)); diff != "" {
		t.Errorf("series counts (-want +got):\n%s", diff)
	}
	// type counts ignore the type selection but keep the series
	if diff := cmp.Diff(map[string]int{string(types.TypeKraft): 1, string(types.TypePlain): 1}, FacetCounts(all, f, types.FacetType)); diff != "" {
		t.Errorf("type counts (-want +got):\n%s", diff)
	}
	// sizeless groups never count for size
	f = types.EmptyFilters()
	if diff := cmp.Diff(map[string]int{"10x10": 1, "20x20": 1}, FacetCounts(all, f, types.FacetSize)); diff != "" {
		t.Errorf("size counts (-want +got):\n%s", diff)
	}
}
