package types

import "slices"

type SortMode string

const (
	SortDefault  SortMode = "default"
	SortSeries   SortMode = "series"
	SortSize     SortMode = "size"
	SortVariants SortMode = "variants"
)

var SortModes = []SortMode{SortDefault, SortSeries, SortSize, SortVariants}

func ParseSortMode(s string) SortMode {
	for _, m := range SortModes {
		if string(m) == s {
			return m
		}
	}
	return SortDefault
}

type FacetName string

const (
	FacetType   FacetName = "type"
	FacetSeries FacetName = "series"
	FacetSize   FacetName = "size"
	FacetTags   FacetName = "tags"
)

var FacetNames = []FacetName{FacetType, FacetSeries, FacetSize, FacetTags}

// Filters is the state of the catalog sidebar. Series, Size and Tags are sets
// kept in first-seen order.
type Filters struct {
	Query  string      `json:"q"`
	Type   ProductType `json:"type"`
	Series []string    `json:"series"`
	Size   []string    `json:"size"`
	Tags   []string    `json:"tags"`
	Sort   SortMode    `json:"sort"`
}

func EmptyFilters() Filters {
	return Filters{
		Type:   TypeAll,
		Series: []string{},
		Size:   []string{},
		Tags:   []string{},
		Sort:   SortDefault,
	}
}

func (f Filters) Clone() Filters {
	return Filters{
		Query:  f.Query,
		Type:   f.Type,
		Series: slices.Clone(f.Series),
		Size:   slices.Clone(f.Size),
		Tags:   slices.Clone(f.Tags),
		Sort:   f.Sort,
	}
}

// WithOut returns a copy with the selection of one facet reset, used when
// counting the options of that facet.
func (f Filters) WithOut(facet FacetName) Filters {
	result := f.Clone()
	switch facet {
	case FacetType:
		result.Type = TypeAll
	case FacetSeries:
		result.Series = []string{}
	case FacetSize:
		result.Size = []string{}
	case FacetTags:
		result.Tags = []string{}
	}
	return result
}

func (f Filters) IsEmpty() bool {
	return f.Query == "" && (f.Type == TypeAll || f.Type == "") &&
		len(f.Series) == 0 && len(f.Size) == 0 && len(f.Tags) == 0 &&
		(f.Sort == SortDefault || f.Sort == "")
}

// Equal compares two states, treating the list fields as sets.
func (f Filters) Equal(o Filters) bool {
	return f.Query == o.Query && f.Type == o.Type && f.Sort == o.Sort &&
		sameSet(f.Series, o.Series) && sameSet(f.Size, o.Size) && sameSet(f.Tags, o.Tags)
}

func (f Filters) Selected(facet FacetName) []string {
	switch facet {
	case FacetType:
		if f.Type == TypeAll {
			return []string{}
		}
		return []string{string(f.Type)}
	case FacetSeries:
		return f.Series
	case FacetSize:
		return f.Size
	case FacetTags:
		return f.Tags
	}
	return []string{}
}

// Toggle adds or removes value from the series, size or tags set.
func (f *Filters) Toggle(facet FacetName, value string) {
	var list *[]string
	switch facet {
	case FacetSeries:
		list = &f.Series
	case FacetSize:
		list = &f.Size
	case FacetTags:
		list = &f.Tags
	default:
		return
	}
	if i := slices.Index(*list, value); i >= 0 {
		*list = slices.Delete(slices.Clone(*list), i, i+1)
		return
	}
	*list = append(slices.Clone(*list), value)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !slices.Contains(b, v) {
			return false
		}
	}
	return true
}
