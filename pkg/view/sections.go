package view

import "github.com/matst80/slask-catalog/pkg/types"

type Section struct {
	Facet types.FacetName
	Title string
	open  bool
}

func (s *Section) IsOpen() bool {
	return s.open
}

// Sections keeps an independent open/closed flag per sidebar section.
type Sections struct {
	list []*Section
}

func NewSections(sections ...Section) *Sections {
	list := make([]*Section, len(sections))
	for i := range sections {
		s := sections[i]
		list[i] = &s
	}
	return &Sections{list: list}
}

// NewSection creates a section with its initial state.
func NewSection(facetName types.FacetName, title string, open bool) Section {
	return Section{Facet: facetName, Title: title, open: open}
}

func DefaultSections() *Sections {
	return NewSections(
		NewSection(types.FacetType, "Тип", true),
		NewSection(types.FacetSeries, "Серия", true),
		NewSection(types.FacetSize, "Размер", true),
		NewSection(types.FacetTags, "Теги", false),
	)
}

func (s *Sections) All() []*Section {
	return s.list
}

func (s *Sections) Get(facetName types.FacetName) (*Section, bool) {
	for _, section := range s.list {
		if section.Facet == facetName {
			return section, true
		}
	}
	return nil, false
}

func (s *Sections) IsOpen(facetName types.FacetName) bool {
	if section, ok := s.Get(facetName); ok {
		return section.open
	}
	return false
}

func (s *Sections) Toggle(facetName types.FacetName) {
	if section, ok := s.Get(facetName); ok {
		section.open = !section.open
	}
}

// Drawer is the filter panel on narrow screens.
type Drawer struct {
	open bool
}

func (d *Drawer) Open() {
	d.open = true
}

func (d *Drawer) Close() {
	d.open = false
}

func (d *Drawer) IsOpen() bool {
	return d.open
}

// SetOpen forces the state of one section, unknown facets are ignored.
func (s *Sections) SetOpen(facetName types.FacetName, open bool) {
	if section, ok := s.Get(facetName); ok {
		section.open = open
	}
}
