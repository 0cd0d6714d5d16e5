package view

import (
	"net/url"
	"strings"
)

// Location is the address bar seen by a catalog view. Replace swaps the
// current entry and never pushes a new history entry.
type Location interface {
	Path() string
	Query() url.Values
	Replace(target string)
}

// MemoryLocation is an in-memory Location, it records every replace.
type MemoryLocation struct {
	path     string
	query    url.Values
	Replaced []string
}

func NewMemoryLocation(target string) *MemoryLocation {
	l := &MemoryLocation{}
	l.Replace(target)
	l.Replaced = nil
	return l
}

func (l *MemoryLocation) Path() string {
	return l.path
}

func (l *MemoryLocation) Query() url.Values {
	ret := url.Values{}
	for k, v := range l.query {
		ret[k] = append([]string(nil), v...)
	}
	return ret
}

func (l *MemoryLocation) Replace(target string) {
	path, rawQuery, _ := strings.Cut(target, "?")
	l.path = path
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		q = url.Values{}
	}
	l.query = q
	l.Replaced = append(l.Replaced, target)
}

// Navigate simulates an outside navigation, for instance the back button.
// It does not count as a replace.
func (l *MemoryLocation) Navigate(target string) {
	replaced := l.Replaced
	l.Replace(target)
	l.Replaced = replaced
}

func (l *MemoryLocation) String() string {
	if len(l.query) == 0 {
		return l.path
	}
	return l.path + "?" + l.query.Encode()
}
