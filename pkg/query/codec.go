// Package query converts the catalog filter state to and from the query string
// of the catalog page, so filtered views can be shared and bookmarked.
package query

import (
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/matst80/slask-catalog/pkg/types"
)

const (
	KeyQuery  = "q"
	KeyType   = "type"
	KeySeries = "series"
	KeySize   = "size"
	KeyTag    = "tag"
	KeySort   = "sort"
)

type rawFilters struct {
	Query  string   `schema:"q"`
	Type   string   `schema:"type"`
	Series []string `schema:"series"`
	Size   []string `schema:"size"`
	Tags   []string `schema:"tag"`
	Sort   string   `schema:"sort,default:default"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.ZeroEmpty(true)
}

// Codec decodes and encodes filter states. KnownType decides which type
// literals are accepted, anything else falls back to TypeAll.
type Codec struct {
	KnownType func(types.ProductType) bool
}

var Default = &Codec{KnownType: types.IsBaseType}

// Decode never fails, unknown or malformed values are normalised to their
// defaults.
func (c *Codec) Decode(values url.Values) types.Filters {
	values = firstScalars(values)
	raw := rawFilters{}
	if err := decoder.Decode(&raw, values); err != nil {
		// only conversion errors are possible and every field is a string,
		// keep whatever was decoded
		raw.Sort = values.Get(KeySort)
	}
	result := types.EmptyFilters()
	result.Query = strings.TrimSpace(raw.Query)
	if t := types.ProductType(raw.Type); t != types.TypeAll && c.knownType(t) {
		result.Type = t
	}
	result.Series = explode(raw.Series)
	result.Size = explode(raw.Size)
	result.Tags = explode(raw.Tags)
	result.Sort = types.ParseSortMode(raw.Sort)
	return result
}

// firstScalars keeps only the first value of the single valued keys, a
// repeated q, type or sort resolves to its first occurrence.
func firstScalars(values url.Values) url.Values {
	result := make(url.Values, len(values))
	for k, v := range values {
		switch k {
		case KeyQuery, KeyType, KeySort:
			if len(v) > 1 {
				v = v[:1]
			}
		}
		result[k] = v
	}
	return result
}

func (c *Codec) knownType(t types.ProductType) bool {
	if t == "" {
		return false
	}
	if c.KnownType == nil {
		return types.IsBaseType(t)
	}
	return c.KnownType(t)
}

// explode splits every value on comma, trims and drops empty tokens and
// duplicates, keeping first-seen order.
func explode(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			result = append(result, part)
		}
	}
	return result
}

func (c *Codec) Encode(f types.Filters) url.Values {
	values := url.Values{}
	if q := strings.TrimSpace(f.Query); q != "" {
		values.Set(KeyQuery, q)
	}
	if f.Type != types.TypeAll && f.Type != "" {
		values.Set(KeyType, string(f.Type))
	}
	for _, s := range f.Series {
		values.Add(KeySeries, s)
	}
	for _, s := range f.Size {
		values.Add(KeySize, s)
	}
	for _, t := range f.Tags {
		values.Add(KeyTag, t)
	}
	if f.Sort != types.SortDefault && f.Sort != "" {
		values.Set(KeySort, string(f.Sort))
	}
	return values
}

// Href joins path and the encoded state, the bare path is returned for an
// empty state.
func (c *Codec) Href(path string, f types.Filters) string {
	qs := c.Encode(f).Encode()
	if qs == "" {
		return path
	}
	return path + "?" + qs
}

func Decode(values url.Values) types.Filters {
	return Default.Decode(values)
}

func Encode(f types.Filters) url.Values {
	return Default.Encode(f)
}
