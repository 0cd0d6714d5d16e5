// Package marketplace builds outbound search links for the retail marketplaces
// the gift bags are sold on.
package marketplace

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/matst80/slask-catalog/pkg/types"
)

type Market string

const (
	Ozon        Market = "ozon"
	Wildberries Market = "wildberries"
	YMarket     Market = "ymarket"
)

// Markets in display order.
var Markets = []Market{Ozon, Wildberries, YMarket}

// Template holds a search endpoint, %s is replaced with the encoded query.
type Template struct {
	Market Market `yaml:"market" json:"market"`
	Name   string `yaml:"name" json:"name"`
	Search string `yaml:"search" json:"search"`
}

var DefaultTemplates = []Template{
	{Market: Ozon, Name: "Ozon", Search: "https://www.ozon.ru/search/?text=%s"},
	{Market: Wildberries, Name: "Wildberries", Search: "https://www.wildberries.ru/catalog/0/search.aspx?search=%s"},
	{Market: YMarket, Name: "Я.Маркет", Search: "https://market.yandex.ru/search?text=%s"},
}

type Link struct {
	Market Market `json:"market"`
	Name   string `json:"name"`
	Url    string `json:"url"`
}

type Linker struct {
	templates []Template
}

// NewLinker uses the default template for every market missing from
// overrides.
func NewLinker(overrides ...Template) *Linker {
	templates := make([]Template, len(DefaultTemplates))
	copy(templates, DefaultTemplates)
	for _, o := range overrides {
		for i := range templates {
			if templates[i].Market != o.Market {
				continue
			}
			if o.Search != "" {
				templates[i].Search = o.Search
			}
			if o.Name != "" {
				templates[i].Name = o.Name
			}
		}
	}
	return &Linker{templates: templates}
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes like encodeURIComponent: spaces become %20
// and !'()* are left as they are.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func (l *Linker) SearchUrl(market Market, q string) (string, error) {
	for _, t := range l.templates {
		if t.Market == market {
			return fmt.Sprintf(t.Search, EncodeComponent(q)), nil
		}
	}
	return "", fmt.Errorf("unknown marketplace %q", market)
}

// SearchQuery is the text searched for on the marketplaces, the series and
// the size when the group has one.
func SearchQuery(g *types.ProductGroup) string {
	return strings.TrimSpace(g.Series + " " + g.GetSize())
}

func (l *Linker) Links(g *types.ProductGroup) []Link {
	q := EncodeComponent(SearchQuery(g))
	links := make([]Link, 0, len(l.templates))
	for _, t := range l.templates {
		links = append(links, Link{
			Market: t.Market,
			Name:   t.Name,
			Url:    fmt.Sprintf(t.Search, q),
		})
	}
	return links
}

// VariantLinks returns the exact per-SKU links present in the data.
func VariantLinks(v types.ProductVariant) []Link {
	links := make([]Link, 0, 3)
	add := func(market Market, name, href string) {
		if href != "" {
			links = append(links, Link{Market: market, Name: name, Url: href})
		}
	}
	add(Ozon, "Ozon", v.Ozon)
	add(Wildberries, "Wildberries", v.Wildberries)
	add(YMarket, "Я.Маркет", v.YMarket)
	return links
}
