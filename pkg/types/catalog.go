package types

import (
	"strings"
	"time"
)

type ProductType string

const (
	TypePaperGift ProductType = "Бумажные подарочные"
	TypePremium   ProductType = "Премиум / LUX"
	TypeKraft     ProductType = "Крафт"
	TypeBottle    ProductType = "Под бутылку"
	TypePlain     ProductType = "Однотонные"

	// TypeAll is the "no type selected" sentinel, never stored on a group.
	TypeAll ProductType = "Все"
)

// BaseTypes is the fixed display order of the known product types.
var BaseTypes = []ProductType{
	TypePaperGift,
	TypePremium,
	TypeKraft,
	TypeBottle,
	TypePlain,
}

func IsBaseType(t ProductType) bool {
	for _, b := range BaseTypes {
		if b == t {
			return true
		}
	}
	return false
}

type ProductVariant struct {
	Sku         string `json:"sku"`
	Ozon        string `json:"ozon,omitempty"`
	Wildberries string `json:"wildberries,omitempty"`
	YMarket     string `json:"ymarket,omitempty"`
}

type ProductGroup struct {
	Id           string           `json:"id"`
	Type         ProductType      `json:"type"`
	Series       string           `json:"series"`
	Size         *string          `json:"size,omitempty"`
	Title        string           `json:"title"`
	Tags         []string         `json:"tags"`
	VariantCount int              `json:"variantCount"`
	Variants     []ProductVariant `json:"variants"`
	CoverImage   *string          `json:"coverImage,omitempty"`
	Images       []string         `json:"images"`
}

// GetSize returns the size or an empty string for sizeless groups.
func (g *ProductGroup) GetSize() string {
	if g.Size == nil {
		return ""
	}
	return *g.Size
}

func (g *ProductGroup) HasSize() bool {
	return g.Size != nil && *g.Size != ""
}

func (g *ProductGroup) GetCoverImage() string {
	if g.CoverImage == nil {
		return ""
	}
	return *g.CoverImage
}

func (g *ProductGroup) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SearchText is the lower cased text free text queries are matched against.
func (g *ProductGroup) SearchText() string {
	parts := make([]string, 0, 3+len(g.Tags)+len(g.Variants))
	parts = append(parts, g.Series, g.GetSize(), g.Title)
	parts = append(parts, g.Tags...)
	for _, v := range g.Variants {
		parts = append(parts, v.Sku)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

type CatalogData struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Groups      []*ProductGroup `json:"groups"`
}

// HumanSize formats a size like 20x30 as 20×30.
func HumanSize(size string) string {
	return strings.ReplaceAll(size, "x", "×")
}

func StringPtr(s string) *string {
	return &s
}
