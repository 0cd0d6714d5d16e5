package pages

import (
	"io"

	"github.com/matst80/slask-catalog/pkg/marketplace"
	"github.com/matst80/slask-catalog/pkg/types"
)

// MaxThumbnails is the number of gallery images on the detail page.
const MaxThumbnails = 8

type VariantRow struct {
	Sku   string
	Links []marketplace.Link
}

type DetailPage struct {
	Group      *types.ProductGroup
	Cover      string
	Thumbnails []string
	Size       string
	Variants   []VariantRow
	Links      []marketplace.Link
}

func (r *Renderer) NewDetailPage(g *types.ProductGroup) *DetailPage {
	page := &DetailPage{
		Group: g,
		Cover: r.Image(g.GetCoverImage()),
		Size:  types.HumanSize(g.GetSize()),
		Links: r.Linker.Links(g),
	}
	if len(g.Images) > 1 {
		for _, img := range g.Images[:min(MaxThumbnails, len(g.Images))] {
			page.Thumbnails = append(page.Thumbnails, r.Image(img))
		}
	}
	for _, v := range g.Variants {
		page.Variants = append(page.Variants, VariantRow{Sku: v.Sku, Links: marketplace.VariantLinks(v)})
	}
	return page
}

func (r *Renderer) Detail(w io.Writer, g *types.ProductGroup) error {
	return r.render(w, PageDetail, g.Series, r.NewDetailPage(g))
}
