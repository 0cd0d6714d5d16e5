// Package export writes the storefront as a static site, one page per
// product group id, for hosting without the server.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/pages"
	"github.com/matst80/slask-catalog/pkg/storage"
	"github.com/matst80/slask-catalog/pkg/view"
)

const ThumbnailDir = "/img/thumbs"

type Exporter struct {
	Disk     *storage.DiskStorage
	Renderer *pages.Renderer
	Logger   *zap.Logger
	Workers  int
	// ImageDir holds the catalog images referenced by the data. Images are
	// copied to img/ when it is set.
	ImageDir string
	// ThumbSize enables cover thumbnails fitting in a square of this size.
	ThumbSize int
}

type Summary struct {
	Pages      int64
	Images     int64
	Thumbnails int64
}

func (e *Exporter) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Export renders every page of the snapshot. Pages are written concurrently,
// the first failure cancels the rest.
func (e *Exporter) Export(ctx context.Context, snap *catalog.Snapshot) (*Summary, error) {
	summary := &Summary{}
	renderer := *e.Renderer
	thumbs := e.ThumbSize > 0 && e.ImageDir != ""
	if thumbs {
		renderer.ThumbnailDir = ThumbnailDir
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Workers, 1))

	page := func(name string, render func(io.Writer) error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf := &bytes.Buffer{}
			if err := render(buf); err != nil {
				return fmt.Errorf("render %s: %w", name, err)
			}
			if err := e.Disk.WriteFile(name, buf.Bytes()); err != nil {
				return err
			}
			atomic.AddInt64(&summary.Pages, 1)
			return nil
		})
	}

	page("index.html", func(w io.Writer) error {
		return renderer.Home(w, len(snap.Groups()))
	})
	page("wholesale/index.html", renderer.Wholesale)
	page("404.html", func(w io.Writer) error {
		return renderer.NotFound(w, "")
	})
	page("catalog/index.html", func(w io.Writer) error {
		v := view.NewCatalogView(view.NewMemoryLocation(renderer.Link("/catalog")), snap.Groups(), view.Options{Options: snap.Options})
		v.SetVisible(len(snap.Groups()))
		catalogPage := renderer.NewCatalogPage(v, view.DefaultPageStep)
		catalogPage.Static = true
		return renderer.Catalog(w, catalogPage)
	})
	for _, group := range snap.Groups() {
		page(filepath.Join("catalog", group.Id, "index.html"), func(w io.Writer) error {
			return renderer.Detail(w, group)
		})
	}

	g.Go(func() error {
		return e.Disk.SaveJson(snap.Data, "catalog.json")
	})
	g.Go(func() error {
		return e.Disk.WriteFile("static/site.css", pages.Stylesheet)
	})

	if e.ImageDir != "" {
		for _, img := range referencedImages(snap) {
			g.Go(func() error {
				if err := e.Disk.CopyFrom(filepath.Join("img", img), filepath.Join(e.ImageDir, img)); err != nil {
					return fmt.Errorf("copy image %s: %w", img, err)
				}
				atomic.AddInt64(&summary.Images, 1)
				return nil
			})
		}
	}
	if thumbs {
		for _, group := range snap.Groups() {
			cover := group.GetCoverImage()
			if cover == "" {
				continue
			}
			g.Go(func() error {
				if err := e.thumbnail(filepath.Join(e.ImageDir, pages.CleanImagePath(cover)), group.Id); err != nil {
					return fmt.Errorf("thumbnail %s: %w", cover, err)
				}
				atomic.AddInt64(&summary.Thumbnails, 1)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.logger().Info("static export complete",
		zap.String("dir", e.Disk.RootFolder),
		zap.Int64("pages", summary.Pages),
		zap.Int64("images", summary.Images),
		zap.Int64("thumbnails", summary.Thumbnails))
	return summary, nil
}

func (e *Exporter) thumbnail(src, id string) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	thumb := imaging.Fit(img, e.ThumbSize, e.ThumbSize, imaging.Lanczos)
	name := filepath.Join(filepath.FromSlash(ThumbnailDir[1:]), id+".jpg")
	return e.Disk.WriteStream(name, func(w io.Writer) error {
		return imaging.Encode(w, thumb, imaging.JPEG, imaging.JPEGQuality(80))
	})
}

// referencedImages lists every cover and gallery image once.
func referencedImages(snap *catalog.Snapshot) []string {
	seen := map[string]struct{}{}
	result := []string{}
	add := func(img string) {
		if img == "" {
			return
		}
		img = pages.CleanImagePath(img)
		if _, ok := seen[img]; !ok {
			seen[img] = struct{}{}
			result = append(result, img)
		}
	}
	for _, g := range snap.Groups() {
		add(g.GetCoverImage())
		for _, img := range g.Images {
			add(img)
		}
	}
	return result
}
