// Package pages renders the storefront HTML, used by the live server and by
// the static export.
package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
	"time"

	"github.com/matst80/slask-catalog/pkg/marketplace"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed templates/site.css
var Stylesheet []byte

const (
	PageHome      = "home"
	PageWholesale = "wholesale"
	PageCatalog   = "catalog"
	PageDetail    = "detail"
	PageNotFound  = "notfound"
)

var pageNames = []string{PageHome, PageWholesale, PageCatalog, PageDetail, PageNotFound}

type Renderer struct {
	BasePath     string
	ContactEmail string
	Linker       *marketplace.Linker
	// ThumbnailDir, when set, is the url folder holding generated cover
	// thumbnails named after the group id.
	ThumbnailDir string
	pages        map[string]*template.Template
}

type layoutData struct {
	Title   string
	Year    int
	Content any
}

func NewRenderer(basePath, contactEmail string, linker *marketplace.Linker) (*Renderer, error) {
	r := &Renderer{
		BasePath:     strings.TrimSuffix(basePath, "/"),
		ContactEmail: contactEmail,
		Linker:       linker,
		pages:        make(map[string]*template.Template, len(pageNames)),
	}
	if r.Linker == nil {
		r.Linker = marketplace.NewLinker()
	}
	base, err := template.New("").Funcs(template.FuncMap{
		"link": r.Link,
	}).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if r.pages[name], err = clone.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
	}
	return r, nil
}

// Link prefixes an absolute site path with the base path.
func (r *Renderer) Link(p string) string {
	return r.BasePath + p
}

// CleanImagePath makes an image path from the data relative to the image
// folder, it can never point outside of it.
func CleanImagePath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// Image is the url of a catalog image path from the data.
func (r *Renderer) Image(p string) string {
	if p == "" {
		return ""
	}
	return r.Link("/img/" + CleanImagePath(p))
}

func (r *Renderer) render(w io.Writer, page, title string, content any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "layout", layoutData{
		Title:   title,
		Year:    time.Now().Year(),
		Content: content,
	})
}

type homeData struct {
	Groups int
}

func (r *Renderer) Home(w io.Writer, groups int) error {
	return r.render(w, PageHome, "Подарочные пакеты: каталог", homeData{Groups: groups})
}

type wholesaleData struct {
	MailTo template.URL
}

func (r *Renderer) Wholesale(w io.Writer) error {
	mailTo := "mailto:" + r.ContactEmail + "?subject=" + marketplace.EncodeComponent("Опт: запрос условий")
	return r.render(w, PageWholesale, "Оптовым клиентам", wholesaleData{MailTo: template.URL(mailTo)})
}

// NotFound renders the not found page, id is the unknown group id or empty.
func (r *Renderer) NotFound(w io.Writer, id string) error {
	return r.render(w, PageNotFound, "Не найдено", id)
}
