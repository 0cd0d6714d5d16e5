package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/pages"
	"github.com/matst80/slask-catalog/pkg/types"
)

func (ws *WebServer) Home(w http.ResponseWriter, r *http.Request) {
	snap := ws.Store.Snapshot()
	publicHeaders(w, r, false, "300")
	ws.writeHtml(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return ws.Renderer.Home(buf, len(snap.Groups()))
	})
}

func (ws *WebServer) Wholesale(w http.ResponseWriter, r *http.Request) {
	publicHeaders(w, r, false, "3600")
	ws.writeHtml(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return ws.Renderer.Wholesale(buf)
	})
}

func (ws *WebServer) NotFound(w http.ResponseWriter, r *http.Request) {
	ws.renderNotFound(w, r, "")
}

func (ws *WebServer) renderNotFound(w http.ResponseWriter, r *http.Request, id string) {
	notFound.Inc()
	defaultHeaders(w, r, false, "60")
	ws.writeHtml(w, r, http.StatusNotFound, func(buf *bytes.Buffer) error {
		return ws.Renderer.NotFound(buf, id)
	})
}

func (ws *WebServer) catalogPath() string {
	return ws.Renderer.Link("/catalog")
}

func (ws *WebServer) Catalog(w http.ResponseWriter, r *http.Request) {
	snap := ws.Store.Snapshot()
	query := r.URL.Query()
	v := ws.newView(snap, newRequestLocation(ws.catalogPath(), query))
	if shown, err := strconv.Atoi(query.Get(pages.ShownKey)); err == nil {
		v.SetVisible(shown)
	}
	if query.Get(pages.DrawerKey) != "" {
		v.Drawer.Open()
	}
	noSearches.Inc()

	sessionId := common.HandleSessionCookie(ws.sessionTracker(), w, r)
	if ws.Tracking != nil {
		filters := v.Filters()
		ws.Tracking.TrackFilter(sessionId, &filters, v.Found(), r)
	}

	defaultHeaders(w, r, false, "60")
	ws.writeHtml(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return ws.Renderer.Catalog(buf, ws.Renderer.NewCatalogPage(v, ws.PageStep))
	})
}

// CatalogAction applies one sidebar action posted by the catalog forms and
// redirects to the resulting location.
func (ws *WebServer) CatalogAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap := ws.Store.Snapshot()
	state, err := url.ParseQuery(r.PostForm.Get("state"))
	if err != nil {
		state = url.Values{}
	}
	loc := newRequestLocation(ws.catalogPath(), state)
	v := ws.newView(snap, loc)
	if shown, err := strconv.Atoi(r.PostForm.Get(pages.ShownKey)); err == nil {
		v.SetVisible(shown)
	}

	value := r.PostForm.Get("value")
	switch r.PostForm.Get("action") {
	case "toggle":
		v.Toggle(types.FacetName(r.PostForm.Get("facet")), value)
	case "type":
		v.SetType(types.ProductType(value))
	case "sort":
		v.SetSort(types.ParseSortMode(value))
	case "q":
		v.SetQuery(value)
	case "reset":
		v.Reset()
	case "more":
		v.ShowMore()
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, pages.WithShown(loc.Target(), v.VisibleCount(), ws.PageStep), http.StatusSeeOther)
}

func (ws *WebServer) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	g, err := ws.Store.Snapshot().Get(id)
	if errors.Is(err, catalog.ErrNotFound) {
		ws.renderNotFound(w, r, id)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	detailViews.Inc()
	if ws.Tracking != nil {
		sessionId := common.HandleSessionCookie(ws.Tracking, w, r)
		ws.Tracking.TrackDetailView(sessionId, id, r)
	}
	publicHeaders(w, r, false, "300")
	ws.writeHtml(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return ws.Renderer.Detail(buf, g)
	})
}
