// Package server is the live storefront: HTML pages, the JSON api used by
// client side rendering, and the debug listener with health and metrics.
package server

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/pages"
	"github.com/matst80/slask-catalog/pkg/tracking"
	"github.com/matst80/slask-catalog/pkg/types"
	"github.com/matst80/slask-catalog/pkg/view"
)

type WebServer struct {
	Store    *catalog.Store
	Renderer *pages.Renderer
	Logger   *zap.Logger
	// Cache and Tracking are optional.
	Cache    *Cache
	Tracking tracking.Tracking
	PageStep int
	// Sections overrides the initial open state of sidebar sections.
	Sections map[string]bool
	// ImageDir is served under /img/ when set.
	ImageDir string
}

func NewWebServer(store *catalog.Store, renderer *pages.Renderer, logger *zap.Logger) *WebServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebServer{
		Store:    store,
		Renderer: renderer,
		Logger:   logger,
		PageStep: view.DefaultPageStep,
		Sections: map[string]bool{},
	}
}

// OnCatalogChange updates the catalog gauges, register it as the store's
// change handler.
func (ws *WebServer) OnCatalogChange(s *catalog.Snapshot) {
	catalogGroups.Set(float64(len(s.Groups())))
	catalogReloads.Inc()
}

func (ws *WebServer) sessionTracker() common.SessionTracker {
	if ws.Tracking == nil {
		return nil
	}
	return ws.Tracking
}

func (ws *WebServer) newView(snap *catalog.Snapshot, loc view.Location) *view.CatalogView {
	v := view.NewCatalogView(loc, snap.Groups(), view.Options{
		PageStep: ws.PageStep,
		Options:  snap.Options,
	})
	for name, open := range ws.Sections {
		v.Sections.SetOpen(types.FacetName(name), open)
	}
	return v
}

func (ws *WebServer) ClientHandler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("GET /{$}", ws.Home)
	srv.HandleFunc("GET /wholesale", ws.Wholesale)
	srv.HandleFunc("GET /catalog", ws.Catalog)
	srv.HandleFunc("POST /catalog", ws.CatalogAction)
	srv.HandleFunc("GET /catalog/{id}", ws.Detail)
	srv.HandleFunc("GET /static/site.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(pages.Stylesheet)
	})
	if ws.ImageDir != "" {
		srv.Handle("GET /img/", http.StripPrefix("/img/", http.FileServer(http.Dir(ws.ImageDir))))
	}

	srv.HandleFunc("/api/groups", common.JsonHandler(ws.sessionTracker(), ws.Logger, ws.Groups))
	srv.HandleFunc("/api/facets", common.JsonHandler(ws.sessionTracker(), ws.Logger, ws.Facets))
	srv.HandleFunc("/api/group/{id}", common.JsonHandler(ws.sessionTracker(), ws.Logger, ws.Group))
	srv.HandleFunc("/api/links/{id}", common.JsonHandler(ws.sessionTracker(), ws.Logger, ws.Links))

	srv.HandleFunc("/", ws.NotFound)
	return srv
}

// Handler mounts the client handler below the configured base path.
func (ws *WebServer) Handler() http.Handler {
	mux := ws.ClientHandler()
	base := strings.TrimSuffix(ws.Renderer.BasePath, "/")
	if base == "" {
		return mux
	}
	outer := http.NewServeMux()
	outer.Handle(base+"/", http.StripPrefix(base, mux))
	outer.Handle(base, http.RedirectHandler(base+"/", http.StatusMovedPermanently))
	return outer
}

func (ws *WebServer) DebugHandler(enableProfiling bool) *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if ws.Store.Snapshot() == nil {
			http.Error(w, "catalog not loaded", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.Handle("/metrics", promhttp.Handler())
	if enableProfiling {
		srv.HandleFunc("/debug/pprof/", pprof.Index)
		srv.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		srv.HandleFunc("/debug/pprof/profile", pprof.Profile)
		srv.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		srv.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return srv
}
