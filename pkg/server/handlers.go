package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/facet"
	"github.com/matst80/slask-catalog/pkg/marketplace"
	"github.com/matst80/slask-catalog/pkg/query"
	"github.com/matst80/slask-catalog/pkg/types"
)

func codecFor(snap *catalog.Snapshot) *query.Codec {
	return &query.Codec{KnownType: snap.IsKnownType}
}

// Paging keys of the groups api, kept apart from the filter keys.
const (
	PageKey     = "page"
	PageSizeKey = "pageSize"
)

func intParam(r *http.Request, key string, fallback int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v >= 0 {
		return v
	}
	return fallback
}

func (ws *WebServer) Groups(w http.ResponseWriter, r *http.Request, sessionId string, enc common.Encoder) error {
	snap := ws.Store.Snapshot()
	filters := codecFor(snap).Decode(r.URL.Query())
	page := intParam(r, PageKey, 0)
	pageSize := intParam(r, PageSizeKey, ws.PageStep)
	if pageSize == 0 {
		pageSize = ws.PageStep
	}
	noSearches.Inc()

	matching := facet.ApplyFilters(snap.Groups(), filters)
	start := min(page*pageSize, len(matching))
	end := min(start+pageSize, len(matching))
	if ws.Tracking != nil {
		ws.Tracking.TrackFilter(sessionId, &filters, len(matching), r)
	}

	defaultHeaders(w, r, true, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(GroupsResponse{
		Groups:   matching[start:end],
		Total:    len(matching),
		Page:     page,
		PageSize: pageSize,
	})
}

func (ws *WebServer) Facets(w http.ResponseWriter, r *http.Request, sessionId string, enc common.Encoder) error {
	snap := ws.Store.Snapshot()
	codec := codecFor(snap)
	filters := codec.Decode(r.URL.Query())
	facetRequests.Inc()

	build := func() ([]byte, error) {
		result := facet.Evaluate(snap.Groups(), filters)
		return sonic.ConfigStd.Marshal(FacetsResponse{
			Filters: result.Filters,
			Total:   result.Total,
			Counts:  result.Counts,
			Options: snap.Options,
		})
	}
	var data []byte
	var err error
	if ws.Cache != nil {
		data, err = ws.Cache.Handle(r.Context(), FacetKey(snap.GeneratedAt(), codec.Encode(filters).Encode()), build)
	} else {
		data, err = build()
	}
	if err != nil {
		http.Error(w, "could not build facets", http.StatusInternalServerError)
		return err
	}
	defaultHeaders(w, r, true, "120")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

func (ws *WebServer) lookup(w http.ResponseWriter, r *http.Request, enc common.Encoder) (*types.ProductGroup, bool, error) {
	g, err := ws.Store.Snapshot().Get(r.PathValue("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		notFound.Inc()
		genericHeaders(w, r, true)
		w.WriteHeader(http.StatusNotFound)
		return nil, false, enc.Encode(ErrorResponse{Error: err.Error()})
	}
	return g, err == nil, err
}

func (ws *WebServer) Group(w http.ResponseWriter, r *http.Request, sessionId string, enc common.Encoder) error {
	g, ok, err := ws.lookup(w, r, enc)
	if !ok {
		return err
	}
	detailViews.Inc()
	if ws.Tracking != nil {
		ws.Tracking.TrackDetailView(sessionId, g.Id, r)
	}
	publicHeaders(w, r, true, "300")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(g)
}

func (ws *WebServer) Links(w http.ResponseWriter, r *http.Request, sessionId string, enc common.Encoder) error {
	g, ok, err := ws.lookup(w, r, enc)
	if !ok {
		return err
	}
	variants := make(map[string][]marketplace.Link, len(g.Variants))
	for _, v := range g.Variants {
		if links := marketplace.VariantLinks(v); len(links) > 0 {
			variants[v.Sku] = links
		}
	}
	publicHeaders(w, r, true, "300")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(LinksResponse{
		Query:    marketplace.SearchQuery(g),
		Search:   ws.Renderer.Linker.Links(g),
		Variants: variants,
	})
}
