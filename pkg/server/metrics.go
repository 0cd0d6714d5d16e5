package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	noSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_searches_total",
		Help: "The total number of rendered catalog views",
	})
	facetRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_facets_total",
		Help: "The total number of facet count requests",
	})
	detailViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_detail_views_total",
		Help: "The total number of product group detail views",
	})
	notFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_not_found_total",
		Help: "The total number of requests for unknown product groups",
	})
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cache_hits_total",
		Help: "The total number of facet responses served from cache",
	})
	catalogGroups = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_catalog_groups",
		Help: "The number of product groups in the loaded catalog",
	})
	catalogReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_catalog_reloads_total",
		Help: "The total number of catalog loads",
	})
)
