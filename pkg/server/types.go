package server

import (
	"github.com/matst80/slask-catalog/pkg/facet"
	"github.com/matst80/slask-catalog/pkg/marketplace"
	"github.com/matst80/slask-catalog/pkg/types"
)

type GroupsResponse struct {
	Groups   []*types.ProductGroup `json:"groups"`
	Total    int                   `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
}

type FacetsResponse struct {
	Filters types.Filters                      `json:"filters"`
	Total   int                                `json:"total"`
	Counts  map[types.FacetName]map[string]int `json:"counts"`
	Options *facet.Options                     `json:"options"`
}

type LinksResponse struct {
	Query    string                        `json:"query"`
	Search   []marketplace.Link            `json:"search"`
	Variants map[string][]marketplace.Link `json:"variants"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
