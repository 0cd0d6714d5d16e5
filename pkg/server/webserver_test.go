package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/pages"
	"github.com/matst80/slask-catalog/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTracking struct {
	mu      sync.Mutex
	filters []types.Filters
	details []string
	session int
}

func (f *fakeTracking) TrackSession(string, *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session++
}

func (f *fakeTracking) TrackFilter(_ string, filters *types.Filters, _ int, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filters.Clone())
}

func (f *fakeTracking) TrackDetailView(_ string, id string, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details = append(f.details, id)
}

func (f *fakeTracking) Close() error {
	return nil
}

func newTestServer(t *testing.T, basePath string) *WebServer {
	t.Helper()
	store, err := catalog.NewMemoryStore(&types.CatalogData{
		GeneratedAt: time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC),
		Groups: []*types.ProductGroup{
			{Id: "kraft-s1", Type: types.TypeKraft, Series: "S1", Size: types.StringPtr("20x30"), Title: "S1 20x30",
				Tags: []string{"eco"}, VariantCount: 1, Variants: []types.ProductVariant{{Sku: "K-1", Ozon: "https://ozon.example/k1"}}},
			{Id: "plain-s2", Type: types.TypePlain, Series: "S2", Title: "S2", VariantCount: 1,
				Variants: []types.ProductVariant{{Sku: "P-1"}}},
		},
	})
	require.NoError(t, err)
	renderer, err := pages.NewRenderer(basePath, "sales@example.com", nil)
	require.NoError(t, err)
	return NewWebServer(store, renderer, nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func post(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/catalog", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCatalogPage(t *testing.T) {
	ws := newTestServer(t, "")
	trk := &fakeTracking{}
	ws.Tracking = trk
	rec := get(t, ws.Handler(), "/catalog?tag=eco")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Найдено: <b>1</b>")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.NotEmpty(t, rec.Result().Cookies(), "a session cookie is issued")
	require.Len(t, trk.filters, 1)
	assert.Equal(t, []string{"eco"}, trk.filters[0].Tags)
	assert.Equal(t, 1, trk.session)
}

func TestCatalogDrawer(t *testing.T) {
	ws := newTestServer(t, "")
	assert.NotContains(t, get(t, ws.Handler(), "/catalog").Body.String(), `class="filters open"`)
	assert.Contains(t, get(t, ws.Handler(), "/catalog?filters=1").Body.String(), `class="filters open"`)
}

func TestCatalogActions(t *testing.T) {
	ws := newTestServer(t, "")
	h := ws.Handler()

	cases := []struct {
		name     string
		form     url.Values
		location string
	}{
		{"toggle series", url.Values{"state": {"tag=eco"}, "action": {"toggle"}, "facet": {"series"}, "value": {"S1"}}, "/catalog?series=S1&tag=eco"},
		{"toggle off", url.Values{"state": {"tag=eco"}, "action": {"toggle"}, "facet": {"tags"}, "value": {"eco"}}, "/catalog"},
		{"type", url.Values{"action": {"type"}, "value": {"Крафт"}}, "/catalog?type=" + url.QueryEscape("Крафт")},
		{"unknown type", url.Values{"state": {"q=S1"}, "action": {"type"}, "value": {"Картон"}}, "/catalog?q=S1"},
		{"sort", url.Values{"action": {"sort"}, "value": {"variants"}}, "/catalog?sort=variants"},
		{"query", url.Values{"state": {"sort=size"}, "action": {"q"}, "value": {"  S2 "}}, "/catalog?q=S2&sort=size"},
		{"reset", url.Values{"state": {"q=S1&tag=eco"}, "action": {"reset"}}, "/catalog"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(t, h, tc.form)
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}
}

func TestShowMoreAction(t *testing.T) {
	ws := newTestServer(t, "")
	ws.PageStep = 1
	rec := post(t, ws.Handler(), url.Values{"action": {"more"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/catalog?shown=2", rec.Header().Get("Location"))

	page := get(t, ws.Handler(), "/catalog?shown=2")
	assert.NotContains(t, page.Body.String(), "Показать ещё")
	page = get(t, ws.Handler(), "/catalog")
	assert.Contains(t, page.Body.String(), "Показать ещё")
}

func TestUnknownAction(t *testing.T) {
	ws := newTestServer(t, "")
	rec := post(t, ws.Handler(), url.Values{"action": {"explode"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetailPage(t *testing.T) {
	ws := newTestServer(t, "")
	trk := &fakeTracking{}
	ws.Tracking = trk

	rec := get(t, ws.Handler(), "/catalog/kraft-s1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "K-1")
	assert.Contains(t, body, "https://www.ozon.ru/search/?text=S1%2020x30")
	assert.Equal(t, []string{"kraft-s1"}, trk.details)

	rec = get(t, ws.Handler(), "/catalog/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Страница не найдена")
	assert.Len(t, trk.details, 1)
}

func TestStaticPages(t *testing.T) {
	ws := newTestServer(t, "")
	assert.Equal(t, http.StatusOK, get(t, ws.Handler(), "/").Code)
	assert.Contains(t, get(t, ws.Handler(), "/wholesale").Body.String(), "mailto:sales@example.com")
	assert.Equal(t, http.StatusOK, get(t, ws.Handler(), "/static/site.css").Code)
	assert.Equal(t, http.StatusNotFound, get(t, ws.Handler(), "/nothing/here").Code)
}

func TestBasePath(t *testing.T) {
	ws := newTestServer(t, "/shop")
	h := ws.Handler()

	rec := get(t, h, "/shop/catalog")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/shop/catalog/kraft-s1"`)
	assert.Equal(t, http.StatusMovedPermanently, get(t, h, "/shop").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/catalog").Code)
}

func TestApiGroups(t *testing.T) {
	ws := newTestServer(t, "")
	rec := get(t, ws.Handler(), "/api/groups?sort=series&pageSize=1&page=1")
	require.Equal(t, http.StatusOK, rec.Code)

	res := GroupsResponse{}
	require.NoError(t, sonic.ConfigStd.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Page)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "plain-s2", res.Groups[0].Id)

	rec = get(t, ws.Handler(), "/api/groups?page=5")
	res = GroupsResponse{}
	require.NoError(t, sonic.ConfigStd.Unmarshal(rec.Body.Bytes(), &res))
	assert.Empty(t, res.Groups)

	rec = get(t, ws.Handler(), "/api/groups?size=20x30&pageSize=5")
	res = GroupsResponse{}
	require.NoError(t, sonic.ConfigStd.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Total, "size stays a filter next to paging")
	assert.Equal(t, 5, res.PageSize)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "kraft-s1", res.Groups[0].Id)
}

func TestApiFacetsAreCached(t *testing.T) {
	ws := newTestServer(t, "")
	ws.Cache = NewCache("", "", 0, time.Minute)
	defer ws.Cache.Close()

	first := get(t, ws.Handler(), "/api/facets?tag=eco&unknown=1")
	require.Equal(t, http.StatusOK, first.Code)
	res := FacetsResponse{}
	require.NoError(t, sonic.ConfigStd.Unmarshal(first.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Counts[types.FacetType][string(types.TypeKraft)])
	assert.Equal(t, 1, res.Counts[types.FacetTags]["eco"])
	assert.Equal(t, []string{"S1", "S2"}, res.Options.Series)

	key := FacetKey(ws.Store.Snapshot().GeneratedAt(), "tag=eco")
	cached, ok := ws.Cache.Get(t.Context(), key)
	require.True(t, ok)
	assert.Equal(t, first.Body.Bytes(), cached)

	second := get(t, ws.Handler(), "/api/facets?tag=eco")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestApiFacetsWithUnreachableRedis(t *testing.T) {
	ws := newTestServer(t, "")
	ws.Cache = NewCache("127.0.0.1:1", "", 0, time.Minute)
	defer ws.Cache.Close()

	rec := get(t, ws.Handler(), "/api/facets?type="+url.QueryEscape("Крафт"))
	require.Equal(t, http.StatusOK, rec.Code)
	res := FacetsResponse{}
	require.NoError(t, sonic.ConfigStd.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Total)
	assert.NotContains(t, rec.Body.String(), "connection refused")

	key := FacetKey(ws.Store.Snapshot().GeneratedAt(), "type="+url.QueryEscape("Крафт"))
	_, ok := ws.Cache.Get(t.Context(), key)
	assert.True(t, ok, "the local copy is kept")
}

func TestApiGroupAndLinks(t *testing.T) {
	ws := newTestServer(t, "")
	rec := get(t, ws.Handler(), "/api/group/kraft-s1")
	require.Equal(t, http.StatusOK, rec.Code)
	g := types.ProductGroup{}
	require.NoError(t, sonic.ConfigStd.Unmarshal(rec.Body.Bytes(), &g))
	assert.Equal(t, "20x30", g.GetSize())

	rec = get(t, ws.Handler(), "/api/group/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")

	rec = get(t, ws.Handler(), "/api/links/kraft-s1")
	require.Equal(t, http.StatusOK, rec.Code)
	links := LinksResponse{}
	require.NoError(t, sonic.ConfigStd.Unmarshal(rec.Body.Bytes(), &links))
	assert.Equal(t, "S1 20x30", links.Query)
	assert.Len(t, links.Search, 3)
	assert.Equal(t, "https://ozon.example/k1", links.Variants["K-1"][0].Url)
	assert.NotContains(t, links.Variants, "P-1")
}

func TestOptionsRequest(t *testing.T) {
	ws := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodOptions, "/api/facets", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	ws := newTestServer(t, "")
	rec := get(t, ws.DebugHandler(false), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	ws.OnCatalogChange(ws.Store.Snapshot())
	rec = get(t, ws.DebugHandler(false), "/metrics")
	assert.Contains(t, rec.Body.String(), "storefront_catalog_groups 2")
}

func TestRequestLocation(t *testing.T) {
	loc := newRequestLocation("/catalog", url.Values{"q": {"S1"}})
	assert.Equal(t, "/catalog?q=S1", loc.Target())
	loc.Replace("/catalog?tag=eco")
	assert.Equal(t, "/catalog?tag=eco", loc.Target())
	assert.Equal(t, []string{"eco"}, loc.Query()["tag"])
}
