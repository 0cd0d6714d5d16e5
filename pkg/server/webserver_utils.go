package server

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

func defaultHeaders(w http.ResponseWriter, r *http.Request, isJson bool, cacheTime string) {
	w.Header().Set("Cache-Control", "private, stale-while-revalidate="+cacheTime)
	genericHeaders(w, r, isJson)
}

func genericHeaders(w http.ResponseWriter, r *http.Request, isJson bool) {
	if isJson {
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	} else {
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	}
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
}

func publicHeaders(w http.ResponseWriter, r *http.Request, isJson bool, cacheTime string) {
	w.Header().Set("Cache-Control", "public, max-age="+cacheTime)
	genericHeaders(w, r, isJson)
}

// writeHtml renders into a buffer first so template errors become a 500
// instead of a half written page.
func (ws *WebServer) writeHtml(w http.ResponseWriter, r *http.Request, status int, render func(*bytes.Buffer) error) {
	buf := &bytes.Buffer{}
	if err := render(buf); err != nil {
		ws.Logger.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// requestLocation is the Location of a catalog view built for one request.
// Replace records the target that the client is redirected to.
type requestLocation struct {
	path     string
	query    url.Values
	replaced string
}

func newRequestLocation(path string, query url.Values) *requestLocation {
	return &requestLocation{path: path, query: query}
}

func (l *requestLocation) Path() string {
	return l.path
}

func (l *requestLocation) Query() url.Values {
	ret := make(url.Values, len(l.query))
	for k, v := range l.query {
		ret[k] = append([]string(nil), v...)
	}
	return ret
}

func (l *requestLocation) Replace(target string) {
	l.replaced = target
	path, rawQuery, _ := strings.Cut(target, "?")
	l.path = path
	if q, err := url.ParseQuery(rawQuery); err == nil {
		l.query = q
	} else {
		l.query = url.Values{}
	}
}

// Target is the location the client should end up on.
func (l *requestLocation) Target() string {
	if l.replaced != "" {
		return l.replaced
	}
	if len(l.query) == 0 {
		return l.path
	}
	return l.path + "?" + l.query.Encode()
}
