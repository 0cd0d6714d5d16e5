package tracking

import (
	"net/http"

	"github.com/matst80/slask-catalog/pkg/types"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackFilter(sessionId string, filters *types.Filters, found int, r *http.Request)
	TrackDetailView(sessionId string, groupId string, r *http.Request)
	Close() error
}
