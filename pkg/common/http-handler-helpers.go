package common

import (
	"net/http"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// SessionTracker is notified when a visitor without a session cookie arrives.
type SessionTracker interface {
	TrackSession(sessionId string, r *http.Request)
}

type Encoder = sonic.Encoder

func JsonHandler(trk SessionTracker, logger *zap.Logger, fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc Encoder) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")

		if err := fn(w, r, sessionId, sonic.ConfigStd.NewEncoder(w)); err != nil {
			logger.Error("error handling request", zap.String("path", r.URL.Path), zap.Error(err))
		}
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
