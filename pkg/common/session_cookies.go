package common

import (
	"net/http"

	"github.com/google/uuid"
)

const SessionCookie = "sid"

func setSessionCookie(w http.ResponseWriter, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionId,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 30,
		Path:     "/",
	})
}

// HandleSessionCookie returns the visitor's session id, issuing a new one
// when the cookie is missing or not a valid uuid.
func HandleSessionCookie(tracking SessionTracker, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	sessionId := uuid.NewString()
	if tracking != nil {
		tracking.TrackSession(sessionId, r)
	}
	setSessionCookie(w, sessionId)
	return sessionId
}
