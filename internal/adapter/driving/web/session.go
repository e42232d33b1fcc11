package web

import (
	"context"
	"net/http"
	"time"

	"github.com/ericfisherdev/iocpanel/internal/application"
	"github.com/ericfisherdev/iocpanel/internal/domain/model"
)

// SessionCookieName is the cookie carrying the session id.
const SessionCookieName = "iocpanel_session"

type sessionContextKey struct{}

// withSession returns a copy of ctx carrying the authorized session.
func withSession(ctx context.Context, s model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session placed in the context by RequireSession.
func SessionFromContext(ctx context.Context) (model.Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(model.Session)
	return s, ok
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, s model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookies.Secure,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookies.Secure,
	})
}

// RequireSession gates next behind a logged-in session. Unauthorized requests
// are redirected to the login page and next is never called.
func (h *Handler) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)

		decision, err := h.auth.Check(r.Context(), token)
		if err != nil {
			h.logger.Error("session check failed", "path", r.URL.Path, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		switch d := decision.(type) {
		case application.Authorized:
			next(w, r.WithContext(withSession(r.Context(), d.Session)))
			return
		case application.Unauthorized:
			h.logger.Debug("session gate redirect", "path", r.URL.Path, "reason", d.Reason)
		}

		if token != "" {
			h.clearSessionCookie(w)
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
