// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/iocpanel/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/iocpanel/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/iocpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/iocpanel/internal/application"
)

const (
	pageTitle          = "IOC Control Panel"
	invalidCredentials = "Invalid username or password"
)

// CookieOptions controls the attributes of cookies issued by the GUI.
type CookieOptions struct {
	Secure bool // set when served over HTTPS
}

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	auth      *application.AuthService
	dashboard *application.DashboardService
	cookies   CookieOptions
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	auth *application.AuthService,
	dashboard *application.DashboardService,
	cookies CookieOptions,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:      auth,
		dashboard: dashboard,
		cookies:   cookies,
		logger:    logger,
	}
}

// LoginPage renders the login form, or sends an already logged-in browser to the dashboard.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	decision, err := h.auth.Check(r.Context(), sessionToken(r))
	if err != nil {
		h.logger.Error("session check failed", "path", r.URL.Path, "error", err)
	} else if _, ok := decision.(application.Authorized); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, http.StatusOK, "", "")
}

// Login handles the login form submission.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	if !validateCSRF(r) {
		http.Error(w, "invalid or missing CSRF token", http.StatusForbidden)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	session, err := h.auth.Login(r.Context(), username, password)
	if errors.Is(err, application.ErrInvalidCredentials) {
		h.logger.Info("login rejected", "username", username, "remote_addr", r.RemoteAddr)
		h.renderLogin(w, r, http.StatusUnauthorized, username, invalidCredentials)
		return
	}
	if err != nil {
		h.logger.Error("login failed", "username", username, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Drop any session the browser already held so ids are never reused across logins.
	if old := sessionToken(r); old != "" {
		if err := h.auth.Logout(r.Context(), old); err != nil {
			h.logger.Warn("failed to drop previous session", "error", err)
		}
	}

	h.setSessionCookie(w, session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the current session and returns to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid or missing CSRF token", http.StatusForbidden)
		return
	}

	if err := h.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		h.logger.Error("logout failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Dashboard renders the main dashboard page. It must be wrapped by RequireSession.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	summary := h.dashboard.Summary(r.Context())
	data := toDashboardViewModel(session, summary, h.csrfToken(w, r), r.URL.Path)

	h.render(w, r, http.StatusOK, pages.Dashboard(data))
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, username, message string) {
	fallback := h.auth.Fallback()
	data := vm.LoginViewModel{
		Username:         username,
		Error:            message,
		CSRFToken:        h.csrfToken(w, r),
		ShowFallbackHint: fallback.Enabled,
		FallbackUsername: fallback.Username,
		FallbackPassword: fallback.Password,
	}

	h.render(w, r, status, pages.Login(data))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	layout := templates.Layout(pageTitle, component)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}
