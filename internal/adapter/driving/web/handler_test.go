package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/iocpanel/internal/application"
	"github.com/ericfisherdev/iocpanel/internal/domain/model"
	"github.com/ericfisherdev/iocpanel/internal/domain/port/driven"
)

// --- Mock implementations ---

type mockUserStore struct {
	users map[string]model.User
	err   error
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type mockSessionStore struct {
	sessions map[string]model.Session
	getErr   error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[string]model.Session{}}
}

func (m *mockSessionStore) Create(_ context.Context, s model.Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

type mockEntityStore struct {
	counts map[model.EntityKind]int
}

func (m *mockEntityStore) CountEnabled(_ context.Context, kind model.EntityKind) (int, error) {
	n, ok := m.counts[kind]
	if !ok {
		return 0, driven.ErrTableMissing
	}
	return n, nil
}

// --- Test helpers ---

const testCSRF = "test-csrf-token"

type testEnv struct {
	users    *mockUserStore
	sessions *mockSessionStore
	entities *mockEntityStore
	mux      *http.ServeMux
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:    &mockUserStore{err: driven.ErrTableMissing},
		sessions: newMockSessionStore(),
		entities: &mockEntityStore{},
		mux:      http.NewServeMux(),
	}

	board, err := application.DefaultStatusBoard()
	require.NoError(t, err)

	logger := discardLogger()
	auth := application.NewAuthService(env.users, env.sessions, application.AuthOptions{
		Fallback: application.FallbackCredential{Enabled: true, Username: "admin", Password: "admin123"},
	}, logger)
	dashboard := application.NewDashboardService(env.entities, board, logger)

	RegisterRoutes(env.mux, NewHandler(auth, dashboard, CookieOptions{}, logger))
	return env
}

func (e *testEnv) addSession(id string, expiresAt time.Time) {
	e.sessions.sessions[id] = model.Session{
		ID:        id,
		UserID:    0,
		Username:  "admin",
		Role:      model.RoleSuperAdmin,
		LoggedIn:  true,
		CreatedAt: time.Now().Add(-time.Minute),
		ExpiresAt: expiresAt,
	}
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func loginForm(username, password string) url.Values {
	return url.Values{
		"csrf_token": {testCSRF},
		"username":   {username},
		"password":   {password},
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// --- Session gate ---

func TestDashboard_NoSessionRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.NotContains(t, rec.Body.String(), "Active Modules")
}

func TestDashboard_UnknownSessionClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	rec := env.serve(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookie := findCookie(rec, SessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestDashboard_ExpiredSessionRedirects(t *testing.T) {
	env := newTestEnv(t)
	env.addSession("old", time.Now().Add(-time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "old"})
	rec := env.serve(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.NotContains(t, env.sessions.sessions, "old")
}

func TestDashboard_SessionStoreErrorIs500(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.getErr = errors.New("disk I/O error")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
	rec := env.serve(req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDashboard_MissingTablesRenderZeroCounts(t *testing.T) {
	env := newTestEnv(t)
	env.addSession("s1", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "s1"})
	rec := env.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Equal(t, 4, strings.Count(body, `<span class="stat-value">0</span>`))
	for _, label := range []string{"Active Modules", "Protocols", "API Endpoints", "Notification Channels"} {
		assert.Contains(t, body, label)
	}
	assert.Contains(t, body, `<span class="username">admin</span>`)
	assert.Contains(t, body, "Super Admin")
	assert.Contains(t, body, `<a href="/" aria-current="page">Dashboard</a>`)
	assert.Contains(t, body, "System Status")
	assert.Contains(t, body, "Recent Activity")
}

func TestDashboard_RendersStoredCounts(t *testing.T) {
	env := newTestEnv(t)
	env.entities.counts = map[model.EntityKind]int{
		model.EntityModules:      3,
		model.EntityProtocols:    5,
		model.EntityAPIEndpoints: 12,
	}
	env.addSession("s1", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "s1"})
	rec := env.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<span class="stat-value">3</span>`)
	assert.Contains(t, body, `<span class="stat-value">5</span>`)
	assert.Contains(t, body, `<span class="stat-value">12</span>`)
	assert.Contains(t, body, `<span class="stat-value">0</span>`)
}

// --- Login ---

func TestLoginPage_RendersForm(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, "Default credentials: <code>admin</code> / <code>admin123</code>")
	assert.NotContains(t, body, "alert-error")

	csrf := findCookie(rec, "csrf_token")
	require.NotNil(t, csrf)
	assert.Contains(t, body, `value="`+csrf.Value+`"`)
}

func TestLoginPage_RedirectsWhenLoggedIn(t *testing.T) {
	env := newTestEnv(t)
	env.addSession("s1", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "s1"})
	rec := env.serve(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLogin_FallbackWhenUserTableMissing(t *testing.T) {
	env := newTestEnv(t)

	req := postForm("/login", loginForm("admin", "admin123"))
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRF})
	rec := env.serve(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookie := findCookie(rec, SessionCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	stored, ok := env.sessions.sessions[cookie.Value]
	require.True(t, ok)
	assert.Equal(t, application.FallbackUserID, stored.UserID)
	assert.Equal(t, model.RoleSuperAdmin, stored.Role)
	assert.True(t, stored.LoggedIn)
}

func TestLogin_SessionCookieOpensDashboard(t *testing.T) {
	env := newTestEnv(t)

	req := postForm("/login", loginForm("admin", "admin123"))
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRF})
	rec := env.serve(req)
	cookie := findCookie(rec, SessionCookieName)
	require.NotNil(t, cookie)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = env.serve(req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_StoredUserWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	env.users.err = nil
	env.users.users = map[string]model.User{
		"alice": {ID: 7, Username: "alice", PasswordHash: string(hash), Role: model.RoleAdmin},
	}

	req := postForm("/login", loginForm("alice", "wrong"))
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRF})
	rec := env.serve(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password")
	assert.Contains(t, rec.Body.String(), `value="alice"`)
	assert.Nil(t, findCookie(rec, SessionCookieName))
	assert.Empty(t, env.sessions.sessions)
}

func TestLogin_UnknownUserSameMessage(t *testing.T) {
	env := newTestEnv(t)
	env.users.err = nil
	env.users.users = map[string]model.User{}

	req := postForm("/login", loginForm("mallory", "guess"))
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRF})
	rec := env.serve(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password")
	assert.Nil(t, findCookie(rec, SessionCookieName))
}

func TestLogin_StoredUserSucceeds(t *testing.T) {
	env := newTestEnv(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	env.users.err = nil
	env.users.users = map[string]model.User{
		"alice": {ID: 7, Username: "alice", PasswordHash: string(hash), Role: model.RoleAdmin},
	}

	req := postForm("/login", loginForm("alice", "correct horse"))
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRF})
	rec := env.serve(req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookie := findCookie(rec, SessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, int64(7), env.sessions.sessions[cookie.Value].UserID)
}

func TestLogin_ReplacesPreviousSession(t *testing.T) {
	env := newTestEnv(t)
	env.addSession("previous", time.Now().Add(time.Hour))

	req := postForm("/login", loginForm("admin", "admin123"))
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRF})
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "previous"})
	rec := env.serve(req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotContains(t, env.sessions.sessions, "previous")
	assert.Len(t, env.sessions.sessions, 1)
}

func TestLogin_RejectsMissingCSRF(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(postForm("/login", loginForm("admin", "admin123")))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, env.sessions.sessions)
}

func TestLogin_RejectsMismatchedCSRF(t *testing.T) {
	env := newTestEnv(t)

	req := postForm("/login", loginForm("admin", "admin123"))
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "something-else"})
	rec := env.serve(req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogin_FallbackDisabled(t *testing.T) {
	board, err := application.DefaultStatusBoard()
	require.NoError(t, err)

	sessions := newMockSessionStore()
	logger := discardLogger()
	auth := application.NewAuthService(&mockUserStore{err: driven.ErrTableMissing}, sessions, application.AuthOptions{}, logger)
	dashboard := application.NewDashboardService(&mockEntityStore{}, board, logger)
	mux := http.NewServeMux()
	RegisterRoutes(mux, NewHandler(auth, dashboard, CookieOptions{}, logger))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.NotContains(t, rec.Body.String(), "Default credentials")

	req := postForm("/login", loginForm("admin", "admin123"))
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRF})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, sessions.sessions)
}

// --- Logout ---

func TestLogout_DestroysSession(t *testing.T) {
	env := newTestEnv(t)
	env.addSession("s1", time.Now().Add(time.Hour))

	req := postForm("/logout", url.Values{"csrf_token": {testCSRF}})
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: testCSRF})
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "s1"})
	rec := env.serve(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Empty(t, env.sessions.sessions)

	cookie := findCookie(rec, SessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestLogout_RequiresCSRF(t *testing.T) {
	env := newTestEnv(t)
	env.addSession("s1", time.Now().Add(time.Hour))

	req := postForm("/logout", url.Values{})
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "s1"})
	rec := env.serve(req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, env.sessions.sessions, "s1")
}

// --- Static and view models ---

func TestStaticAssets(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/static/css/panel.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestUnservedNavPageIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/modules", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoleLabel(t *testing.T) {
	tests := []struct {
		role model.Role
		want string
	}{
		{model.RoleSuperAdmin, "Super Admin"},
		{model.RoleAdmin, "Admin"},
		{model.RoleOperator, "Operator"},
		{model.Role(""), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, roleLabel(tt.role))
		})
	}
}

func TestToNavViewModels_MarksOnlyCurrentPath(t *testing.T) {
	links := toNavViewModels("/")

	require.Len(t, links, len(navLinks))
	active := 0
	for _, l := range links {
		if l.Active {
			active++
			assert.Equal(t, "/", l.Path)
		}
	}
	assert.Equal(t, 1, active)
	assert.False(t, navLinks[0].Active)
}

func TestToDashboardViewModel_UnknownKindUsesRawName(t *testing.T) {
	d := application.Dashboard{
		Counts: []model.EntityCount{{Kind: model.EntityKind("widgets"), Count: 2}},
		Activity: []model.ActivityItem{
			{When: "now", Text: "**bold** move"},
		},
	}

	data := toDashboardViewModel(model.Session{Username: "bob", Role: model.RoleOperator}, d, "tok", "/")

	require.Len(t, data.Stats, 1)
	assert.Equal(t, "widgets", data.Stats[0].Label)
	assert.Equal(t, "2", data.Stats[0].Value)
	assert.Equal(t, "Operator", data.RoleLabel)
	assert.Equal(t, "tok", data.CSRFToken)
	require.Len(t, data.Activity, 1)
	assert.Contains(t, data.Activity[0].HTML, "<strong>bold</strong>")
}
