package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina-solutions/storefront-service/internal/model"
	"github.com/vitrina-solutions/storefront-service/internal/service"
)

type fakeLookup struct {
	tenant *model.Tenant
}

func (f *fakeLookup) GetByID(context.Context, uuid.UUID) (*model.Tenant, error) {
	return f.tenant, nil
}

func (f *fakeLookup) GetBySlug(_ context.Context, slug string) (*model.Tenant, error) {
	if f.tenant != nil && f.tenant.Slug == slug {
		return f.tenant, nil
	}
	return nil, nil
}

func (f *fakeLookup) GetDomainByName(context.Context, string) (*model.TenantDomain, error) {
	return nil, nil
}

type fakeConfigStore struct{}

func (fakeConfigStore) Read(context.Context) *model.SiteConfig {
	return &model.SiteConfig{
		SiteName: "Vitrina",
		Menu:     []model.MenuItem{{Title: "Inicio", Link: "/"}},
		Pages: map[string]model.PageContent{
			"home": {Title: "Bienvenido"},
		},
	}
}

func (fakeConfigStore) Update(context.Context, map[string]interface{}) error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	lookup := &fakeLookup{tenant: &model.Tenant{
		ID:     uuid.New(),
		Name:   "Tienda Default",
		Slug:   service.DefaultSlug,
		Status: "active",
	}}
	resolver := service.NewTenantResolver(lookup, "vitrina.pe")
	verifier := &service.StaticVerifier{Email: "admin@example.com", Password: "password", Name: "Admin"}
	sessions := service.NewSessionService([]byte("test-secret"), verifier, service.NewAuthStateNotifier())
	config := service.NewConfigService(fakeConfigStore{}, false)
	return NewServer(resolver, sessions, config, nil, nil, nil)
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "http://localhost"+path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"password"},
	})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == service.SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	assert.True(t, session.HttpOnly)
	assert.NotEmpty(t, session.Value)
}

func TestLoginFailureShowsSpanishMessage(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Usuario o contraseña inválidos")
	assert.Empty(t, rr.Result().Cookies())
}

func TestDashboardRedirectsAnonymousToLogin(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "http://localhost/dashboard", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestLoginPageRedirectsAuthenticatedVisitor(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"password"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	session := rr.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "http://localhost/login", nil)
	req.AddCookie(session)
	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestLogoutExpiresSessionCookie(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "http://localhost/logout", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == service.SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.Less(t, session.MaxAge, 0, "logout must expire the cookie")
}

func TestUnknownHostRendersNotFound(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "http://tienda-fantasma.example.net/", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
