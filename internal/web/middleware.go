package web

import (
	"context"
	"net/http"

	"github.com/vitrina-solutions/storefront-service/internal/service"
)

// withSession reads the session cookie, and when it verifies, re-signs
// it with the expiration pushed forward so the session slides on every
// matched request. Absent or invalid cookies pass through unmodified.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(service.SessionCookieName)
		if err == nil {
			if fresh, id := s.sessions.Refresh(cookie.Value); id != nil {
				http.SetCookie(w, s.sessions.Cookie(fresh))
				r = r.WithContext(context.WithValue(r.Context(), ctxUser, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// withTenant resolves the request hostname to a tenant. No tenant means
// the not-found page; a resolution transport failure fails the render.
func (s *Server) withTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant, err := s.resolver.Resolve(r.Context(), r.Host)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		if tenant == nil {
			s.renderNotFound(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxTenant, tenant)))
	})
}

// requireSession guards the admin surface: without a valid session the
// request is redirected to the login page.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// redirectIfAuthed sends already-authenticated visitors of the auth
// pages to the admin landing page.
func (s *Server) redirectIfAuthed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r.Context()) != nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
