package web

import (
	"net/http"

	"github.com/vitrina-solutions/storefront-service/internal/service"
)

type authPage struct {
	Error string
	Email string
	Name  string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.templates.render(w, "login", s.view(r, authPage{}))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	result := s.sessions.Login(r.Context(), email, r.FormValue("password"))
	if !result.Success {
		w.WriteHeader(http.StatusUnauthorized)
		s.templates.render(w, "login", s.view(r, authPage{Error: result.Error, Email: email}))
		return
	}
	http.SetCookie(w, s.sessions.Cookie(result.Token))
	http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.templates.render(w, "register", s.view(r, authPage{}))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	in := service.RegisterInput{
		Email:           r.FormValue("email"),
		Name:            r.FormValue("name"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
	result := s.sessions.Register(r.Context(), in)
	if !result.Success {
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.templates.render(w, "register", s.view(r, authPage{Error: result.Error, Email: in.Email, Name: in.Name}))
		return
	}
	http.SetCookie(w, s.sessions.Cookie(result.Token))
	http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout()
	http.SetCookie(w, s.sessions.ExpiredCookie())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
