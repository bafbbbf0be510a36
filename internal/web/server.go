package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-solutions/storefront-service/internal/model"
	"github.com/vitrina-solutions/storefront-service/internal/service"
	"github.com/vitrina-solutions/storefront-service/internal/store"
)

// Server wires the storefront and admin handlers onto a chi router.
type Server struct {
	router chi.Router

	resolver      *service.TenantResolver
	sessions      *service.SessionService
	config        *service.ConfigService
	products      *store.ProductRepository
	reclamaciones *service.ReclamacionService
	recStore      *store.ReclamacionRepository

	templates *templateSet
}

func NewServer(
	resolver *service.TenantResolver,
	sessions *service.SessionService,
	config *service.ConfigService,
	products *store.ProductRepository,
	reclamaciones *service.ReclamacionService,
	recStore *store.ReclamacionRepository,
) *Server {
	s := &Server{
		resolver:      resolver,
		sessions:      sessions,
		config:        config,
		products:      products,
		reclamaciones: reclamaciones,
		recStore:      recStore,
		templates:     loadTemplates(),
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.RealIP,
		s.withSession,
		s.withTenant,
	)

	// Storefront.
	r.Get("/", s.handleHome)
	r.Get("/catalogo", s.handleCatalog)
	r.Get("/producto/{id}", s.handleProduct)
	r.Get("/carrito", s.handleCart)
	r.Post("/carrito", s.handleCartAdd)
	r.Post("/carrito/eliminar", s.handleCartRemove)
	r.Get("/checkout", s.handleCheckout)
	r.Get("/nosotros", s.handleStaticPage("about"))
	r.Get("/contacto", s.handleStaticPage("contact"))
	r.Get("/terminos", s.handleStaticPage("legal"))
	r.Get("/libro-de-reclamaciones", s.handleReclamacionForm)
	r.Post("/libro-de-reclamaciones", s.handleReclamacionSubmit)

	// Auth.
	r.Group(func(r chi.Router) {
		r.Use(s.redirectIfAuthed)
		r.Get("/login", s.handleLoginForm)
		r.Post("/login", s.handleLogin)
		r.Get("/registro", s.handleRegisterForm)
		r.Post("/registro", s.handleRegister)
	})
	r.Get("/logout", s.handleLogout)

	// Admin.
	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/dashboard", s.handleDashboard)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/productos", s.handleAdminProducts)
			r.Get("/productos/nuevo", s.handleAdminProductForm)
			r.Post("/productos/nuevo", s.handleAdminProductCreate)
			r.Get("/productos/{id}", s.handleAdminProductForm)
			r.Post("/productos/{id}", s.handleAdminProductUpdate)
			r.Post("/productos/{id}/eliminar", s.handleAdminProductDelete)
			r.Get("/configuracion", s.handleAdminConfigForm)
			r.Post("/configuracion", s.handleAdminConfigSave)
			r.Get("/tema", s.handleAdminThemeForm)
			r.Post("/tema", s.handleAdminThemeSave)
			r.Get("/reclamaciones", s.handleAdminReclamaciones)
		})
	})

	s.router = r
}

type ctxKey int

const (
	ctxTenant ctxKey = iota
	ctxUser
)

func tenantFrom(ctx context.Context) *model.Tenant {
	t, _ := ctx.Value(ctxTenant).(*model.Tenant)
	return t
}

func userFrom(ctx context.Context) *model.UserIdentity {
	u, _ := ctx.Value(ctxUser).(*model.UserIdentity)
	return u
}

// viewData is the payload every template receives.
type viewData struct {
	Config *model.SiteConfig
	Tenant *model.Tenant
	User   *model.UserIdentity
	Path   string
	Page   interface{}
}

func (s *Server) view(r *http.Request, page interface{}) viewData {
	return viewData{
		Config: s.config.Get(r.Context()),
		Tenant: tenantFrom(r.Context()),
		User:   userFrom(r.Context()),
		Path:   r.URL.Path,
		Page:   page,
	}
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	s.templates.render(w, "notfound", s.view(r, nil))
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).Str("path", r.URL.Path).Msg("page render failed")
	http.Error(w, "error interno", http.StatusInternalServerError)
}
