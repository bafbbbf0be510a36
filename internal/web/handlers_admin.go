package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vitrina-solutions/storefront-service/internal/model"
	"github.com/vitrina-solutions/storefront-service/internal/service"
)

type dashboardPage struct {
	ProductCount     int
	ReclamacionCount int
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	products, err := s.products.List(r.Context(), tenant.ID, false)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	recs, err := s.recStore.ListByTenant(r.Context(), tenant.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.templates.render(w, "dashboard", s.view(r, dashboardPage{
		ProductCount:     len(products),
		ReclamacionCount: len(recs),
	}))
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	products, err := s.products.List(r.Context(), tenant.ID, false)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.templates.render(w, "admin_products", s.view(r, products))
}

type productFormPage struct {
	Product *model.Product
	Error   string
	IsNew   bool
}

func (s *Server) handleAdminProductForm(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	idParam := chi.URLParam(r, "id")
	if idParam == "" {
		s.templates.render(w, "admin_product_form", s.view(r, productFormPage{Product: &model.Product{}, IsNew: true}))
		return
	}
	id, err := uuid.Parse(idParam)
	if err != nil {
		s.renderNotFound(w, r)
		return
	}
	product, err := s.products.GetByID(r.Context(), tenant.ID, id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if product == nil {
		s.renderNotFound(w, r)
		return
	}
	s.templates.render(w, "admin_product_form", s.view(r, productFormPage{Product: product}))
}

// productFromForm fills a product from the admin form. Images arrive as
// one URL per line.
func productFromForm(r *http.Request, p *model.Product) string {
	p.Name = strings.TrimSpace(r.FormValue("name"))
	if p.Name == "" {
		return "El nombre es obligatorio"
	}
	p.Description = strings.TrimSpace(r.FormValue("description"))
	p.Category = strings.TrimSpace(r.FormValue("category"))
	p.Currency = r.FormValue("currency")
	if p.Currency == "" {
		p.Currency = "PEN"
	}
	cents, err := service.ParseAmountCents(r.FormValue("price"))
	if err != nil {
		return "Precio inválido"
	}
	p.PriceCents = cents
	p.Featured = r.FormValue("featured") == "on"

	p.Images = nil
	for _, line := range strings.Split(r.FormValue("images"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			p.Images = append(p.Images, line)
		}
	}
	return ""
}

func (s *Server) handleAdminProductCreate(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	p := &model.Product{TenantID: tenant.ID}
	if msg := productFromForm(r, p); msg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.templates.render(w, "admin_product_form", s.view(r, productFormPage{Product: p, Error: msg, IsNew: true}))
		return
	}
	if err := s.products.Create(r.Context(), p); err != nil {
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/productos", http.StatusSeeOther)
}

func (s *Server) handleAdminProductUpdate(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.renderNotFound(w, r)
		return
	}
	p, err := s.products.GetByID(r.Context(), tenant.ID, id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if p == nil {
		s.renderNotFound(w, r)
		return
	}
	if msg := productFromForm(r, p); msg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.templates.render(w, "admin_product_form", s.view(r, productFormPage{Product: p, Error: msg}))
		return
	}
	if err := s.products.Update(r.Context(), p); err != nil {
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/productos", http.StatusSeeOther)
}

func (s *Server) handleAdminProductDelete(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.renderNotFound(w, r)
		return
	}
	if err := s.products.Delete(r.Context(), tenant.ID, id); err != nil {
		s.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/productos", http.StatusSeeOther)
}

type configFormPage struct {
	Result *service.UpdateResult
}

func (s *Server) handleAdminConfigForm(w http.ResponseWriter, r *http.Request) {
	s.templates.render(w, "admin_config", s.view(r, configFormPage{}))
}

// handleAdminConfigSave merge-writes the submitted sections. Only the
// sections present in the form are written; everything else keeps its
// stored value.
func (s *Server) handleAdminConfigSave(w http.ResponseWriter, r *http.Request) {
	partial := map[string]interface{}{}

	if v := r.FormValue("site_name"); v != "" {
		partial["site_name"] = v
	}

	menuTitles := r.Form["menu_title"]
	menuLinks := r.Form["menu_link"]
	if len(menuTitles) > 0 {
		menu := []model.MenuItem{}
		for i := range menuTitles {
			if i < len(menuLinks) && strings.TrimSpace(menuTitles[i]) != "" {
				menu = append(menu, model.MenuItem{Title: menuTitles[i], Link: menuLinks[i]})
			}
		}
		partial["menu"] = menu
	}

	pages := map[string]model.PageContent{}
	for _, key := range []string{"home", "about", "contact", "checkout", "legal"} {
		title := r.FormValue("page_" + key + "_title")
		body := r.FormValue("page_" + key + "_body")
		if title != "" || body != "" {
			pages[key] = model.PageContent{
				Title:    title,
				Subtitle: r.FormValue("page_" + key + "_subtitle"),
				Body:     body,
			}
		}
	}
	if len(pages) > 0 {
		partial["pages"] = pages
	}

	if r.FormValue("contact_email") != "" || r.FormValue("contact_phone") != "" {
		partial["contact"] = model.ContactInfo{
			Email:    r.FormValue("contact_email"),
			Phone:    r.FormValue("contact_phone"),
			WhatsApp: r.FormValue("contact_whatsapp"),
			Address:  r.FormValue("contact_address"),
		}
	}

	result := s.config.Update(r.Context(), partial)
	s.templates.render(w, "admin_config", s.view(r, configFormPage{Result: &result}))
}

type themeFormPage struct {
	Result *service.UpdateResult
}

func (s *Server) handleAdminThemeForm(w http.ResponseWriter, r *http.Request) {
	s.templates.render(w, "admin_theme", s.view(r, themeFormPage{}))
}

func paletteFromForm(r *http.Request, prefix string) model.ThemePalette {
	return model.ThemePalette{
		Background: r.FormValue(prefix + "_background"),
		Foreground: r.FormValue(prefix + "_foreground"),
		Primary:    r.FormValue(prefix + "_primary"),
		Secondary:  r.FormValue(prefix + "_secondary"),
		Accent:     r.FormValue(prefix + "_accent"),
	}
}

func (s *Server) handleAdminThemeSave(w http.ResponseWriter, r *http.Request) {
	partial := map[string]interface{}{
		"theme": model.Theme{
			Light: paletteFromForm(r, "light"),
			Dark:  paletteFromForm(r, "dark"),
		},
		"card": model.CardLayout{
			ImagePosition: r.FormValue("card_image_position"),
			TextAlign:     r.FormValue("card_text_align"),
			ButtonStyle:   r.FormValue("card_button_style"),
			Shadow:        r.FormValue("card_shadow"),
		},
	}
	result := s.config.Update(r.Context(), partial)
	s.templates.render(w, "admin_theme", s.view(r, themeFormPage{Result: &result}))
}

func (s *Server) handleAdminReclamaciones(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	recs, err := s.recStore.ListByTenant(r.Context(), tenant.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.templates.render(w, "admin_reclamaciones", s.view(r, recs))
}
