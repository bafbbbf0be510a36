package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vitrina-solutions/storefront-service/internal/model"
	"github.com/vitrina-solutions/storefront-service/internal/service"
)

type homePage struct {
	Content  model.PageContent
	Featured []*model.Product
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	featured, err := s.products.List(r.Context(), tenant.ID, true)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	cfg := s.config.Get(r.Context())
	s.templates.render(w, "home", s.view(r, homePage{
		Content:  cfg.Pages["home"],
		Featured: featured,
	}))
}

type catalogPage struct {
	Products []*model.Product
	Category string
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	category := r.URL.Query().Get("categoria")

	var (
		products []*model.Product
		err      error
	)
	if category != "" {
		products, err = s.products.ListByCategory(r.Context(), tenant.ID, category)
	} else {
		products, err = s.products.List(r.Context(), tenant.ID, false)
	}
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.templates.render(w, "catalog", s.view(r, catalogPage{Products: products, Category: category}))
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
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
	s.templates.render(w, "product", s.view(r, product))
}

// handleStaticPage renders a text-block page straight from the config
// document (about, contact, legal).
func (s *Server) handleStaticPage(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := s.config.Get(r.Context())
		s.templates.render(w, "static_page", s.view(r, cfg.Pages[key]))
	}
}

type cartItem struct {
	Product *model.Product
	Qty     int
}

type cartPage struct {
	Items      []cartItem
	TotalCents int64
}

func (s *Server) loadCart(r *http.Request) (cartPage, error) {
	tenant := tenantFrom(r.Context())
	var page cartPage
	for _, line := range readCart(r) {
		id, err := uuid.Parse(line.ProductID)
		if err != nil {
			continue
		}
		product, err := s.products.GetByID(r.Context(), tenant.ID, id)
		if err != nil {
			return page, err
		}
		if product == nil {
			continue // removed from catalog since it was added
		}
		page.Items = append(page.Items, cartItem{Product: product, Qty: line.Qty})
		page.TotalCents += product.PriceCents * int64(line.Qty)
	}
	return page, nil
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	page, err := s.loadCart(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.templates.render(w, "cart", s.view(r, page))
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	qty, _ := strconv.Atoi(r.FormValue("qty"))
	lines := addToCart(readCart(r), r.FormValue("product_id"), qty)
	writeCart(w, lines)
	http.Redirect(w, r, "/carrito", http.StatusSeeOther)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	lines := removeFromCart(readCart(r), r.FormValue("product_id"))
	writeCart(w, lines)
	http.Redirect(w, r, "/carrito", http.StatusSeeOther)
}

type checkoutPage struct {
	Cart         cartPage
	Content      model.PageContent
	WhatsAppLink string
}

// handleCheckout renders the order summary and the WhatsApp deep link
// that carries the order text. Checkout is the link, not a payment flow.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	cart, err := s.loadCart(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	cfg := s.config.Get(r.Context())
	tenant := tenantFrom(r.Context())

	phone := tenant.WhatsApp
	if phone == "" {
		phone = cfg.Contact.WhatsApp
	}

	s.templates.render(w, "checkout", s.view(r, checkoutPage{
		Cart:         cart,
		Content:      cfg.Pages["checkout"],
		WhatsAppLink: whatsAppLink(phone, cart),
	}))
}

func whatsAppLink(phone string, cart cartPage) string {
	var b strings.Builder
	b.WriteString("Hola, quisiera hacer el siguiente pedido:\n")
	for _, item := range cart.Items {
		fmt.Fprintf(&b, "- %dx %s (%s %.2f)\n", item.Qty, item.Product.Name,
			item.Product.Currency, item.Product.Price())
	}
	fmt.Fprintf(&b, "Total: %.2f", float64(cart.TotalCents)/100)
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(b.String())
}

type reclamacionPage struct {
	Input  service.ReclamacionInput
	Errors map[string]string
}

func (s *Server) handleReclamacionForm(w http.ResponseWriter, r *http.Request) {
	s.templates.render(w, "reclamaciones", s.view(r, reclamacionPage{}))
}

func (s *Server) handleReclamacionSubmit(w http.ResponseWriter, r *http.Request) {
	tenant := tenantFrom(r.Context())
	cfg := s.config.Get(r.Context())

	input := service.ReclamacionInput{
		ConsumerName:   r.FormValue("consumer_name"),
		ConsumerEmail:  r.FormValue("consumer_email"),
		ConsumerPhone:  r.FormValue("consumer_phone"),
		Address:        r.FormValue("address"),
		DocumentType:   r.FormValue("document_type"),
		DocumentNumber: r.FormValue("document_number"),
		ClaimKind:      r.FormValue("claim_kind"),
		GoodKind:       r.FormValue("good_kind"),
		Amount:         r.FormValue("amount"),
		Detail:         r.FormValue("detail"),
		Pedido:         r.FormValue("pedido"),
		AceptaTerminos: r.FormValue("acepta_terminos") == "on",
	}

	rec, fieldErrs, err := s.reclamaciones.Submit(r.Context(), tenant, cfg.Contact, input)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if len(fieldErrs) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.templates.render(w, "reclamaciones", s.view(r, reclamacionPage{Input: input, Errors: fieldErrs}))
		return
	}
	s.templates.render(w, "reclamacion_ok", s.view(r, rec))
}
