package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitrina-solutions/storefront-service/internal/monitoring"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home", "catalog", "product", "cart", "checkout", "static_page",
	"reclamaciones", "reclamacion_ok", "login", "register",
	"dashboard", "admin_products", "admin_product_form", "admin_config",
	"admin_theme", "admin_reclamaciones", "notfound",
}

type templateSet struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"money": func(cents int64) string {
		return fmt.Sprintf("%.2f", float64(cents)/100)
	},
	"slicestr": func(values ...string) []string {
		return values
	},
}

func loadTemplates() *templateSet {
	set := &templateSet{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		set.pages[name] = template.Must(template.New("layout.html").Funcs(templateFuncs).ParseFS(
			templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return set
}

func (t *templateSet) render(w io.Writer, page string, data viewData) {
	start := time.Now()
	tmpl, ok := t.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("unknown template")
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("template execution failed")
	}
	monitoring.PageRenderDuration.WithLabelValues(page).Observe(time.Since(start).Seconds())
}
