package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	TenantResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_resolutions_total",
			Help: "Total tenant resolutions by strategy (localhost, domain, subdomain, none, error)",
		},
		[]string{"strategy"},
	)
	ReclamacionesSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reclamaciones_submitted_total",
			Help: "Total consumer complaints accepted",
		},
	)
	MailDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_deliveries_total",
			Help: "Total notification mails by result",
		},
		[]string{"result"},
	)
	PageRenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "page_render_duration_seconds",
			Help:    "Duration of storefront and admin page renders",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"page"},
	)
)

func InitMetrics() {
	for _, c := range []prometheus.Collector{TenantResolutions, ReclamacionesSubmitted, MailDeliveries, PageRenderDuration} {
		if err := prometheus.Register(c); err != nil {
			log.Error().Err(err).Msg("Failed to register metric")
		}
	}
}
