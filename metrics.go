package blog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics lives on its own registry so each App can be built and torn down
// in one process without duplicate registration.
type metrics struct {
	registry *prometheus.Registry

	// Counts pages rendered, by view kind.
	pagesRendered *prometheus.CounterVec

	// Number of entries loaded from the content dir, by kind.
	contentEntries *prometheus.GaugeVec

	loginFailures prometheus.Counter

	// Social images served, by source (cache or decode).
	ogImages *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		pagesRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_pages_rendered_total",
			Help: "Total number of HTML pages rendered",
		}, []string{"kind"}),
		contentEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "blog_content_entries",
			Help: "Number of content entries loaded at the last sync",
		}, []string{"kind"}),
		loginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "blog_admin_login_failures_total",
			Help: "Total number of rejected admin logins",
		}),
		ogImages: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_og_images_served_total",
			Help: "Total number of social images served",
		}, []string{"source"}),
	}
}
