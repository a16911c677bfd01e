package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
)

const namespace = "alaqidah"

// Collectors exposes quote and share-card metrics on /metrics. It satisfies
// the observer interfaces of the quote and share services.
type Collectors struct {
	quotes         *prometheus.GaugeVec
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
}

// NewCollectors registers the collectors with reg. A nil reg means
// prometheus.DefaultRegisterer.
func NewCollectors(reg prometheus.Registerer) (*Collectors, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collectors{
		quotes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "quotes_loaded",
			Help:      "Quotes with text in the active index, per locale.",
		}, []string{"locale"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "card_renders_total",
			Help:      "Share card renders by theme and outcome.",
		}, []string{"theme", "outcome"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "card_render_duration_seconds",
			Help:      "Share card render latency.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"scale"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "card_cache_lookups_total",
			Help:      "Rendered card cache lookups by result.",
		}, []string{"result"}),
	}

	for _, collector := range []prometheus.Collector{c.quotes, c.renders, c.renderDuration, c.cacheLookups} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ObserveQuotes records the quote count of locale after a (re)load.
func (c *Collectors) ObserveQuotes(locale string, count int) {
	c.quotes.WithLabelValues(locale).Set(float64(count))
}

// ObserveRender records one render attempt.
func (c *Collectors) ObserveRender(theme domain.Theme, scale float64, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	c.renders.WithLabelValues(string(theme), outcome).Inc()
	if err == nil {
		c.renderDuration.WithLabelValues(strconv.FormatFloat(scale, 'g', -1, 64)).Observe(elapsed.Seconds())
	}
}

// ObserveCache records a cache hit or miss.
func (c *Collectors) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	c.cacheLookups.WithLabelValues(result).Inc()
}
