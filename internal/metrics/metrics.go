package metrics

import (
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

type Registry struct {
	reg          *prometheus.Registry
	Results      *prometheus.CounterVec
	Metafields   *prometheus.CounterVec
	OrderUpdates *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_translator_webhooks_total",
		Help: "Order webhooks processed, by outcome.",
	}, []string{"status"})
	metafields := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_translator_metafield_writes_total",
	}, []string{"result"})
	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_translator_order_updates_total",
	}, []string{"result"})

	r.MustRegister(results, metafields, updates)
	return &Registry{
		reg:          r,
		Results:      results,
		Metafields:   metafields,
		OrderUpdates: updates,
	}
}

func (r *Registry) ObserveResult(status domain.Status) {
	r.Results.WithLabelValues(string(status)).Inc()
}

func (r *Registry) ObserveMetafield(ok bool) {
	r.Metafields.WithLabelValues(outcome(ok)).Inc()
}

func (r *Registry) ObserveOrderUpdate(ok bool) {
	r.OrderUpdates.WithLabelValues(outcome(ok)).Inc()
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
