package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tutumagi/crossaoi/config"
)

// PrometheusReporter reports metrics to prometheus
type PrometheusReporter struct {
	serverType          string
	registry            *prometheus.Registry
	countReportersMap   map[string]*prometheus.CounterVec
	summaryReportersMap map[string]*prometheus.SummaryVec
	gaugeReportersMap   map[string]*prometheus.GaugeVec
	labels              map[string][]string
}

func (p *PrometheusReporter) registerMetrics(constLabels map[string]string) {
	constLabels["game"] = p.serverType

	// aoi_nodes
	p.gaugeReportersMap[NodeCount] = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   "crossaoi",
			Subsystem:   "index",
			Name:        NodeCount,
			Help:        "the number of nodes linked in the index",
			ConstLabels: constLabels,
		},
		[]string{"space"},
	)

	// aoi_entities
	p.gaugeReportersMap[EntityCount] = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   "crossaoi",
			Subsystem:   "space",
			Name:        EntityCount,
			Help:        "the number of entities in the space",
			ConstLabels: constLabels,
		},
		[]string{"space"},
	)

	// aoi_swaps
	p.countReportersMap[SwapCount] = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "crossaoi",
			Subsystem:   "index",
			Name:        SwapCount,
			Help:        "the number of adjacent swaps performed while sorting",
			ConstLabels: constLabels,
		},
		[]string{"space", "axis"},
	)

	for _, name := range []string{UpdateCount, InsertCount, RemoveCount, ReleaseCount} {
		p.countReportersMap[name] = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "crossaoi",
				Subsystem:   "index",
				Name:        name,
				Help:        fmt.Sprintf("the number of index operations (%s)", name),
				ConstLabels: constLabels,
			},
			[]string{"space"},
		)
	}

	// aoi_tick_time
	p.summaryReportersMap[TickTime] = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:   "crossaoi",
			Subsystem:   "space",
			Name:        TickTime,
			Help:        "the time to run one space tick, in ms",
			Objectives:  map[float64]float64{0.7: 0.02, 0.95: 0.005, 0.99: 0.001},
			ConstLabels: constLabels,
		},
		[]string{"space"},
	)

	p.labels = map[string][]string{
		NodeCount:    {"space"},
		EntityCount:  {"space"},
		SwapCount:    {"space", "axis"},
		UpdateCount:  {"space"},
		InsertCount:  {"space"},
		RemoveCount:  {"space"},
		ReleaseCount: {"space"},
		TickTime:     {"space"},
	}

	toRegister := make([]prometheus.Collector, 0)
	for _, c := range p.countReportersMap {
		toRegister = append(toRegister, c)
	}
	for _, c := range p.gaugeReportersMap {
		toRegister = append(toRegister, c)
	}
	for _, c := range p.summaryReportersMap {
		toRegister = append(toRegister, c)
	}
	p.registry.MustRegister(toRegister...)
}

// NewPrometheusReporter returns a reporter owning its own registry.
// constLabels are attached to every series.
func NewPrometheusReporter(serverType string, constLabels map[string]string) *PrometheusReporter {
	labels := make(map[string]string, len(constLabels)+1)
	for k, v := range constLabels {
		labels[k] = v
	}
	p := &PrometheusReporter{
		serverType:          serverType,
		registry:            prometheus.NewRegistry(),
		countReportersMap:   make(map[string]*prometheus.CounterVec),
		summaryReportersMap: make(map[string]*prometheus.SummaryVec),
		gaugeReportersMap:   make(map[string]*prometheus.GaugeVec),
	}
	p.registerMetrics(labels)
	return p
}

// GetPrometheusReporter builds a reporter from config const tags
func GetPrometheusReporter(serverType string, cfg *config.Config) *PrometheusReporter {
	return NewPrometheusReporter(serverType, cfg.GetStringMapString("aoi.metrics.constTags"))
}

// Handler serves the reporter registry in the prometheus text format
func (p *PrometheusReporter) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry
func (p *PrometheusReporter) Gatherer() prometheus.Gatherer {
	return p.registry
}

// fill label values the caller did not pass, prometheus rejects partial sets
func (p *PrometheusReporter) ensureLabels(metric string, tags map[string]string) map[string]string {
	out := make(map[string]string, len(p.labels[metric]))
	for _, key := range p.labels[metric] {
		out[key] = tags[key]
	}
	return out
}

// ReportSummary reports a summary metric
func (p *PrometheusReporter) ReportSummary(metric string, labels map[string]string, value float64) error {
	sum := p.summaryReportersMap[metric]
	if sum != nil {
		sum.With(p.ensureLabels(metric, labels)).Observe(value)
		return nil
	}
	return ErrMetricNotKnown
}

// ReportCount reports a counter metric
func (p *PrometheusReporter) ReportCount(metric string, labels map[string]string, count float64) error {
	cnt := p.countReportersMap[metric]
	if cnt != nil {
		cnt.With(p.ensureLabels(metric, labels)).Add(count)
		return nil
	}
	return ErrMetricNotKnown
}

// ReportGauge reports a gauge metric
func (p *PrometheusReporter) ReportGauge(metric string, labels map[string]string, value float64) error {
	g := p.gaugeReportersMap[metric]
	if g != nil {
		g.With(p.ensureLabels(metric, labels)).Set(value)
		return nil
	}
	return ErrMetricNotKnown
}

// ServeHTTP lets the reporter be mounted directly
func (p *PrometheusReporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.Handler().ServeHTTP(w, r)
}
