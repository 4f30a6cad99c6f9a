package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
)

const namespace = "simwiki"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once         sync.Once
	pageDuration *prom.HistogramVec
	pageResults  *prom.CounterVec
	runDuration  prom.Histogram
	runOutcome   *prom.CounterVec
	entities     prom.Gauge
	brokenLinks  prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.pageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "page_duration_seconds",
			Help:      "Time to shape, render and write one page",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"kind"})
		pr.pageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_results_total",
			Help:      "Entities processed by kind and result",
		}, []string{"kind", "result"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total generation run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Generation runs by final status",
		}, []string{"outcome"})
		pr.entities = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_entities",
			Help:      "Entities in the last loaded snapshot",
		})
		pr.brokenLinks = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "broken_links",
			Help:      "Broken internal links found by the last verification",
		})
		reg.MustRegister(pr.pageDuration, pr.pageResults, pr.runDuration, pr.runOutcome, pr.entities, pr.brokenLinks)
	})
	return pr
}

func (p *PrometheusRecorder) ObservePageDuration(kind string, d time.Duration) {
	if p == nil || p.pageDuration == nil {
		return
	}
	p.pageDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageResult(kind string, result ResultLabel) {
	if p == nil || p.pageResults == nil {
		return
	}
	p.pageResults.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetEntities(n int) {
	if p == nil || p.entities == nil {
		return
	}
	p.entities.Set(float64(n))
}

func (p *PrometheusRecorder) SetBrokenLinks(n int) {
	if p == nil || p.brokenLinks == nil {
		return
	}
	p.brokenLinks.Set(float64(n))
}

// WriteTextfile writes every metric in g to path in the node_exporter textfile format.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write metrics textfile").
			WithContext("path", path).
			Warning().
			Build()
	}
	return nil
}
