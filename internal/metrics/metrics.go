package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Counter interface {
	Inc(labels ...string)
	Add(value float64, labels ...string)
}

type Counters struct {
	EntriesParsed  Counter
	RecordsDropped Counter
	Breadcrumbs    Counter

	FilterRequests   Counter
	EntriesPublished Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *PrometheusCounter {
	return &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logtrail",
			Name:      name,
			Help:      help,
		}, labels),
	}
}

func NewPrometheusCounter(name, help string, labels []string) *PrometheusCounter {
	c := newCounterVec(name, help, labels)
	prometheus.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func (p *PrometheusCounter) Add(value float64, labels ...string) {
	p.counter.WithLabelValues(labels...).Add(value)
}

type definition struct {
	name   string
	help   string
	labels []string
}

var (
	entriesParsed    = definition{"entries_parsed_total", "Entries extracted from log text", []string{"grammar"}}
	recordsDropped   = definition{"records_dropped_total", "Lines or records skipped while parsing", []string{"reason"}}
	breadcrumbs      = definition{"breadcrumbs_total", "Entries tagged per breadcrumb", []string{"breadcrumb"}}
	filterRequests   = definition{"filter_requests_total", "Filter requests by outcome", []string{"status"}}
	entriesPublished = definition{"entries_published_total", "Filtered entries sent to the broker", []string{"status"}}
)

func New() *Counters {
	reg := func(d definition) Counter {
		return NewPrometheusCounter(d.name, d.help, d.labels)
	}
	return &Counters{
		EntriesParsed:    reg(entriesParsed),
		RecordsDropped:   reg(recordsDropped),
		Breadcrumbs:      reg(breadcrumbs),
		FilterRequests:   reg(filterRequests),
		EntriesPublished: reg(entriesPublished),
	}
}

// NewTestCounters registers on a private registry so tests can build any
// number of services.
func NewTestCounters() *Counters {
	reg := prometheus.NewRegistry()
	mk := func(d definition) Counter {
		c := newCounterVec(d.name, d.help, d.labels)
		reg.MustRegister(c.counter)
		return c
	}
	return &Counters{
		EntriesParsed:    mk(entriesParsed),
		RecordsDropped:   mk(recordsDropped),
		Breadcrumbs:      mk(breadcrumbs),
		FilterRequests:   mk(filterRequests),
		EntriesPublished: mk(entriesPublished),
	}
}

// WriteTextfile dumps the default registry in the text exposition format,
// ready for a node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
