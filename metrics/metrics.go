// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-conceptgraph/types"
)

// Collector owns a private registry so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	GraphNodes       prometheus.Histogram
	GraphEdges       prometheus.Histogram
	RecognizerErrors *prometheus.CounterVec
	FeedRefreshes    *prometheus.CounterVec
}

func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		GraphNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Nodes per extracted graph",
			Buckets:   prometheus.LinearBuckets(0, 4, 6),
		}),
		GraphEdges: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edges per extracted graph",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		RecognizerErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recognizer_errors_total",
				Help:      "Failed recognizer calls",
			},
			[]string{"backend"},
		),
		FeedRefreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feed_refresh_total",
				Help:      "Scheduled feed graph refreshes",
			},
			[]string{"feed", "result"},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.GraphNodes,
		c.GraphEdges,
		c.RecognizerErrors,
		c.FeedRefreshes,
	)
	return c
}

// ObserveGraph records the size of an extracted graph.
func (c *Collector) ObserveGraph(g types.Graph) {
	c.GraphNodes.Observe(float64(len(g.Nodes)))
	c.GraphEdges.Observe(float64(len(g.Edges)))
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
