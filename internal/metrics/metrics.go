package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the gateway's Prometheus instruments. All methods are
// safe on a nil *Collector so callers can run without metrics.
type Collector struct {
	reg *prometheus.Registry

	FareEstimates   *prometheus.CounterVec // routing label: real|fallback
	TrackingPolls   prometheus.Counter
	TrackingErrors  prometheus.Counter
	ActiveTrackers  prometheus.Gauge
	PollDuration    prometheus.Histogram
	AdminCache      *prometheus.CounterVec // result label: hit|miss|forced
	LocationSamples prometheus.Counter
	ForwardErrors   prometheus.Counter
	Watchers        prometheus.Gauge
	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
	Scans           *prometheus.CounterVec // action label: start|end
	UpstreamErrors  *prometheus.CounterVec // op label
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FareEstimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transitnexus_fare_estimates_total",
			Help: "Fare estimates by routing source.",
		}, []string{"routing"}),
		TrackingPolls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitnexus_tracking_polls_total",
			Help: "Bus location polling ticks completed.",
		}),
		TrackingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitnexus_tracking_poll_errors_total",
			Help: "Bus location polling ticks that failed.",
		}),
		ActiveTrackers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transitnexus_active_trackers",
			Help: "Bus trackers currently polling.",
		}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transitnexus_tracking_poll_duration_seconds",
			Help:    "Duration of a bus location polling tick.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		AdminCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transitnexus_admin_cache_total",
			Help: "Admin dashboard cache lookups by result.",
		}, []string{"result"}),
		LocationSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitnexus_location_samples_total",
			Help: "Location samples delivered to watchers.",
		}),
		ForwardErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitnexus_location_forward_errors_total",
			Help: "Location samples the backend rejected.",
		}),
		Watchers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transitnexus_location_watchers",
			Help: "Callbacks registered on the shared location watch.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitnexus_nats_published_total",
			Help: "Location messages published to NATS.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitnexus_nats_publish_errors_total",
			Help: "Location messages that failed to publish.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transitnexus_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		Scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transitnexus_qr_scans_total",
			Help: "QR scans by resulting ride action.",
		}, []string{"action"}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transitnexus_upstream_errors_total",
			Help: "Failed backend API calls by operation.",
		}, []string{"op"}),
	}

	reg.MustRegister(
		c.FareEstimates, c.TrackingPolls, c.TrackingErrors, c.ActiveTrackers, c.PollDuration,
		c.AdminCache, c.LocationSamples, c.ForwardErrors, c.Watchers,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
		c.Scans, c.UpstreamErrors,
	)
	return c
}

func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

func (c *Collector) FareEstimated(usedRealRouting bool) {
	if c == nil {
		return
	}
	routing := "fallback"
	if usedRealRouting {
		routing = "real"
	}
	c.FareEstimates.WithLabelValues(routing).Inc()
}

func (c *Collector) PollObserved(d time.Duration, err error) {
	if c == nil {
		return
	}
	c.PollDuration.Observe(d.Seconds())
	if err != nil {
		c.TrackingErrors.Inc()
		return
	}
	c.TrackingPolls.Inc()
}

func (c *Collector) SetActiveTrackers(n int) {
	if c == nil {
		return
	}
	c.ActiveTrackers.Set(float64(n))
}

func (c *Collector) AdminCacheResult(result string) {
	if c == nil {
		return
	}
	c.AdminCache.WithLabelValues(result).Inc()
}

func (c *Collector) SampleDelivered() {
	if c == nil {
		return
	}
	c.LocationSamples.Inc()
}

func (c *Collector) ForwardFailed() {
	if c == nil {
		return
	}
	c.ForwardErrors.Inc()
}

func (c *Collector) SetWatchers(n int) {
	if c == nil {
		return
	}
	c.Watchers.Set(float64(n))
}

func (c *Collector) NATSPublishedInc() {
	if c == nil {
		return
	}
	c.NATSPublished.Inc()
}

func (c *Collector) NATSPublishErrInc() {
	if c == nil {
		return
	}
	c.NATSPublishErrs.Inc()
}

func (c *Collector) NATSSetConnected(connected bool) {
	if c == nil {
		return
	}
	if connected {
		c.NATSConnected.Set(1)
		return
	}
	c.NATSConnected.Set(0)
}

func (c *Collector) ScanRecorded(action string) {
	if c == nil {
		return
	}
	c.Scans.WithLabelValues(action).Inc()
}

func (c *Collector) UpstreamFailed(op string) {
	if c == nil {
		return
	}
	c.UpstreamErrors.WithLabelValues(op).Inc()
}
