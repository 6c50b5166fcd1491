package main

import (
	"net/http"

	"github.com/9seconds/zonographer/zonelib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zonographer_http_request_duration_seconds",
		Help:    "Duration of HTTP requests to resolve API",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"code", "method"})
	HTTPRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "zonographer_http_requests_in_flight",
		Help: "A number of HTTP requests which are being served",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestsInFlight)
}

// usageStatsCollector exports counters of zonelib.UsageStats. Values are
// read on each scrape so there is nothing to keep in sync.
type usageStatsCollector struct {
	zono         *zonelib.Zonographer
	resolvedDesc *prometheus.Desc
	lastUsedDesc *prometheus.Desc
	datasetDesc  *prometheus.Desc
	datasetZones *prometheus.Desc
}

func (u *usageStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- u.resolvedDesc
	ch <- u.lastUsedDesc
	ch <- u.datasetDesc
	ch <- u.datasetZones
}

func (u *usageStatsCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := u.zono.UsageStats().Snapshot()

	ch <- prometheus.MustNewConstMetric(u.resolvedDesc, prometheus.CounterValue,
		float64(snapshot.ExactCount), string(zonelib.MethodExact))
	ch <- prometheus.MustNewConstMetric(u.resolvedDesc, prometheus.CounterValue,
		float64(snapshot.FallbackCount), string(zonelib.MethodFallback))
	ch <- prometheus.MustNewConstMetric(u.resolvedDesc, prometheus.CounterValue,
		float64(snapshot.MissCount), string(zonelib.MethodNone))
	ch <- prometheus.MustNewConstMetric(u.resolvedDesc, prometheus.CounterValue,
		float64(snapshot.FailureCount), "failure")

	if !snapshot.LastUsed.IsZero() {
		ch <- prometheus.MustNewConstMetric(u.lastUsedDesc, prometheus.GaugeValue,
			float64(snapshot.LastUsed.Unix()))
	}

	if index := u.zono.Index(); index != nil {
		ch <- prometheus.MustNewConstMetric(u.datasetDesc, prometheus.GaugeValue,
			float64(index.BuiltAt().Unix()), index.Checksum())
		ch <- prometheus.MustNewConstMetric(u.datasetZones, prometheus.GaugeValue,
			float64(len(index.Zones())))
	}
}

func newUsageStatsCollector(zono *zonelib.Zonographer) prometheus.Collector {
	return &usageStatsCollector{
		zono: zono,
		resolvedDesc: prometheus.NewDesc("zonographer_resolved_total",
			"A number of resolved points by resolve method",
			[]string{"method"}, nil),
		lastUsedDesc: prometheus.NewDesc("zonographer_last_used_timestamp_seconds",
			"When resolver was used last time",
			nil, nil),
		datasetDesc: prometheus.NewDesc("zonographer_dataset_loaded_timestamp_seconds",
			"When a current dataset was loaded",
			[]string{"checksum"}, nil),
		datasetZones: prometheus.NewDesc("zonographer_dataset_zones",
			"A number of zones in a current dataset",
			nil, nil),
	}
}

func instrumentHandler(handler http.Handler) http.Handler {
	return promhttp.InstrumentHandlerInFlight(HTTPRequestsInFlight,
		promhttp.InstrumentHandlerDuration(HTTPRequestDuration, handler))
}
