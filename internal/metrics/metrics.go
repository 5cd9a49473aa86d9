// Package metrics exports the outcome of a compilation run as Prometheus
// gauges in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AndreyAkinshin/testlogs/internal/model"
)

// Metrics bundles the gauges describing one run.
type Metrics struct {
	LogFiles    prometheus.Gauge
	Tests       *prometheus.GaugeVec
	TestsTotal  prometheus.Gauge
	PassRatio   *prometheus.GaugeVec
	MetricMin   *prometheus.GaugeVec
	MetricMax   *prometheus.GaugeVec
	MetricAvg   *prometheus.GaugeVec
	MetricCount *prometheus.GaugeVec
	LoadErrors  prometheus.Gauge
}

// New creates the run gauges and registers them with registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		LogFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "testlogs_log_files",
			Help: "Number of log files parsed.",
		}),
		Tests: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testlogs_tests",
			Help: "Number of test sections by status.",
		}, []string{"status"}),
		TestsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "testlogs_tests_total",
			Help: "Total number of test sections.",
		}),
		// No labels: the series only appears once a value is set.
		PassRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testlogs_pass_ratio",
			Help: "Pass rate of the run as a ratio from 0 to 1, at the report's 0.1% precision.",
		}, nil),
		MetricMin: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testlogs_metric_min",
			Help: "Minimum observed value per metric category.",
		}, []string{"category"}),
		MetricMax: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testlogs_metric_max",
			Help: "Maximum observed value per metric category.",
		}, []string{"category"}),
		MetricAvg: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testlogs_metric_avg",
			Help: "Mean observed value per metric category.",
		}, []string{"category"}),
		MetricCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "testlogs_metric_count",
			Help: "Number of observed values per metric category.",
		}, []string{"category"}),
		LoadErrors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "testlogs_load_errors",
			Help: "Number of log files that could not be read.",
		}),
	}

	registry.MustRegister(
		m.LogFiles,
		m.Tests,
		m.TestsTotal,
		m.PassRatio,
		m.MetricMin,
		m.MetricMax,
		m.MetricAvg,
		m.MetricCount,
		m.LoadErrors,
	)

	return m
}

// Observe sets every gauge from res. Categories without values and the pass
// ratio of an empty run are left unset so they are not exported. The pass
// ratio is read from the summary's pass rate, so it matches the reports.
func (m *Metrics) Observe(res model.Result) {
	s := res.Summary
	m.LogFiles.Set(float64(s.TotalLogFiles))
	m.Tests.WithLabelValues("passed").Set(float64(s.PassedTests))
	m.Tests.WithLabelValues("failed").Set(float64(s.FailedTests))
	m.TestsTotal.Set(float64(s.TotalTests))
	if ratio, ok := passRatio(s.PassRate); ok {
		m.PassRatio.WithLabelValues().Set(ratio)
	}

	for _, c := range res.PerformanceMetrics.Present() {
		stat := res.PerformanceMetrics.Get(c)
		label := string(c)
		m.MetricMin.WithLabelValues(label).Set(stat.Min)
		m.MetricMax.WithLabelValues(label).Set(stat.Max)
		m.MetricAvg.WithLabelValues(label).Set(stat.Avg)
		m.MetricCount.WithLabelValues(label).Set(float64(stat.Count))
	}

	m.LoadErrors.Set(float64(len(res.Errors)))
}

// passRatio converts a pass rate such as "75.0%" to 0.75. It reports false
// for "N/A" and for any value that is not a percentage.
func passRatio(rate string) (float64, bool) {
	pct, ok := strings.CutSuffix(rate, "%")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(pct, 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}

// WriteTextfile writes the gauges for res to path. The file is replaced
// atomically so a collector never reads a partial file.
func WriteTextfile(path string, res model.Result) error {
	registry := prometheus.NewRegistry()
	New(registry).Observe(res)

	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
