// Package aggregate reduces parsed log files into run-wide statistics.
package aggregate

import (
	"fmt"

	"github.com/AndreyAkinshin/testlogs/internal/model"
)

// Aggregate computes the test summary and per-category performance rollups.
// Only section-level metrics feed the rollups; whole-file metrics are
// reported per file but never aggregated.
func Aggregate(files []model.LogFile) (model.Summary, model.PerformanceMetrics) {
	var (
		total, passed  int
		responseTimes  []float64
		operationTimes []float64
		successRates   []float64
	)

	for _, f := range files {
		for _, s := range f.Sections {
			total++
			if s.Status.Passed() {
				passed++
			}
			responseTimes = appendInts(responseTimes, s.Metrics.ResponseTimes)
			operationTimes = appendInts(operationTimes, s.Metrics.OperationTimes)
			successRates = append(successRates, s.Metrics.SuccessRates...)
		}
	}

	summary := model.Summary{
		TotalLogFiles: len(files),
		TotalTests:    total,
		PassedTests:   passed,
		FailedTests:   total - passed,
		PassRate:      PassRate(passed, total),
	}

	var perf model.PerformanceMetrics
	for c, values := range map[model.Category][]float64{
		model.CategoryResponseTime:  responseTimes,
		model.CategoryOperationTime: operationTimes,
		model.CategorySuccessRate:   successRates,
	} {
		if stat, ok := Compute(values); ok {
			perf.Set(c, stat)
		}
	}

	return summary, perf
}

// PassRate formats passed/total as a percentage with one decimal place,
// or returns "N/A" when total is zero.
func PassRate(passed, total int) string {
	if total == 0 {
		return model.NotAvailable
	}
	return fmt.Sprintf("%.1f%%", float64(passed)/float64(total)*100)
}

// Compute returns min, max, mean and count of values.
// It reports false for an empty slice.
func Compute(values []float64) (model.Stat, bool) {
	if len(values) == 0 {
		return model.Stat{}, false
	}

	stat := model.Stat{Min: values[0], Max: values[0], Count: len(values)}
	var sum float64
	for _, v := range values {
		if v < stat.Min {
			stat.Min = v
		}
		if v > stat.Max {
			stat.Max = v
		}
		sum += v
	}
	stat.Avg = sum / float64(len(values))

	return stat, true
}

// Build assembles the full result of a run. Nil error and warning lists are
// replaced with empty ones so they always serialize as arrays.
func Build(files []model.LogFile, errs, warnings []string) model.Result {
	summary, perf := Aggregate(files)

	if files == nil {
		files = []model.LogFile{}
	}
	if errs == nil {
		errs = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}

	return model.Result{
		Summary:            summary,
		PerformanceMetrics: perf,
		TestResults:        files,
		Errors:             errs,
		Warnings:           warnings,
	}
}

func appendInts(dst []float64, values []int) []float64 {
	for _, v := range values {
		dst = append(dst, float64(v))
	}
	return dst
}

// EmptyFileWarnings returns one warning per file that has no test sections.
func EmptyFileWarnings(files []model.LogFile) []string {
	var warnings []string
	for _, f := range files {
		if len(f.Sections) == 0 {
			warnings = append(warnings, fmt.Sprintf("%s: no test sections found", f.Filename))
		}
	}
	return warnings
}
