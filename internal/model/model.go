// Package model provides the data types shared by the extraction, aggregation
// and rendering stages. Values are built once and treated as read-only.
package model

import "strconv"

// Status is the pass/fail classification of a test section.
type Status string

const (
	StatusPassed Status = "PASSED"
	StatusFailed Status = "FAILED"
)

// Passed reports whether the status is PASSED.
func (s Status) Passed() bool {
	return s == StatusPassed
}

// UnknownTimestamp is used when a log carries no "Test Started:" line.
const UnknownTimestamp = "Unknown"

// NotAvailable is the pass rate reported when no tests were found.
const NotAvailable = "N/A"

// Metrics holds the numeric values extracted from a block of log text.
type Metrics struct {
	ResponseTimes  []int     `json:"response_times" yaml:"response_times"`
	OperationTimes []int     `json:"operation_times" yaml:"operation_times"`
	SuccessRates   []float64 `json:"success_rates" yaml:"success_rates"`
}

// NewMetrics returns Metrics with empty, non-nil sequences.
func NewMetrics() Metrics {
	return Metrics{
		ResponseTimes:  []int{},
		OperationTimes: []int{},
		SuccessRates:   []float64{},
	}
}

// Section is one delimited test block inside a log file.
type Section struct {
	Title   string  `json:"title" yaml:"title"`
	Content string  `json:"content" yaml:"content"`
	Metrics Metrics `json:"metrics" yaml:"metrics"`
	Status  Status  `json:"status" yaml:"status"`
}

// LogFile is the parsed form of a single discovered log.
type LogFile struct {
	Filename  string    `json:"filename" yaml:"filename"`
	Timestamp string    `json:"timestamp" yaml:"timestamp"`
	Sections  []Section `json:"sections" yaml:"sections"`
	Metrics   Metrics   `json:"metrics" yaml:"metrics"`
}

// Summary holds the run-wide test counts.
type Summary struct {
	TotalLogFiles int    `json:"total_log_files" yaml:"total_log_files"`
	TotalTests    int    `json:"total_tests" yaml:"total_tests"`
	PassedTests   int    `json:"passed_tests" yaml:"passed_tests"`
	FailedTests   int    `json:"failed_tests" yaml:"failed_tests"`
	PassRate      string `json:"pass_rate" yaml:"pass_rate"`
}

// Field is a key/value pair of a rendered summary.
type Field struct {
	Key   string
	Value string
}

// Fields returns the summary as key/value pairs in serialization order.
// Keys are the JSON field names.
func (s Summary) Fields() []Field {
	return []Field{
		{Key: "total_log_files", Value: strconv.Itoa(s.TotalLogFiles)},
		{Key: "total_tests", Value: strconv.Itoa(s.TotalTests)},
		{Key: "passed_tests", Value: strconv.Itoa(s.PassedTests)},
		{Key: "failed_tests", Value: strconv.Itoa(s.FailedTests)},
		{Key: "pass_rate", Value: s.PassRate},
	}
}

// Result is the complete outcome of a compilation run.
type Result struct {
	Summary            Summary            `json:"summary" yaml:"summary"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics" yaml:"performance_metrics"`
	TestResults        []LogFile          `json:"test_results" yaml:"test_results"`
	Errors             []string           `json:"errors" yaml:"errors"`
	Warnings           []string           `json:"warnings" yaml:"warnings"`
}
