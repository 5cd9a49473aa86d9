// Package extract pulls numeric performance metrics out of free-form log text.
package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/testlogs/internal/model"
)

// Static regexes for metric extraction.
// Compiled once at package init for performance.
var (
	durationRegex    = regexp.MustCompile(`Duration: (\d+)ms`)
	averageTimeRegex = regexp.MustCompile(`Average time[^:]*: (\d+)ms`)
	successRateRegex = regexp.MustCompile(`successRate[^:]*:\s*"([^"]*)"`)
)

// Extract returns every metric found in text, in order of appearance.
// Recognized forms:
//
//	Duration: 120ms                  -> response time
//	Average time per request: 35ms   -> operation time
//	successRate: "97.5%"             -> success rate
//
// Values that cannot be parsed are dropped.
func Extract(text string) model.Metrics {
	metrics := model.NewMetrics()
	metrics.ResponseTimes = appendInts(metrics.ResponseTimes, durationRegex, text)
	metrics.OperationTimes = appendInts(metrics.OperationTimes, averageTimeRegex, text)

	for _, match := range successRateRegex.FindAllStringSubmatch(text, -1) {
		if rate, ok := ParseRate(match[1]); ok {
			metrics.SuccessRates = append(metrics.SuccessRates, rate)
		}
	}

	return metrics
}

// ParseRate parses a success-rate value such as "97.5%" or " 80 ".
// Trailing percent signs are stripped. Non-numeric and non-finite values
// are rejected.
func ParseRate(raw string) (float64, bool) {
	value := strings.TrimSpace(strings.TrimRight(raw, "%"))
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}

func appendInts(dst []int, re *regexp.Regexp, text string) []int {
	for _, match := range re.FindAllStringSubmatch(text, -1) {
		// \d+ can still overflow int
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		dst = append(dst, n)
	}
	return dst
}
