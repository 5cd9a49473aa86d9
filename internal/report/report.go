// Package report renders a compiled model.Result as console text, JSON, YAML
// or a standalone HTML page. Renderers never recompute aggregation.
package report

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/testlogs/internal/model"
)

// Title turns a snake_case key into a title-cased label ("pass_rate" -> "Pass Rate").
func Title(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// consoleHeadings are the labels of the performance blocks in console output.
var consoleHeadings = map[model.Category]string{
	model.CategoryResponseTime:  "Response Times (ms)",
	model.CategoryOperationTime: "Operation Times (ms)",
	model.CategorySuccessRate:   "Success Rates (%)",
}

// consolePrecision is the number of decimals printed per category.
var consolePrecision = map[model.Category]int{
	model.CategoryResponseTime:  2,
	model.CategoryOperationTime: 2,
	model.CategorySuccessRate:   1,
}

// statusGlyph returns the check or cross mark for a section status.
func statusGlyph(s model.Status) string {
	if s.Passed() {
		return "✓"
	}
	return "✗"
}
