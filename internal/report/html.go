package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/AndreyAkinshin/testlogs/internal/model"
)

// GeneratedLayout is the layout of the "Generated:" timestamp.
const GeneratedLayout = "2006-01-02 15:04:05"

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var htmlTemplate = template.Must(
	template.New("report.html.tmpl").
		Funcs(template.FuncMap{
			"title":       Title,
			"fixed2":      func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
			"glyph":       statusGlyph,
			"statusClass": statusClass,
		}).
		ParseFS(templateFS, "templates/report.html.tmpl"),
)

type perfRow struct {
	Name string
	Stat model.Stat
}

type htmlView struct {
	Generated   string
	Summary     []model.Field
	Performance []perfRow
	Errors      []string
	Warnings    []string
	Files       []model.LogFile
}

// HTML writes res as a self-contained HTML page. All values are escaped by
// html/template.
func HTML(w io.Writer, res model.Result, generated time.Time) error {
	view := htmlView{
		Generated: generated.Format(GeneratedLayout),
		Summary:   res.Summary.Fields(),
		Errors:    res.Errors,
		Warnings:  res.Warnings,
		Files:     res.TestResults,
	}
	for _, c := range res.PerformanceMetrics.Present() {
		view.Performance = append(view.Performance, perfRow{
			Name: string(c),
			Stat: *res.PerformanceMetrics.Get(c),
		})
	}

	if err := htmlTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

func statusClass(s model.Status) string {
	if s.Passed() {
		return "passed"
	}
	return "failed"
}
