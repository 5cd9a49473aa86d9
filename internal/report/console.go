package report

import (
	"strconv"

	"github.com/AndreyAkinshin/testlogs/internal/model"
	"github.com/AndreyAkinshin/testlogs/internal/output"
)

// ReportTitle is the banner printed at the top of the console report.
const ReportTitle = "TEST LOG COMPILATION REPORT"

// Console prints the human-readable report to w.
func Console(w *output.Writer, res model.Result) {
	w.Banner(ReportTitle)

	w.ReportSection("SUMMARY")
	for _, f := range res.Summary.Fields() {
		switch f.Key {
		case "passed_tests":
			w.SummaryPassed(Title(f.Key), f.Value)
		case "failed_tests":
			w.SummaryFailed(Title(f.Key), f.Value)
		default:
			w.SummaryItem(Title(f.Key), f.Value)
		}
	}

	if present := res.PerformanceMetrics.Present(); len(present) > 0 {
		w.ReportSection("PERFORMANCE METRICS")
		for i, c := range present {
			if i > 0 {
				w.Println("")
			}
			stat := res.PerformanceMetrics.Get(c)
			prec := consolePrecision[c]
			w.SummarySectionLabel(consoleHeadings[c] + ":")
			w.DetailItem("Min", strconv.FormatFloat(stat.Min, 'f', prec, 64))
			w.DetailItem("Max", strconv.FormatFloat(stat.Max, 'f', prec, 64))
			w.DetailItem("Avg", strconv.FormatFloat(stat.Avg, 'f', prec, 64))
			w.DetailItem("Count", strconv.Itoa(stat.Count))
		}
	}

	w.ReportSection("TEST RESULTS BY FILE")
	for _, f := range res.TestResults {
		w.Println("")
		w.SummaryItem("File", f.Filename)
		w.SummaryItem("Timestamp", f.Timestamp)
		w.SummaryItem("Sections", strconv.Itoa(len(f.Sections)))
		for _, s := range f.Sections {
			w.StatusLine(s.Title, s.Status.Passed(), string(s.Status))
		}
	}

	w.Println("")
	w.Rule("=")
}
