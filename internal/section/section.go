// Package section splits a test log into its delimited test blocks.
//
// A block looks like:
//
//	======================================
//	Test 3: Create network slice
//	======================================
//	...body...
//
// The body runs until the next line of three or more '=' or the end of the
// text.
package section

import (
	"regexp"
	"strings"

	"github.com/AndreyAkinshin/testlogs/internal/extract"
	"github.com/AndreyAkinshin/testlogs/internal/model"
)

var (
	headerRegex    = regexp.MustCompile(`(?s)={3,}\s*\n(Test \d+:.*?)\n={3,}\s*\n`)
	delimiterRegex = regexp.MustCompile(`\n={3,}`)
)

// DefaultFailureKeywords mark a section as FAILED when found in its body.
var DefaultFailureKeywords = []string{"error", "failed"}

// Parser splits log text into sections and classifies them.
type Parser struct {
	keywords []string
}

// NewParser creates a Parser that classifies a section as FAILED when its
// body contains any of keywords, case-insensitively. An empty list selects
// DefaultFailureKeywords.
func NewParser(keywords []string) *Parser {
	if len(keywords) == 0 {
		keywords = DefaultFailureKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	return &Parser{keywords: lowered}
}

// Split is shorthand for NewParser(nil).Split(text).
func Split(text string) []model.Section {
	return NewParser(nil).Split(text)
}

// Split returns the sections of text in order of appearance. The result is
// empty, not nil, when text has no recognizable sections.
func (p *Parser) Split(text string) []model.Section {
	sections := []model.Section{}

	pos := 0
	for pos < len(text) {
		loc := headerRegex.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}

		title := text[pos+loc[2] : pos+loc[3]]
		bodyStart := pos + loc[1]
		bodyEnd := len(text)
		if d := delimiterRegex.FindStringIndex(text[bodyStart:]); d != nil {
			bodyEnd = bodyStart + d[0]
		}

		content := strings.TrimSpace(text[bodyStart:bodyEnd])
		sections = append(sections, model.Section{
			Title:   strings.TrimSpace(title),
			Content: content,
			Metrics: extract.Extract(content),
			Status:  p.Classify(content),
		})

		// The closing delimiter may open the next section.
		pos = bodyEnd
	}

	return sections
}

// Classify returns FAILED if content contains a failure keyword.
// Matching is a plain substring test, so "no errors" counts as a failure.
func (p *Parser) Classify(content string) model.Status {
	lower := strings.ToLower(content)
	for _, k := range p.keywords {
		if strings.Contains(lower, k) {
			return model.StatusFailed
		}
	}
	return model.StatusPassed
}
