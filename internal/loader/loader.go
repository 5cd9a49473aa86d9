// Package loader discovers test log files and parses them into LogFile values.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/AndreyAkinshin/testlogs/internal/extract"
	"github.com/AndreyAkinshin/testlogs/internal/model"
	"github.com/AndreyAkinshin/testlogs/internal/section"
)

// DefaultPatterns are the file name patterns searched when none are configured.
var DefaultPatterns = []string{
	"test-results-*.log",
	"test-phase*.log",
	"performance-*.log",
}

// ErrInvalidEncoding is returned for files that are not valid UTF-8 text.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8 text")

var timestampRegex = regexp.MustCompile(`Test Started: (.+)`)

// newlineReplacer converts CRLF and lone CR line endings to LF.
var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Discover returns the files in dir (non-recursive) whose names match any of
// patterns, deduplicated and sorted by full path. Directories are skipped.
// A nil or empty patterns list selects DefaultPatterns.
func Discover(dir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err == nil && info.IsDir() {
				continue
			}
			paths = append(paths, match)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// Loader reads log files and parses their sections.
type Loader struct {
	parser *section.Parser
}

// New creates a Loader that classifies sections with parser.
// A nil parser uses the default failure keywords.
func New(parser *section.Parser) *Loader {
	if parser == nil {
		parser = section.NewParser(nil)
	}
	return &Loader{parser: parser}
}

// Load is shorthand for New(nil).Load(path).
func Load(path string) (*model.LogFile, error) {
	return New(nil).Load(path)
}

// Load reads and parses a single log file.
func (l *Loader) Load(path string) (*model.LogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to decode log file: %w", ErrInvalidEncoding)
	}

	lf := l.Parse(filepath.Base(path), newlineReplacer.Replace(string(data)))
	return &lf, nil
}

// Parse builds a LogFile from already-read content.
func (l *Loader) Parse(filename, content string) model.LogFile {
	timestamp := model.UnknownTimestamp
	if match := timestampRegex.FindStringSubmatch(content); match != nil {
		timestamp = match[1]
	}

	return model.LogFile{
		Filename:  filename,
		Timestamp: timestamp,
		Sections:  l.parser.Split(content),
		Metrics:   extract.Extract(content),
	}
}

// FileError records a file that could not be loaded.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Observer is notified as LoadAll works through its files.
type Observer interface {
	// Loading is called before a file is read.
	Loading(path string)
	// Failed is called when a file could not be loaded.
	Failed(path string, err error)
}

// LoadAll loads paths in order. A file that fails to load is reported to obs
// (if non-nil) and returned in the error list; the remaining files are still
// processed. Loaded files keep the order of paths.
func (l *Loader) LoadAll(paths []string, obs Observer) ([]model.LogFile, []FileError) {
	files := make([]model.LogFile, 0, len(paths))
	var failures []FileError

	for _, path := range paths {
		if obs != nil {
			obs.Loading(path)
		}

		lf, err := l.Load(path)
		if err != nil {
			log.WithFields(log.Fields{
				"path":  path,
				"error": err,
			}).Info("Skipping unreadable log file")
			failures = append(failures, FileError{Path: path, Err: err})
			if obs != nil {
				obs.Failed(path, err)
			}
			continue
		}

		log.WithFields(log.Fields{
			"path":     path,
			"sections": len(lf.Sections),
		}).Debug("Parsed log file")
		files = append(files, *lf)
	}

	return files, failures
}
