package loader

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/AndreyAkinshin/testlogs/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestDiscover(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	writeFile(t, dir, "test-results-api.log", "")
	writeFile(t, dir, "test-phase2.log", "")
	writeFile(t, dir, "test-phase1.log", "")
	writeFile(t, dir, "performance-load.log", "")
	writeFile(t, dir, "notes.log", "")
	writeFile(t, dir, "test-results-api.txt", "")
	if err := os.Mkdir(filepath.Join(dir, "test-phase-dir.log"), 0755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "test-phase9.log", "")

	got, err := Discover(dir, nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "performance-load.log"),
		filepath.Join(dir, "test-phase1.log"),
		filepath.Join(dir, "test-phase2.log"),
		filepath.Join(dir, "test-results-api.log"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "test-phase1.log", "")

	got, err := Discover(dir, []string{"test-phase*.log", "test-*.log"})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Discover() = %v, want one path", got)
	}
}

func TestDiscover_EmptyAndMissingDirectory(t *testing.T) {
	t.Parallel()

	got, err := Discover(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Discover(empty) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Discover(empty) = %v, want none", got)
	}

	got, err = Discover(filepath.Join(t.TempDir(), "missing"), nil)
	if err != nil {
		t.Fatalf("Discover(missing) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Discover(missing) = %v, want none", got)
	}
}

func TestDiscover_InvalidPattern(t *testing.T) {
	t.Parallel()
	if _, err := Discover(t.TempDir(), []string{"test-[.log"}); err == nil {
		t.Error("Discover() with malformed pattern should fail")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "test-phase1.log", `Test Started: 2024-05-01 10:00:00
===
Test 1: Ping
===
Duration: 50ms
===
Test 2: Pong
===
request failed
Duration: 70ms
`)

	lf, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if lf.Filename != "test-phase1.log" {
		t.Errorf("Filename = %q, want base name", lf.Filename)
	}
	if lf.Timestamp != "2024-05-01 10:00:00" {
		t.Errorf("Timestamp = %q", lf.Timestamp)
	}
	if len(lf.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(lf.Sections))
	}
	if lf.Sections[1].Status != model.StatusFailed {
		t.Errorf("Sections[1].Status = %s, want FAILED", lf.Sections[1].Status)
	}
	if !reflect.DeepEqual(lf.Metrics.ResponseTimes, []int{50, 70}) {
		t.Errorf("file-level ResponseTimes = %v, want [50 70]", lf.Metrics.ResponseTimes)
	}
}

func TestLoad_NoTimestampNoSections(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "performance-x.log", "free-form text\n")

	lf, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if lf.Timestamp != model.UnknownTimestamp {
		t.Errorf("Timestamp = %q, want %q", lf.Timestamp, model.UnknownTimestamp)
	}
	if lf.Sections == nil || len(lf.Sections) != 0 {
		t.Errorf("Sections = %v, want empty non-nil", lf.Sections)
	}
	if lf.Metrics.ResponseTimes == nil || lf.Metrics.SuccessRates == nil {
		t.Error("Metrics sequences must be non-nil")
	}
}

func TestLoad_NormalizesLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"crlf", "Test Started: 2024-01-15 10:00:00\r\n=====\r\nTest 1: Login\r\n=====\r\nline one\r\nDuration: 50ms\r\n"},
		{"lone cr", "Test Started: 2024-01-15 10:00:00\r=====\rTest 1: Login\r=====\rline one\rDuration: 50ms\r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "test-phase1.log", tt.content)

			lf, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if lf.Timestamp != "2024-01-15 10:00:00" {
				t.Errorf("Timestamp = %q", lf.Timestamp)
			}
			if len(lf.Sections) != 1 {
				t.Fatalf("len(Sections) = %d, want 1", len(lf.Sections))
			}
			if got := lf.Sections[0].Title; got != "Test 1: Login" {
				t.Errorf("Title = %q", got)
			}
			if got := lf.Sections[0].Content; got != "line one\nDuration: 50ms" {
				t.Errorf("Content = %q, want %q", got, "line one\nDuration: 50ms")
			}
			if !reflect.DeepEqual(lf.Sections[0].Metrics.ResponseTimes, []int{50}) {
				t.Errorf("ResponseTimes = %v", lf.Sections[0].Metrics.ResponseTimes)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "test-phase1.log"))
	if err == nil {
		t.Fatal("Load() of missing file should fail")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoad_InvalidUTF8(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "test-phase1.log", string([]byte{0xff, 0xfe, 0x00, 0x41}))

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Load() error = %v, want ErrInvalidEncoding", err)
	}
}

type recordingObserver struct {
	loading []string
	failed  []string
}

func (r *recordingObserver) Loading(path string)         { r.loading = append(r.loading, path) }
func (r *recordingObserver) Failed(path string, _ error) { r.failed = append(r.failed, path) }

func TestLoadAll_IsolatesFailures(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	good1 := writeFile(t, dir, "test-phase1.log", "===\nTest 1: A\n===\nok\n")
	bad := filepath.Join(dir, "test-phase2.log")
	good2 := writeFile(t, dir, "test-phase3.log", "===\nTest 1: B\n===\nok\n")

	obs := &recordingObserver{}
	files, failures := New(nil).LoadAll([]string{good1, bad, good2}, obs)

	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	if files[0].Filename != "test-phase1.log" || files[1].Filename != "test-phase3.log" {
		t.Errorf("files out of order: %s, %s", files[0].Filename, files[1].Filename)
	}
	if len(failures) != 1 || failures[0].Path != bad {
		t.Fatalf("failures = %v, want one for %s", failures, bad)
	}
	if !reflect.DeepEqual(obs.loading, []string{good1, bad, good2}) {
		t.Errorf("observer saw %v", obs.loading)
	}
	if !reflect.DeepEqual(obs.failed, []string{bad}) {
		t.Errorf("observer failures = %v", obs.failed)
	}
}

func TestLoadAll_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("file permissions are not enforced")
	}
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "test-phase1.log", "secret")
	if err := os.Chmod(path, 0); err != nil {
		t.Fatal(err)
	}

	files, failures := New(nil).LoadAll([]string{path}, nil)
	if len(files) != 0 || len(failures) != 1 {
		t.Errorf("got %d files, %d failures; want 0, 1", len(files), len(failures))
	}
}
