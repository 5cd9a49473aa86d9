package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/AndreyAkinshin/testlogs/internal/aggregate"
	"github.com/AndreyAkinshin/testlogs/internal/config"
	"github.com/AndreyAkinshin/testlogs/internal/errors"
	"github.com/AndreyAkinshin/testlogs/internal/loader"
	"github.com/AndreyAkinshin/testlogs/internal/logging"
	"github.com/AndreyAkinshin/testlogs/internal/metrics"
	"github.com/AndreyAkinshin/testlogs/internal/model"
	"github.com/AndreyAkinshin/testlogs/internal/output"
	"github.com/AndreyAkinshin/testlogs/internal/publish"
	"github.com/AndreyAkinshin/testlogs/internal/report"
	"github.com/AndreyAkinshin/testlogs/internal/section"
)

// now is the clock used for the HTML "Generated:" stamp.
var now = time.Now

// reportPublisher uploads written documents and returns their URLs.
type reportPublisher interface {
	Publish(ctx context.Context, files []string) ([]string, error)
}

// newPublisher creates the publisher used by --publish.
var newPublisher = func(ctx context.Context, cfg publish.Config) (reportPublisher, error) {
	p, err := publish.NewS3Publisher(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// cmdCompile resolves configuration and runs the compilation pipeline.
func cmdCompile(w *output.Writer, opts *Options) int {
	logging.Setup(opts.LogLevel)

	cfg, err := loadConfig(w, opts)
	if err != nil {
		w.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	logging.Setup(cfg.Log.Level)

	if err := compile(context.Background(), w, cfg); err != nil {
		w.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	return errors.ExitSuccess
}

// loadConfig reads the .env file and the config file, then applies the
// command-line overrides. Every failure is a configuration error.
func loadConfig(w *output.Writer, opts *Options) (*config.Config, error) {
	if err := config.LoadDotEnv(config.DefaultEnvFile); err != nil {
		return nil, errors.ConfigWrap(err, "failed to load environment file")
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.FindConfig(".")
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.ConfigWrap(errors.NotFound("config file", path), "failed to load configuration")
	}
	if path != "" {
		w.Debug("Using config file: %s", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, errors.ConfigWrap(err, "invalid configuration")
	}

	opts.apply(cfg)

	warnings, err := config.Validate(cfg)
	if err != nil {
		return nil, errors.ConfigWrap(err, "invalid configuration")
	}
	for _, warning := range warnings {
		w.Warning("%s", warning)
	}
	return cfg, nil
}

// progressObserver prints loader progress the way the report expects it.
type progressObserver struct {
	w *output.Writer
}

func (o progressObserver) Loading(path string) {
	o.w.Info("Parsing: %s", path)
}

func (o progressObserver) Failed(path string, err error) {
	o.w.Errorln("Error parsing %s: %v", path, err)
}

// compile runs discovery, parsing, aggregation and rendering, then writes
// the configured documents.
func compile(ctx context.Context, w *output.Writer, cfg *config.Config) error {
	runID := uuid.NewString()
	logger := log.WithField("run_id", runID)

	paths, err := loader.Discover(cfg.Discovery.Directory, cfg.Discovery.Patterns)
	if err != nil {
		return errors.ConfigWrap(err, "failed to discover log files")
	}
	logger.WithFields(log.Fields{
		"directory": cfg.Discovery.Directory,
		"files":     len(paths),
	}).Debug("Discovery finished")

	var result model.Result
	if len(paths) == 0 {
		w.Info("No log files found!")
		result = aggregate.Build(nil, nil, nil)
	} else {
		w.Info("")
		w.Info("Found %d log file(s)", len(paths))
		if !w.Quiet() {
			w.Rule("=")
		}

		ld := loader.New(section.NewParser(cfg.Status.FailureKeywords))
		files, failures := ld.LoadAll(paths, progressObserver{w: w})

		errs := make([]string, 0, len(failures))
		for _, f := range failures {
			errs = append(errs, f.Error())
		}
		result = aggregate.Build(files, errs, aggregate.EmptyFileWarnings(files))
	}

	if !w.Quiet() {
		report.Console(w, result)
	}

	written, err := writeDocuments(w, cfg, result)
	if err != nil {
		return err
	}
	logger.WithField("documents", len(written)).Info("Reports written")

	if cfg.Publish.Enabled && len(written) > 0 {
		if err := publishDocuments(ctx, w, cfg, runID, written); err != nil {
			return err
		}
	}

	if cfg.Strict && (result.Summary.FailedTests > 0 || len(result.Errors) > 0) {
		if !w.Quiet() {
			w.FinalFailure("Compilation complete with failures.")
		}
		return errors.Newf("strict mode: %d failed test(s), %d unreadable log file(s)",
			result.Summary.FailedTests, len(result.Errors))
	}

	if !w.Quiet() {
		w.FinalSuccess("Compilation complete!")
	}
	return nil
}

// writeDocuments renders every enabled document and returns the written paths.
func writeDocuments(w *output.Writer, cfg *config.Config, res model.Result) ([]string, error) {
	var written []string

	if !cfg.Output.NoJSON {
		if err := writeFile(cfg.Output.JSON, func(f io.Writer) error { return report.JSON(f, res) }); err != nil {
			return written, err
		}
		w.Info("")
		w.Info("JSON report saved to: %s", cfg.Output.JSON)
		written = append(written, cfg.Output.JSON)
	}

	if !cfg.Output.NoHTML {
		generated := now()
		if err := writeFile(cfg.Output.HTML, func(f io.Writer) error { return report.HTML(f, res, generated) }); err != nil {
			return written, err
		}
		w.Info("HTML report saved to: %s", cfg.Output.HTML)
		written = append(written, cfg.Output.HTML)
	}

	if cfg.Output.YAML != "" {
		if err := writeFile(cfg.Output.YAML, func(f io.Writer) error { return report.YAML(f, res) }); err != nil {
			return written, err
		}
		w.Info("YAML report saved to: %s", cfg.Output.YAML)
		written = append(written, cfg.Output.YAML)
	}

	if cfg.Output.MetricsFile != "" {
		if err := ensureDir(cfg.Output.MetricsFile); err != nil {
			return written, err
		}
		if err := metrics.WriteTextfile(cfg.Output.MetricsFile, res); err != nil {
			return written, errors.IO(cfg.Output.MetricsFile, "failed to write metrics", err)
		}
		w.Info("Metrics saved to: %s", cfg.Output.MetricsFile)
		written = append(written, cfg.Output.MetricsFile)
	}

	return written, nil
}

// writeFile renders into memory first so a failed render leaves no partial file.
func writeFile(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return errors.IO(path, "failed to render report", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.IO(path, "failed to write report", err)
	}
	log.WithFields(log.Fields{
		"path":  path,
		"bytes": buf.Len(),
	}).Debug("Report written")
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.IO(dir, "failed to create output directory", err)
	}
	return nil
}

func publishDocuments(ctx context.Context, w *output.Writer, cfg *config.Config, runID string, files []string) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.PublishTimeout())
	defer cancel()

	s3 := cfg.Publish.S3
	publisher, err := newPublisher(ctx, publish.Config{
		Bucket:          s3.Bucket,
		Region:          s3.Region,
		Endpoint:        s3.Endpoint,
		Prefix:          s3.Prefix,
		AccessKeyID:     s3.AccessKeyID,
		SecretAccessKey: s3.SecretAccessKey,
		UsePathStyle:    s3.UsePathStyle,
		RunID:           runID,
	})
	if err != nil {
		return errors.Wrap(err, "failed to set up publishing")
	}

	urls, err := publisher.Publish(ctx, files)
	for _, url := range urls {
		w.Info("Published: %s", url)
	}
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to publish reports (%d of %d uploaded)", len(urls), len(files)))
	}
	return nil
}
