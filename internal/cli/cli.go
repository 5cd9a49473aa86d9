// Package cli provides command-line interface functionality for testlogs.
package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/testlogs/internal/config"
	"github.com/AndreyAkinshin/testlogs/internal/errors"
	"github.com/AndreyAkinshin/testlogs/internal/output"
)

// Version is set at build time.
var Version = "dev"

// Help column widths.
const (
	widthCommand = 16
	widthFlag    = 22
	widthEnvVar  = 30
)

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return run(args, output.New())
}

func run(args []string, w *output.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			printUsage(w)
			return errors.ExitSuccess
		case "--version", "version":
			w.Println("testlogs %s", Version)
			return errors.ExitSuccess
		}
	}

	opts, positional, err := parseFlags(args)
	if err != nil {
		usageErr := errors.Config(err.Error())
		w.ErrorPrefix("%v", usageErr)
		return usageErr.ExitCode()
	}
	if opts.Help {
		printUsage(w)
		return errors.ExitSuccess
	}

	if len(positional) > 0 && positional[0] == "compile" {
		positional = positional[1:]
	}
	switch len(positional) {
	case 0:
	case 1:
		opts.Dir = positional[0]
	default:
		usageErr := errors.Configf("unexpected arguments: %s", strings.Join(positional[1:], " "))
		w.ErrorPrefix("%v", usageErr)
		return usageErr.ExitCode()
	}

	applyVerbosityToOutput(w, opts)
	return cmdCompile(w, opts)
}

// Options holds parsed command-line flags. Empty strings and false values
// leave the corresponding config setting untouched.
type Options struct {
	ConfigPath  string
	Dir         string
	JSONPath    string
	HTMLPath    string
	YAMLPath    string
	MetricsFile string
	LogLevel    string
	NoJSON      bool
	NoHTML      bool
	Publish     bool
	Strict      bool
	Quiet       bool
	Verbose     bool
	Help        bool
}

// valueFlags maps flags that take a value to the option they set.
func valueFlags(opts *Options) map[string]*string {
	return map[string]*string{
		"-c":             &opts.ConfigPath,
		"--config":       &opts.ConfigPath,
		"--json":         &opts.JSONPath,
		"--html":         &opts.HTMLPath,
		"--yaml":         &opts.YAMLPath,
		"--metrics-file": &opts.MetricsFile,
		"--log-level":    &opts.LogLevel,
	}
}

// boolFlags maps switches to the option they enable.
func boolFlags(opts *Options) map[string]*bool {
	return map[string]*bool{
		"--no-json": &opts.NoJSON,
		"--no-html": &opts.NoHTML,
		"--publish": &opts.Publish,
		"--strict":  &opts.Strict,
		"-q":        &opts.Quiet,
		"--quiet":   &opts.Quiet,
		"-v":        &opts.Verbose,
		"--verbose": &opts.Verbose,
		"-h":        &opts.Help,
		"--help":    &opts.Help,
	}
}

// parseFlags manually parses flags from arguments.
//
// Manual parsing is used instead of stdlib flag package because flags can
// appear anywhere in the argument list, before or after the directory.
// Arguments after -- are treated as positional.
func parseFlags(args []string) (*Options, []string, error) {
	opts := &Options{}
	values := valueFlags(opts)
	switches := boolFlags(opts)
	var positional []string

	i := 0
	for i < len(args) {
		arg := args[i]

		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		name, value, hasValue := strings.Cut(arg, "=")
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positional = append(positional, arg)
			i++
			continue
		}

		if target, ok := values[name]; ok {
			if !hasValue {
				if i+1 >= len(args) {
					return nil, nil, fmt.Errorf("%s requires a value", name)
				}
				value = args[i+1]
				i++
			}
			if value == "" {
				return nil, nil, fmt.Errorf("%s requires a non-empty value", name)
			}
			*target = value
			i++
			continue
		}

		if target, ok := switches[arg]; ok {
			*target = true
			i++
			continue
		}

		if hasValue {
			if _, ok := switches[name]; ok {
				return nil, nil, fmt.Errorf("%s does not take a value", name)
			}
		}
		return nil, nil, fmt.Errorf("unknown flag: %s\n  run 'testlogs --help' for usage", name)
	}

	if err := validateOptions(opts); err != nil {
		return nil, nil, err
	}

	return opts, positional, nil
}

// validateOptions checks that options are consistent.
func validateOptions(opts *Options) error {
	if opts.Quiet && opts.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	if opts.NoJSON && opts.JSONPath != "" {
		return fmt.Errorf("--json and --no-json are mutually exclusive")
	}
	if opts.NoHTML && opts.HTMLPath != "" {
		return fmt.Errorf("--html and --no-html are mutually exclusive")
	}
	return nil
}

// applyVerbosityToOutput configures the writer from the verbosity flags.
func applyVerbosityToOutput(w *output.Writer, opts *Options) {
	w.SetQuiet(opts.Quiet)
	w.SetVerbose(opts.Verbose)
}

// apply overrides cfg with every option that was set on the command line.
func (opts *Options) apply(cfg *config.Config) {
	if opts.Dir != "" {
		cfg.Discovery.Directory = opts.Dir
	}
	if opts.JSONPath != "" {
		cfg.Output.JSON = opts.JSONPath
		cfg.Output.NoJSON = false
	}
	if opts.HTMLPath != "" {
		cfg.Output.HTML = opts.HTMLPath
		cfg.Output.NoHTML = false
	}
	if opts.YAMLPath != "" {
		cfg.Output.YAML = opts.YAMLPath
	}
	if opts.MetricsFile != "" {
		cfg.Output.MetricsFile = opts.MetricsFile
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.NoJSON {
		cfg.Output.NoJSON = true
	}
	if opts.NoHTML {
		cfg.Output.NoHTML = true
	}
	if opts.Publish {
		cfg.Publish.Enabled = true
	}
	if opts.Strict {
		cfg.Strict = true
	}
}

func printUsage(w *output.Writer) {
	w.HelpTitle("testlogs - compile test logs into console, JSON and HTML reports")

	w.HelpSection("Usage:")
	w.HelpUsage("testlogs [compile] [<dir>] [options]")
	w.HelpUsage("testlogs version")
	w.HelpUsage("testlogs help")

	w.HelpSection("Commands:")
	w.HelpCommand("compile [<dir>]", "Parse matching logs in <dir> (default: current directory)", widthCommand)
	w.HelpCommand("version", "Show version information", widthCommand)
	w.HelpCommand("help", "Show this help", widthCommand)

	w.HelpSection("Options:")
	w.HelpFlag("-c, --config <path>", "Config file (default: "+strings.Join(config.DefaultFileNames, ", ")+")", widthFlag)
	w.HelpFlag("--json <path>", "JSON report path (default: "+config.DefaultJSONPath+")", widthFlag)
	w.HelpFlag("--html <path>", "HTML report path (default: "+config.DefaultHTMLPath+")", widthFlag)
	w.HelpFlag("--yaml <path>", "Also write a YAML report", widthFlag)
	w.HelpFlag("--metrics-file <path>", "Also write a Prometheus textfile", widthFlag)
	w.HelpFlag("--no-json", "Skip the JSON report", widthFlag)
	w.HelpFlag("--no-html", "Skip the HTML report", widthFlag)
	w.HelpFlag("--publish", "Upload written reports to the configured S3 bucket", widthFlag)
	w.HelpFlag("--strict", "Exit 1 when a test failed or a log could not be read", widthFlag)
	w.HelpFlag("--log-level <level>", "Diagnostic log level (debug, info, warn, error)", widthFlag)
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", widthFlag)
	w.HelpFlag("-v, --verbose", "Maximum detail", widthFlag)
	w.HelpFlag("-h, --help", "Show this help", widthFlag)

	w.HelpSection("Environment:")
	w.HelpEnvVar("TESTLOGS_LOG_LEVEL", "Diagnostic log level", widthEnvVar)
	w.HelpEnvVar("TESTLOGS_DIR", "Directory to scan", widthEnvVar)
	w.HelpEnvVar("TESTLOGS_PATTERNS", "Comma-separated file name patterns", widthEnvVar)
	w.HelpEnvVar("TESTLOGS_FAILURE_KEYWORDS", "Comma-separated failure keywords", widthEnvVar)
	w.HelpEnvVar("TESTLOGS_S3_BUCKET", "Bucket used by --publish", widthEnvVar)
	w.HelpEnvVar("TESTLOGS_S3_ENDPOINT", "S3-compatible endpoint URL", widthEnvVar)
	w.HelpEnvVar("TESTLOGS_STRICT", "Enable strict mode", widthEnvVar)

	w.HelpSection("Examples:")
	w.HelpExample("testlogs", "Compile logs in the current directory")
	w.HelpExample("testlogs ./logs --no-html", "Compile logs in ./logs, JSON only")
	w.HelpExample("testlogs --strict --metrics-file testlogs.prom", "CI gate with a metrics textfile")
	w.Println("")
}
