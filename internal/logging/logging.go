// Package logging configures the diagnostic logger shared by all packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured or the level is invalid.
const DefaultLevel = log.WarnLevel

// Setup configures the standard logrus logger to write text records to
// stderr at the given level. An empty or unknown level falls back to
// DefaultLevel.
func Setup(level string) {
	SetupWithWriter(os.Stderr, level)
}

// SetupWithWriter is Setup with a custom destination (for testing).
func SetupWithWriter(w io.Writer, level string) {
	log.SetOutput(w)
	log.SetReportCaller(false)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		},
	})

	if level == "" {
		log.SetLevel(DefaultLevel)
		return
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(DefaultLevel)
		log.WithField("level", level).Warnf("Unknown log level, using %s", DefaultLevel)
		return
	}
	log.SetLevel(lvl)
	log.SetReportCaller(lvl >= log.DebugLevel)
}

// ValidLevel reports whether level names a logrus level.
func ValidLevel(level string) bool {
	_, err := log.ParseLevel(level)
	return err == nil
}
