// Package logging configures the process-wide logrus logger: a single
// call at process start, no per-package logger wiring required.
package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Configure sets up logrus with a text formatter suitable for a terminal
// and routes output to stdout. Call once from main().
func Configure() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
}

// SetLevel parses level (e.g. "debug", "info", "warn") and applies it to
// the global logger, defaulting to Info on an unrecognized value.
func SetLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("unrecognized log level %q, defaulting to info", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
