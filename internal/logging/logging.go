// Package logging configures the process-wide structured logger.
//
// The terminal is owned by tcell while the game runs, so logs default to
// being discarded. Set LIMINAL_LOG_FILE to capture them.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance. It starts out discarding everything, so
// packages logging before main calls Init (tests included) never write to the
// terminal; Init opts into a sink via LIMINAL_LOG_FILE.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures Log from environment variables:
//   - LOG_LEVEL: logrus level name, default "info"
//   - LOG_FORMAT: "json" for machine-readable output, anything else for text
//   - LIMINAL_LOG_FILE: path to append logs to; unset discards all output
func Init() error {
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	path := os.Getenv("LIMINAL_LOG_FILE")
	if path == "" {
		Log.SetOutput(io.Discard)
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		Log.SetOutput(io.Discard)
		return err
	}
	Log.SetOutput(f)
	return nil
}

// Component returns a logger tagged with the originating component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
