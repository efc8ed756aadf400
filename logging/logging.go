// Package logging bootstraps the logrus loggers used by the CLI and the
// examples. Library packages take a logrus.FieldLogger and stay silent
// unless one is supplied.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLevel names the environment variable read by FromEnv.
const EnvLevel = "TRISHARE_LOG"

// New creates a text logger writing to w at the given level name
// ("debug", "info", "warn", ...). An empty level means "info".
func New(level string, w io.Writer) (*logrus.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return logger, nil
}

// FromEnv creates a stderr logger whose level comes from TRISHARE_LOG.
// Unset or unparsable values fall back to "warn".
func FromEnv() *logrus.Logger {
	logger, err := New(os.Getenv(EnvLevel), os.Stderr)
	if err != nil || os.Getenv(EnvLevel) == "" {
		logger, _ = New("warn", os.Stderr)
	}
	return logger
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}
