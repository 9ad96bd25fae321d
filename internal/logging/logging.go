// Package logging builds the logrus logger used by the CLI and the upload service.
package logging

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// New returns a logger writing to w. format "json" selects the JSON formatter,
// anything else the text formatter.
func New(level, format string, w io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetLevel(ParseLevel(level))
	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// ParseLevel converts "debug", "info", "warn" or "error" to a logrus level.
// Unknown strings default to InfoLevel.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
