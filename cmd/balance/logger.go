package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger builds the logger for server and headless commands.
func newLogger(prefix string) *log.Logger {
	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		w = f
	}
	return newLoggerTo(w, prefix)
}

// newTUILogger logs only when --log-file is set, so the alt screen stays clean.
func newTUILogger(prefix string) *log.Logger {
	if flagLogFile == "" {
		return log.New(io.Discard)
	}
	return newLogger(prefix)
}

func newLoggerTo(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
