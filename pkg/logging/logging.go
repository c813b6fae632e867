package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

var logFile *os.File

/*
Init points the default logger at logFilePath, creating parent directories
as needed. The TUI owns the terminal, so diagnostics have to go somewhere
else. An empty path keeps logging on stderr.
*/
func Init(logFilePath, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	if logFilePath == "" {
		log.SetDefault(New(os.Stderr, lvl))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err = os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logFilePath, err)
	}

	log.SetDefault(New(logFile, lvl))
	log.Info("logging initialized", "file", logFilePath, "level", lvl)
	return nil
}

/*
New builds a logger in the house format: timestamps with microseconds and
the caller's file and line.
*/
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    true,
		TimeFormat:      "2006-01-02 15:04:05.000000",
		Prefix:          "study",
	})
}

// Close flushes and closes the log file, if one was opened.
func Close() {
	if logFile != nil {
		log.Info("closing log file")
		logFile.Close()
		logFile = nil
		log.SetDefault(New(os.Stderr, log.GetLevel()))
	}
}
