// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the given level. Format "json" uses
// slog's JSON handler for log shippers; anything else uses the charmbracelet
// console handler.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           log.Level(level),
	})
	return slog.New(handler)
}
