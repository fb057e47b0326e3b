// Package logging sets up the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a text slog handler on stderr. Verbose mode and
// PORTREAP_LOG=debug enable debug output; the default only surfaces
// warnings so machine-readable stdout stays clean.
func Setup(verbose bool) {
	level := slog.LevelWarn
	if verbose || strings.EqualFold(os.Getenv("PORTREAP_LOG"), "debug") {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
