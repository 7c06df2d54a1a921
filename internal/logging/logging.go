package logging

import (
	"log/slog"
	"os"
)

// Init configures the process-wide default logger. Verbose mode enables
// debug-level output; otherwise info and above.
func Init(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
