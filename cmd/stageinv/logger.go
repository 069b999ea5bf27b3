package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

func belowError(_ context.Context, r slog.Record) bool { return r.Level < slog.LevelError }

func atLeastError(_ context.Context, r slog.Record) bool { return r.Level >= slog.LevelError }

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR
// goes to stderr. If logPath is non-empty, all levels are also written to
// that file. The returned function closes the log file.
func setupLogger(logPath, format string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	newHandler := func(w io.Writer) slog.Handler {
		if format == "json" {
			return slog.NewJSONHandler(w, opts)
		}
		return slog.NewTextHandler(w, opts)
	}

	handler := slogmulti.Router().
		Add(newHandler(os.Stdout), belowError).
		Add(newHandler(os.Stderr), atLeastError).
		Handler()

	cleanup := func() {}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		handler = slogmulti.Fanout(handler, newHandler(f))
	}

	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}
