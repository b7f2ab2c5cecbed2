package main

import (
	"io"
	"log/slog"
)

// newLogger writes text logs to w: warnings by default, debug with verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// useLogger installs the command logger on env and, in production, as the
// process default so the engine binding logs through it too.
func useLogger(env *Environment, verbose bool) *slog.Logger {
	logger := newLogger(env.Stderr, verbose)
	env.Logger = logger
	if env.SetDefaultLogger != nil {
		env.SetDefaultLogger(logger)
	}
	return logger
}
