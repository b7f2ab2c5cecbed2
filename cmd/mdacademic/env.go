package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-mdacademic/internal/chrome"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Setenv func(key, value string) error
	Engine Engine

	// NewPrinter creates one browser-backed printer per pool slot.
	NewPrinter func(timeout time.Duration) Printer

	Logger *slog.Logger

	// SetDefaultLogger replaces the process-wide logger. Nil in tests.
	SetDefaultLogger func(*slog.Logger)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Getenv:     os.Getenv,
		Setenv:     os.Setenv,
		Engine:     nativeEngine{},
		NewPrinter: func(timeout time.Duration) Printer { return chrome.New(timeout) },
		Logger:     slog.New(slog.DiscardHandler),

		SetDefaultLogger: slog.SetDefault,
	}
}
