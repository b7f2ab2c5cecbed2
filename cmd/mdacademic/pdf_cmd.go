package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-mdacademic/internal/chrome"
	"github.com/alnah/go-mdacademic/internal/config"
	"github.com/alnah/go-mdacademic/internal/hints"
)

// runPDF converts Markdown files to PDF with the native or chrome engine.
func runPDF(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePDFFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	logger := useLogger(env, flags.common.verbose)

	if err := validateWorkers(flags.common.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergePDFFlags(flags, cfg)
	if err := applyLibraryPath(flags.common.lib, cfg, env); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional)
	if err != nil {
		return err
	}
	output := flags.output
	if output == "" {
		output = cfg.Output.DefaultDir
	}
	if output == stdoutPath {
		return fmt.Errorf("%w: PDF output cannot go to stdout", ErrUsage)
	}
	files, err := discoverFiles(inputPath, output, ".pdf")
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	params, err := buildPDFParams(cfg, flags.timeout, env.Engine)
	if err != nil {
		return err
	}

	browser := params.engine == config.EngineChrome
	size := resolvePoolSize(cfg.Workers, browser)
	logger.Debug("pdf batch",
		"files", len(files),
		"workers", size,
		"engine", params.engine,
		"paper", cfg.PDF.Paper)

	pool := NewConverterPool(size, func() Converter {
		if browser {
			return &chromePDFConverter{engine: env.Engine, printer: env.NewPrinter(params.timeout), params: params}
		}
		return &nativePDFConverter{engine: env.Engine, params: params}
	})
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converters", "error", err)
		}
	}()

	start := env.Now()
	results := convertBatch(ctx, pool, files)
	logger.Debug("pdf done", "elapsed", env.Now().Sub(start).Round(time.Millisecond))

	err = printResults(results, flags.common.quiet, flags.common.verbose, env)
	if browser && errors.Is(err, chrome.ErrBrowserConnect) {
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	}
	return err
}
