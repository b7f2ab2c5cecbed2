package main

import (
	"context"
	"fmt"
	"time"
)

// runRender converts Markdown files to HTML.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
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
	mergeRenderFlags(flags, cfg)
	if err := applyLibraryPath(flags.common.lib, cfg, env); err != nil {
		return err
	}

	params, err := buildHTMLParams(cfg)
	if err != nil {
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
	files, err := discoverFiles(inputPath, output, ".html")
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	// Fail on a missing library before spawning workers.
	if _, err := env.Engine.Info(); err != nil {
		return libraryError(err)
	}

	size := resolvePoolSize(cfg.Workers, false)
	logger.Debug("render batch", "files", len(files), "workers", size, "math", cfg.Render.Math)

	pool := NewConverterPool(size, func() Converter {
		return &htmlConverter{engine: env.Engine, params: params, stdout: env.Stdout}
	})
	defer func() { _ = pool.Close() }()

	start := env.Now()
	results := convertBatch(ctx, pool, files)
	logger.Debug("render done", "elapsed", env.Now().Sub(start).Round(time.Millisecond))

	return printResults(results, flags.common.quiet, flags.common.verbose, env)
}
