package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrConverterInit is reported for files a worker could not start on.
var ErrConverterInit = errors.New("failed to initialize converter")

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently with converters from pool.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ErrConverterInit,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts one file and times it.
func convertFile(ctx context.Context, conv Converter, f FileToConvert) ConversionResult {
	start := time.Now()
	err := conv.Convert(ctx, f)
	return ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
		Err:        err,
		Duration:   time.Since(start),
	}
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports each result and returns the batch error: the only
// failure as is, or a count wrapping the first one so exit codes still
// reflect its cause.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) error {
	summary := countResults(results)
	var first error

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			if first == nil {
				first = r.Err
			}
			continue
		}

		if quiet || r.OutputPath == stdoutPath {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stderr, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stderr, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stderr, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	switch summary.Failed {
	case 0:
		return nil
	case 1:
		return first
	default:
		return fmt.Errorf("%d conversion(s) failed: %w", summary.Failed, first)
	}
}
