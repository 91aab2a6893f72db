package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-qtf2html"
	"github.com/alnah/go-qtf2html/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for per-file operations.
var (
	ErrReadQTF         = errors.New("failed to read QTF file")
	ErrWriteHTML       = errors.New("failed to write HTML file")
	ErrWritePDF        = errors.New("failed to write PDF file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
	ErrConverterInit   = errors.New("failed to initialize converter")
)

// CLIConverter is the conversion surface the CLI needs.
type CLIConverter interface {
	Convert(ctx context.Context, input qtf2html.Input) (*qtf2html.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*qtf2html.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	Size() int
	InitError() error
	Close() error
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string
	Err        error
	Duration   time.Duration
}

// batchError summarizes failed conversions. Each failure is printed on its
// own line; Unwrap exposes them for exit code mapping.
type batchError struct {
	failed int
	total  int
	err    error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error { return e.err }

// converterInitError reports why the pool could not create a converter.
func converterInitError(pool Pool) error {
	if err := pool.InitError(); err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	return ErrConverterInit
}

// convertBatch processes files concurrently using the converter pool.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams, env *Environment, log *zap.Logger) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				err := converterInitError(pool)
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params, env.Now, log)
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

// convertFile reads, converts and writes a single file.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams, now func() time.Time, log *zap.Logger) ConversionResult {
	start := now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = now().Sub(start)
		return result
	}

	src, err := fileutil.ReadText(f.InputPath, params.encoding)
	if err != nil {
		return finish(fmt.Errorf("%w: %w", ErrReadQTF, err))
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: %w", ErrCreateOutputDir, err))
	}

	fileLog := log.With(zap.String("file", f.InputPath))
	res, err := conv.Convert(ctx, qtf2html.Input{
		QTF:  src,
		Name: f.InputPath,
		CSS:  params.css,
		PDF:  params.pdf,
		Page: params.page,
		Progress: func(percent int) {
			fileLog.Debug("progress", zap.Int("percent", percent))
		},
	})
	if err != nil {
		return finish(err)
	}

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.HTML, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %w", ErrWriteHTML, err))
	}

	if params.pdf {
		result.PDFPath = pdfOutputPath(f.OutputPath)
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(result.PDFPath, res.PDF, filePermissions); err != nil {
			return finish(fmt.Errorf("%w: %w", ErrWritePDF, err))
		}
	}

	return finish(nil)
}

// printResultsWithWriter prints each written path on its own stdout line
// and returns a *batchError when any conversion failed. Failures and the
// batch summary go to stderr.
func printResultsWithWriter(results []ConversionResult, quiet bool, env *Environment) error {
	var errs error
	failed := 0

	for _, r := range results {
		if r.Err != nil {
			failed++
			errs = multierr.Append(errs, r.Err)
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, &convertFlags{}))
			continue
		}
		if quiet {
			continue
		}
		fmt.Fprintln(env.Stdout, r.OutputPath)
		if r.PDFPath != "" {
			fmt.Fprintln(env.Stdout, r.PDFPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stderr, "%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	if failed > 0 {
		return &batchError{failed: failed, total: len(results), err: errs}
	}
	return nil
}
