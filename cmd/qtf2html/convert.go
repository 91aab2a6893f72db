package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-qtf2html"
	"github.com/alnah/go-qtf2html/internal/config"
	"github.com/alnah/go-qtf2html/internal/fileutil"
)

// Sentinel errors for CLI argument and option handling.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrUnexpectedArgs     = errors.New("unexpected arguments")
)

// defaultOutputDir is used when neither --output nor output.defaultDir is set.
var defaultOutputDir = filepath.Join("comp", "cache")

// noStyle disables the stylesheet when given as --style or config style.
const noStyle = "none"

// conversionParams groups parameters shared across the batch.
type conversionParams struct {
	css      string
	page     *qtf2html.PageSettings
	pdf      bool
	encoding string
}

// runConvert loads config, merges flags, discovers sources and converts them.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment, log *zap.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.Debug("configuration resolved", zap.Stringer("config", cfg))

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}

	if _, err := fileutil.LookupEncoding(cfg.Input.Encoding); err != nil {
		return err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}

	css, err := readCSSFile(flags.style.css)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(flags.input, positional, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no %s files in %s", ErrNoInput, qtfExt, inputPath)
	}

	opts := []qtf2html.Option{
		qtf2html.WithLogger(log),
		qtf2html.WithAssetPath(cfg.Assets.BasePath),
		qtf2html.WithStyle(resolveStyleName(cfg.Style)),
	}
	if timeout > 0 {
		opts = append(opts, qtf2html.WithTimeout(timeout))
	}

	size := min(qtf2html.ResolvePoolSize(cfg.Workers), len(files))
	log.Info("starting conversion", zap.Int("files", len(files)), zap.Int("workers", size))

	pool := env.NewPool(size, opts...)
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			log.Warn("closing converters", zap.Error(cerr))
		}
	}()

	// Fail fast on style or asset errors shared by every converter.
	conv := pool.Acquire()
	if conv == nil {
		return converterInitError(pool)
	}
	pool.Release(conv)

	params := &conversionParams{
		css:      css,
		page:     page,
		pdf:      cfg.Output.PDF,
		encoding: cfg.Input.Encoding,
	}

	results := convertBatch(ctx, pool, files, params, env, log)
	return printResultsWithWriter(results, flags.common.quiet, env)
}

// mergeFlags overrides config values with explicitly set flags.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.encoding != "" {
		cfg.Input.Encoding = flags.encoding
	}
	if flags.pdf {
		cfg.Output.PDF = true
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.style.noStyle {
		cfg.Style = noStyle
	} else if flags.style.style != "" {
		cfg.Style = flags.style.style
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}
}

// resolveStyleName maps the configured style onto a WithStyle value.
// Unset and "none" both mean no stylesheet, so the written file is exactly
// what the library converts.
func resolveStyleName(style string) string {
	if style == noStyle {
		return ""
	}
	return style
}

// buildPageSettings returns nil (library defaults) when no page field is
// set, and fills unset fields with defaults otherwise.
func buildPageSettings(cfg *config.Config) (*qtf2html.PageSettings, error) {
	if cfg.Page.IsZero() {
		return nil, nil
	}

	ps := qtf2html.DefaultPageSettings()
	if cfg.Page.Size != "" {
		ps.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		ps.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin != 0 {
		ps.Margin = cfg.Page.Margin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// resolveTimeout returns the --timeout value, else the config value.
// Zero means the library default.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return cfg.Timeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s (must be positive)", ErrInvalidTimeout, d)
	}
	return d, nil
}

// resolveInputPath picks --input, then the single positional argument,
// then input.defaultDir.
func resolveInputPath(flagInput string, args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 || (flagInput != "" && len(args) > 0) {
		return "", fmt.Errorf("%w: %v", ErrUnexpectedArgs, args)
	}
	switch {
	case flagInput != "":
		return flagInput, nil
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir picks --output, then output.defaultDir, then comp/cache.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg.Output.DefaultDir != "" {
		return cfg.Output.DefaultDir
	}
	return defaultOutputDir
}

// readCSSFile reads the --css file, or returns "" when none was given.
func readCSSFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(content), nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
