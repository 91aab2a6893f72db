package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-qtf2html"
	"github.com/alnah/go-qtf2html/internal/config"
	"github.com/alnah/go-qtf2html/internal/fileutil"
	"github.com/alnah/go-qtf2html/internal/hints"
)

// Exit codes for the qtf2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, undecodable input
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for an error.
// It relies on errors.Is, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, qtf2html.ErrBrowserConnect) ||
		errors.Is(err, qtf2html.ErrPageCreate) ||
		errors.Is(err, qtf2html.ErrPageLoad) ||
		errors.Is(err, qtf2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadQTF) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, fileutil.ErrInvalidEncoding) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, qtf2html.ErrInvalidPageSize) ||
		errors.Is(err, qtf2html.ErrInvalidOrientation) ||
		errors.Is(err, qtf2html.ErrInvalidMargin) ||
		errors.Is(err, qtf2html.ErrStyleNotFound) ||
		errors.Is(err, qtf2html.ErrInvalidAssetPath) ||
		errors.Is(err, fileutil.ErrUnknownEncoding) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnexpectedArgs) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
// Batch summaries carry no hint: each failed file already printed its own.
func hintFor(err error, flags *convertFlags) string {
	var be *batchError
	if err == nil || errors.As(err, &be) {
		return ""
	}

	switch {
	case errors.Is(err, qtf2html.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, qtf2html.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(flags.common.config))
	case errors.Is(err, qtf2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(qtf2html.Styles())
	case errors.Is(err, fileutil.ErrInvalidEncoding):
		return hints.ForEncoding()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
