package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/alnah/go-qtf2html"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// NewPool builds the converter pool once options are known.
	NewPool func(size int, opts ...qtf2html.Option) Pool

	// SetMaxProcs adjusts GOMAXPROCS to the container quota. Nil skips it.
	SetMaxProcs func(log *zap.Logger)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		NewPool:     newPoolAdapter,
		SetMaxProcs: setMaxProcs,
	}
}

// setMaxProcs applies automaxprocs, reporting through the debug log.
// An invalid GOMAXPROCS env value leaves the runtime default in place.
func setMaxProcs(log *zap.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug(fmt.Sprintf(format, args...))
	}))
}
