package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the console logger selected by --debug / --verbose.
// Without either flag, logging is disabled and only results are printed.
func newLogger(f commonFlags, w io.Writer) *zap.Logger {
	var level zapcore.Level
	switch {
	case f.debug:
		level = zapcore.DebugLevel
	case f.verbose:
		level = zapcore.InfoLevel
	default:
		return zap.NewNop()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if !f.debug {
		ec.TimeKey = zapcore.OmitKey
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(w), level)
	return zap.New(core).With(zap.String("origin", "cli"))
}
