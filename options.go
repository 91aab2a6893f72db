package qtf2html

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-qtf2html/internal/assets"
)

// DefaultStyle names the general-purpose built-in style. Converters inject
// no stylesheet unless WithStyle or Input.CSS asks for one.
const DefaultStyle = assets.DefaultStyleName

// defaultTimeout bounds PDF rendering when the context has no deadline.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds values set by options before NewConverter resolves them.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string // name, file path or inline CSS
	resolvedStyle string
	assetPath     string
}

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("qtf2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the diagnostic logger. Without it the converter is silent.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithStyle selects the stylesheet injected into every document.
// The value is a style name ("default", "qpad"), a path to a CSS file
// (anything containing a path separator) or inline CSS (anything containing '{').
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath adds a directory whose styles/ entries override the built-in
// styles of the same name.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithStyleLoader replaces the style source entirely.
func WithStyleLoader(loader StyleLoader) Option {
	return func(c *Converter) {
		if loader != nil {
			c.styleLoader = loader
		}
	}
}

// StyleLoader resolves style names to CSS content.
type StyleLoader = assets.StyleLoader
