package qtf2html

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-qtf2html/internal/assets"
	"github.com/alnah/go-qtf2html/internal/fileutil"
	"github.com/alnah/go-qtf2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.QTFConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
	_ pdfConverter           = (*rodConverter)(nil)
	_ pdfRenderer            = (*rodRenderer)(nil)
)

// Converter drives the QTF-to-HTML pipeline and optional PDF rendering.
// Create with NewConverter, use Convert for conversion and Close when done.
// Convert is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	log           *zap.Logger
	styleLoader   StyleLoader
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter. Returns an error if the asset path or the
// requested style cannot be resolved.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		log:         zap.NewNop(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.styleLoader == nil {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.styleLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	// Tests inject their own stages through unexported options.
	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewQTFConverter(c.log)
	}
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.log)
	}

	return c, nil
}

// Convert turns input.QTF into an HTML document and, when input.PDF is set,
// a PDF rendering of it.
//
// The context is checked before the HTML stage and around PDF rendering; an
// HTML conversion that has started always runs to completion.
// Internal panics are recovered and surface as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	log := c.log
	if input.Name != "" {
		log = log.With(zap.String("source", input.Name))
	}
	log.Info("conversion started", zap.Bool("pdf", input.PDF))
	start := time.Now()
	defer func() {
		if err != nil {
			log.Warn("conversion failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
			return
		}
		log.Info("conversion finished", zap.Duration("elapsed", time.Since(start)))
	}()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	htmlContent, err := c.htmlConverter.ToHTML(ctx, input.QTF, input.Progress)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Converter style first, user CSS last so it can override.
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, c.cfg.resolvedStyle, input.CSS)

	res := &ConvertResult{HTML: []byte(htmlContent)}
	if !input.PDF {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// Close releases the headless browser, if one was started.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// Style returns the CSS injected into every document ("" when none).
func (c *Converter) Style() string {
	return c.cfg.resolvedStyle
}

// resolveStyle turns the WithStyle value (path, inline CSS or name) into CSS.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.styleLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrInvalidAssetName) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// Styles lists the built-in style names.
func Styles() []string {
	return assets.Styles()
}
