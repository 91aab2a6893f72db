package qtf2html

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-qtf2html/internal/fileutil"
	"github.com/alnah/go-qtf2html/internal/process"
)

// pdfConverter turns a finished HTML document into PDF bytes.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer prints a local HTML file. Tests swap it for a mock.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

type pdfOptions struct {
	Page *PageSettings
}

// rodRenderer prints through a headless Chrome started on first use.
// If no browser is installed, rod downloads Chromium.
type rodRenderer struct {
	timeout time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	browser *rod.Browser
	chrome  *launcher.Launcher
}

func newRodRenderer(timeout time.Duration, log *zap.Logger) *rodRenderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &rodRenderer{timeout: timeout, log: log}
}

// configureLauncher applies ROD_BROWSER_BIN, ROD_NO_SANDBOX and CI.
// A custom binary usually means a container, where the sandbox fails.
func configureLauncher(l *launcher.Launcher) *launcher.Launcher {
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	noSandbox := bin != "" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true"
	return l.NoSandbox(noSandbox)
}

func (r *rodRenderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	start := time.Now()
	chrome := configureLauncher(launcher.New())
	controlURL, err := chrome.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		chrome.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.log.Debug("browser started",
		zap.Int("pid", chrome.PID()),
		zap.Duration("elapsed", time.Since(start)))
	r.browser, r.chrome = browser, chrome
	return browser, nil
}

// Close shuts the browser down. Safe to call when nothing was launched.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()

	if chrome := r.chrome; chrome != nil {
		// Renderer and GPU helpers live in the same process group.
		if kerr := process.KillProcessGroup(chrome.PID()); kerr != nil {
			r.log.Debug("browser process group cleanup", zap.Error(kerr))
		}
		chrome.Kill()
		chrome.Cleanup()
	}
	r.browser, r.chrome = nil, nil
	return err
}

func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.connect()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	// The caller's deadline, if any, still applies on top of r.timeout.
	if err := page.Context(ctx).Timeout(r.timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: read stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// buildPDFOptions maps page settings (inches) onto Chrome print parameters.
// The same margin is used on every side.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	var ps *PageSettings
	if opts != nil {
		ps = opts.Page
	}
	w, h := ps.dimensions()
	m := ps.margin()

	return &proto.PagePrintToPDF{
		PaperWidth:      &w,
		PaperHeight:     &h,
		MarginTop:       &m,
		MarginBottom:    &m,
		MarginLeft:      &m,
		MarginRight:     &m,
		PrintBackground: true,
	}
}

// rodConverter hands the document to the renderer through a temp file,
// so relative resources resolve the way a browser would see them.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration, log *zap.Logger) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout, log)}
}

func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return c.renderer.RenderFromFile(ctx, path, opts)
}

func (c *rodConverter) Close() error {
	if c.renderer == nil {
		return nil
	}
	return c.renderer.Close()
}
