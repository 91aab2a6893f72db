package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-qtf2html/internal/qtf"
)

// ErrSanitize indicates the assembled document could not be re-parsed or rendered.
var ErrSanitize = errors.New("HTML sanitization failed")

// ProgressFunc receives a completion percentage in [0, 100].
// It is called on the converting goroutine.
type ProgressFunc func(percent int)

// documentHead opens every generated document.
var documentHead = []string{
	"<!DOCTYPE html>",
	"<html>",
	"<head>",
	`<meta charset="utf-8">`,
	"</head>",
}

// documentTail closes every generated document.
var documentTail = []string{
	"</body>",
	"</html>",
}

// HTMLConverter abstracts QTF to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string, progress ProgressFunc) (string, error)
}

// QTFConverter assembles a complete HTML document from QTF source.
type QTFConverter struct {
	lines     *qtf.LineConverter
	sanitizer HTMLSanitizer
	log       *zap.Logger
}

// NewQTFConverter creates a QTFConverter writing diagnostics to log.
// A nil log disables diagnostics.
func NewQTFConverter(log *zap.Logger) *QTFConverter {
	if log == nil {
		log = zap.NewNop()
	}
	return &QTFConverter{
		lines:     qtf.NewLineConverter(log),
		sanitizer: &EmptyTagSanitizer{Log: log},
		log:       log,
	}
}

// ToHTML converts QTF content to a standalone HTML5 document.
//
// Each paragraph block becomes one <p> per non-empty logical line; elements a
// line leaves open are closed inside its own <p>. After each
// block, progress receives index*100/total (1-based index). It then receives
// 100 once all blocks are assembled and 100 again after sanitization.
// A document without a body region yields an empty <body>.
//
// The context is checked once before work starts; conversion itself is not
// interruptible.
func (c *QTFConverter) ToHTML(ctx context.Context, content string, progress ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if progress == nil {
		progress = func(int) {}
	}

	start := time.Now()
	doc := qtf.Parse(content)
	total := len(doc.Paragraphs)
	c.log.Debug("document parsed",
		zap.Bool("body", doc.HasBody),
		zap.Int("paragraphs", total),
		zap.String("font", doc.Directives.Font),
		zap.String("size", doc.Directives.Size))

	out := make([]string, 0, len(documentHead)+total+len(documentTail)+1)
	out = append(out, documentHead...)
	out = append(out, bodyOpenTag(doc.Directives))

	for i, para := range doc.Paragraphs {
		pTag := paragraphOpenTag(para.Align)
		for _, line := range para.Lines() {
			segment := c.lines.Convert(line)
			if strings.TrimSpace(segment) == "" {
				continue
			}
			balanced, err := BalanceFragment(segment)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrSanitize, err)
			}
			out = append(out, pTag+balanced+"</p>")
		}
		percent := (i + 1) * 100 / total
		c.log.Debug("paragraph converted", zap.Int("paragraph", i+1), zap.Int("progress", percent))
		progress(percent)
	}

	out = append(out, documentTail...)
	progress(100)

	sanitized, err := c.sanitizer.Sanitize(ctx, strings.Join(out, "\n"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSanitize, err)
	}
	progress(100)

	c.log.Debug("document assembled", zap.Duration("elapsed", time.Since(start)))
	return sanitized, nil
}

// BodyStyle returns the inline CSS derived from document directives:
// font-family then font-size, each ending in ';', joined by one space.
// Returns "" when no directive is set.
func BodyStyle(d qtf.Directives) string {
	var clauses []string
	if d.Font != "" {
		clauses = append(clauses, "font-family:"+d.Font+";")
	}
	if d.Size != "" {
		clauses = append(clauses, "font-size:"+d.Size+";")
	}
	return strings.Join(clauses, " ")
}

// bodyOpenTag returns the <body> tag, with a style attribute only when
// directives were set.
func bodyOpenTag(d qtf.Directives) string {
	style := BodyStyle(d)
	if style == "" {
		return "<body>"
	}
	return `<body style="` + html.EscapeString(style) + `">`
}

// paragraphOpenTag returns <p>, or <p> with text-align when align is set.
func paragraphOpenTag(align string) string {
	if align == "" {
		return "<p>"
	}
	return `<p style="text-align:` + html.EscapeString(align) + `;">`
}
