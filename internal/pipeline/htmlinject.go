package pipeline

import (
	"context"
	"strings"
)

// CSSInjector defines the contract for stylesheet injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent string, stylesheets ...string) string
}

// CSSInjection injects stylesheets as one <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block holding every non-empty stylesheet, in
// argument order, separated by a newline.
// Tries </head> first, then after <body ...>, then prepends to the HTML.
// Returns htmlContent unchanged when there is nothing to inject or ctx is done.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent string, stylesheets ...string) string {
	css := joinStylesheets(stylesheets)
	if css == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + escapeStyleContent(css) + "</style>"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.IndexByte(htmlContent[idx:], '>'); end != -1 {
			pos := idx + end + 1
			return htmlContent[:pos] + styleBlock + htmlContent[pos:]
		}
	}

	return styleBlock + htmlContent
}

func joinStylesheets(sheets []string) string {
	kept := make([]string, 0, len(sheets))
	for _, s := range sheets {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n")
}

// escapeStyleContent keeps the stylesheet from closing its <style> element early.
func escapeStyleContent(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
