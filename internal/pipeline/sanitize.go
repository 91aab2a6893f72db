package pipeline

import (
	"context"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"go.uber.org/zap"
)

// formattingSelector matches the elements the converter may leave empty.
var formattingSelector = cascadia.MustCompile("span, em, u, del, strong")

// HTMLSanitizer defines the contract for the empty-element cleanup pass.
type HTMLSanitizer interface {
	Sanitize(ctx context.Context, htmlContent string) (string, error)
}

// EmptyTagSanitizer removes formatting elements that wrap no visible text.
type EmptyTagSanitizer struct {
	Log *zap.Logger
}

// Sanitize removes every span, em, u, del and strong element whose text
// content is empty after trimming whitespace. Removal detaches the element
// and its subtree; siblings and ancestors are left untouched.
// The result is stable: sanitizing it again returns it unchanged.
func (s *EmptyTagSanitizer) Sanitize(_ context.Context, htmlContent string) (string, error) {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	removed := 0
	for _, n := range formattingSelector.MatchAll(doc) {
		if n.Parent == nil || strings.TrimSpace(textContent(n)) != "" {
			continue
		}
		n.Parent.RemoveChild(n)
		removed++
	}
	log.Debug("empty formatting elements removed", zap.Int("count", removed))

	return renderHTML(doc, isFragment)
}

// Sanitize runs the empty-element cleanup without diagnostics.
func Sanitize(htmlContent string) (string, error) {
	return (&EmptyTagSanitizer{}).Sanitize(context.Background(), htmlContent)
}

// BalanceFragment closes any element a converted line leaves open.
// The fragment is parsed in a <p> context, so formatting elements cannot
// carry over into the paragraphs that follow it in the document.
func BalanceFragment(fragment string) (string, error) {
	paragraph := &html.Node{Type: html.ElementNode, DataAtom: atom.P, Data: "p"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), paragraph)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// textContent concatenates the text of every descendant text node.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to a string.
// Fragments render their children only, without an <html><body> wrapper.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
