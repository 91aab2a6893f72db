package qtf

import (
	"regexp"
	"strings"
)

// Directive keys recognized at the document root.
const (
	DirectiveFont = "Font"
	DirectiveSize = "Size"
)

// LineBreakMarker separates logical lines inside a paragraph block.
const LineBreakMarker = "<def>"

var (
	bodyPattern      = regexp.MustCompile(`(?s)\[Body\](.*?)\[/Body\]`)
	paragraphPattern = regexp.MustCompile(`(?s)\[P(?:\s+align=([^\]]+))?\](.*?)\[/P\]`)
)

// Directives holds document-level presentation defaults.
// Empty fields were not set.
type Directives struct {
	Font string
	Size string
}

// IsZero reports whether no directive was set.
func (d Directives) IsZero() bool {
	return d.Font == "" && d.Size == ""
}

// Paragraph is one [P]...[/P] block of the body.
type Paragraph struct {
	Align string // verbatim align attribute, empty if absent
	Text  string // raw inner text
}

// Lines splits the block on the line-break marker and returns the trimmed,
// non-empty logical lines in order.
func (p Paragraph) Lines() []string {
	parts := strings.Split(p.Text, LineBreakMarker)
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		if line := strings.TrimSpace(part); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Document is the parsed form of a QTF source.
type Document struct {
	Directives Directives
	Paragraphs []Paragraph
	HasBody    bool
}

// Parse extracts directives and paragraph blocks from raw QTF text.
//
// Lines are trimmed before matching. Directives are read from lines outside
// the first [Body]...[/Body] region; the last occurrence of a key wins. Only
// the first body region is used, and only well-terminated [P] blocks inside
// it are returned. Parse never fails: malformed regions yield no blocks.
func Parse(raw string) *Document {
	lines := strings.Split(normalizeNewlines(raw), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	content := strings.Join(lines, "\n")

	doc := &Document{}
	root := content

	if loc := bodyPattern.FindStringSubmatchIndex(content); loc != nil {
		doc.HasBody = true
		body := content[loc[2]:loc[3]]
		root = content[:loc[0]] + "\n" + content[loc[1]:]
		doc.Paragraphs = parseParagraphs(body)
	}

	doc.Directives = parseDirectives(root)
	return doc
}

// parseDirectives scans root-level lines for Key=Value directives.
func parseDirectives(root string) Directives {
	var d Directives
	for _, line := range strings.Split(root, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case DirectiveFont:
			d.Font = value
		case DirectiveSize:
			d.Size = value
		}
	}
	return d
}

// parseParagraphs returns all [P] blocks in body, in document order.
func parseParagraphs(body string) []Paragraph {
	matches := paragraphPattern.FindAllStringSubmatch(body, -1)
	paragraphs := make([]Paragraph, 0, len(matches))
	for _, m := range matches {
		paragraphs = append(paragraphs, Paragraph{Align: m[1], Text: m[2]})
	}
	return paragraphs
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
