package qtf

import (
	"html"
	"strings"

	"go.uber.org/zap"
)

// lineBreak is emitted for the <def> marker inside a line.
const lineBreak = "<br/>"

// style is the current set of visual attributes of a line.
type style struct {
	font  string
	size  string
	color string
}

// css renders the style as inline CSS, or "" when no field is set.
func (s style) css() string {
	clauses := make([]string, 0, 3)
	if s.font != "" {
		clauses = append(clauses, "font-family:"+s.font+";")
	}
	if s.size != "" {
		clauses = append(clauses, "font-size:"+s.size+";")
	}
	if s.color != "" {
		clauses = append(clauses, "color:"+s.color+";")
	}
	return strings.Join(clauses, " ")
}

// field returns a pointer to the field named key, or nil.
func (s *style) field(key string) *string {
	switch key {
	case StyleFont:
		return &s.font
	case StyleSize:
		return &s.size
	case StyleColor:
		return &s.color
	}
	return nil
}

// inlineState is the formatting state of one line being converted.
type inlineState struct {
	out      strings.Builder
	semantic []Emphasis
	style    style
	spanOpen bool
	log      *zap.Logger
}

func (st *inlineState) top() (Emphasis, bool) {
	if len(st.semantic) == 0 {
		return "", false
	}
	return st.semantic[len(st.semantic)-1], true
}

func (st *inlineState) hasEmphasis(e Emphasis) bool {
	for _, s := range st.semantic {
		if s == e {
			return true
		}
	}
	return false
}

func (st *inlineState) openSpan() {
	css := st.style.css()
	if css == "" {
		return
	}
	st.spanOpen = true
	st.out.WriteString(`<span style="`)
	st.out.WriteString(html.EscapeString(css))
	st.out.WriteString(`">`)
	st.log.Debug("span opened", zap.String("css", css))
}

func (st *inlineState) closeSpan() {
	if !st.spanOpen {
		return
	}
	st.spanOpen = false
	st.out.WriteString("</span>")
	st.log.Debug("span closed")
}

func (st *inlineState) openEmphasis(e Emphasis) {
	if st.hasEmphasis(e) {
		st.log.Debug("emphasis already open", zap.String("emphasis", string(e)))
		return
	}
	st.semantic = append(st.semantic, e)
	st.out.WriteString("<" + e.Element() + ">")
}

// closeEmphasis pops e only when it is the top of the stack.
func (st *inlineState) closeEmphasis(e Emphasis) {
	top, ok := st.top()
	if !ok || top != e {
		st.log.Debug("close ignored, not on top", zap.String("emphasis", string(e)))
		return
	}
	st.semantic = st.semantic[:len(st.semantic)-1]
	st.out.WriteString("</" + e.Element() + ">")
}

// reopenEmphasis re-emits every open emphasis, bottom to top.
func (st *inlineState) reopenEmphasis() {
	for _, e := range st.semantic {
		st.out.WriteString("<" + e.Element() + ">")
	}
}

// lineBreak closes only the innermost emphasis, breaks, and reopens the
// span and every emphasis on the stack.
func (st *inlineState) lineBreak() {
	if top, ok := st.top(); ok {
		st.out.WriteString("</" + top.Element() + ">")
	}
	st.closeSpan()
	st.out.WriteString(lineBreak)
	st.openSpan()
	st.reopenEmphasis()
}

func (st *inlineState) setStyle(key, value string) {
	f := st.style.field(key)
	if f == nil || *f == value {
		return
	}
	st.closeSpan()
	*f = value
	st.openSpan()
	st.reopenEmphasis()
}

// finish closes the span and drains the stack top to bottom.
func (st *inlineState) finish() {
	st.closeSpan()
	for len(st.semantic) > 0 {
		top, _ := st.top()
		st.closeEmphasis(top)
	}
}

// LineConverter converts logical QTF lines to HTML fragments.
// It holds no per-line state and is safe for concurrent use.
type LineConverter struct {
	log *zap.Logger
}

// NewLineConverter returns a LineConverter that writes debug entries to log.
// A nil log disables diagnostics.
func NewLineConverter(log *zap.Logger) *LineConverter {
	if log == nil {
		log = zap.NewNop()
	}
	return &LineConverter{log: log}
}

// Convert converts one logical line to an HTML fragment.
// Every span and emphasis element it opens without a matching close is
// closed at the end of the line.
func (c *LineConverter) Convert(line string) string {
	st := &inlineState{log: c.log}

	for _, tok := range Lex(line) {
		switch tok.Kind {
		case TokenText:
			st.out.WriteString(html.EscapeString(tok.Raw))
		case TokenNewLine:
			st.lineBreak()
		case TokenOpen:
			st.openEmphasis(Emphasis(tok.Name))
		case TokenClose:
			st.closeEmphasis(Emphasis(tok.Name))
		case TokenStyle:
			st.setStyle(tok.Name, tok.Value)
		default:
			c.log.Debug("tag ignored", zap.String("tag", tok.Raw))
		}
	}

	st.finish()
	return st.out.String()
}

var defaultLineConverter = NewLineConverter(nil)

// ConvertLine converts one logical line to an HTML fragment without
// diagnostics.
func ConvertLine(line string) string {
	return defaultLineConverter.Convert(line)
}
