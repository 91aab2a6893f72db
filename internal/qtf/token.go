package qtf

import "strings"

// TokenKind classifies a lexed token.
type TokenKind int

// Token kinds produced by Lex.
const (
	TokenText    TokenKind = iota // plain text run
	TokenNewLine                  // <def>
	TokenOpen                     // <bold>, <italic>, <underline>, <strikeout>
	TokenClose                    // </bold>, ...
	TokenStyle                    // <font=...>, <size=...>, <color=...>
	TokenInert                    // any other tag, discarded
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenNewLine:
		return "newline"
	case TokenOpen:
		return "open"
	case TokenClose:
		return "close"
	case TokenStyle:
		return "style"
	case TokenInert:
		return "inert"
	}
	return "unknown"
}

// Emphasis is a semantic formatting kind.
type Emphasis string

// Semantic emphasis kinds.
const (
	Bold      Emphasis = "bold"
	Italic    Emphasis = "italic"
	Underline Emphasis = "underline"
	Strikeout Emphasis = "strikeout"
)

// emphasisElements maps emphasis kinds to their HTML elements.
var emphasisElements = map[Emphasis]string{
	Bold:      "strong",
	Italic:    "em",
	Underline: "u",
	Strikeout: "del",
}

// Element returns the HTML element name for e, or "" if e is not an emphasis.
func (e Emphasis) Element() string {
	return emphasisElements[e]
}

// Style attribute keys.
const (
	StyleFont  = "font"
	StyleSize  = "size"
	StyleColor = "color"
)

// newLineTag is the inner text of the line-break marker.
const newLineTag = "def"

// Token is one lexical unit of an inline QTF line.
// For tags, Raw holds the original text including angle brackets.
// Name and Value hold the lower-cased tag name and style value.
type Token struct {
	Kind  TokenKind
	Raw   string
	Name  string
	Value string
}

// Lex splits an inline line into text runs and tags in a single pass.
// Tags follow the grammar <name>, </name> and <name=value>, where name is one
// or more ASCII letters and value is one or more characters other than '>'.
// Matching is case-insensitive. A '<' that does not start a tag is text.
func Lex(line string) []Token {
	var tokens []Token
	textStart := 0

	for i := 0; i < len(line); {
		if line[i] != '<' {
			i++
			continue
		}
		n := scanTag(line[i:])
		if n == 0 {
			i++
			continue
		}
		if textStart < i {
			tokens = append(tokens, Token{Kind: TokenText, Raw: line[textStart:i]})
		}
		tokens = append(tokens, classify(line[i:i+n]))
		i += n
		textStart = i
	}

	if textStart < len(line) {
		tokens = append(tokens, Token{Kind: TokenText, Raw: line[textStart:]})
	}
	return tokens
}

// scanTag returns the byte length of the tag at the start of s, or 0.
func scanTag(s string) int {
	i := 1 // skip '<'
	if i < len(s) && s[i] == '/' {
		i++
	}
	nameStart := i
	for i < len(s) && isASCIILetter(s[i]) {
		i++
	}
	if i == nameStart || i >= len(s) {
		return 0
	}
	switch s[i] {
	case '>':
		return i + 1
	case '=':
		end := strings.IndexByte(s[i+1:], '>')
		if end <= 0 {
			return 0
		}
		return i + 1 + end + 1
	}
	return 0
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// classify turns raw tag text into a typed token.
// The whole tag, value included, is lower-cased before classification.
func classify(raw string) Token {
	tag := strings.ToLower(raw[1 : len(raw)-1])
	tok := Token{Kind: TokenInert, Raw: raw, Name: tag}

	switch {
	case tag == newLineTag:
		tok.Kind = TokenNewLine
	case Emphasis(tag).Element() != "":
		tok.Kind = TokenOpen
	case strings.HasPrefix(tag, "/"):
		if inner := tag[1:]; Emphasis(inner).Element() != "" {
			tok.Kind = TokenClose
			tok.Name = inner
		}
	case strings.Contains(tag, "="):
		key, value, _ := strings.Cut(tag, "=")
		switch key {
		case StyleFont, StyleSize, StyleColor:
			tok.Kind = TokenStyle
			tok.Name = key
			tok.Value = value
		}
	}
	return tok
}
