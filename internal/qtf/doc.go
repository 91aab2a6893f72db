// Package qtf parses QTF documents and converts their inline markup to HTML.
//
// A QTF document carries optional directive lines (Font=..., Size=...), a
// [Body]...[/Body] region and, inside it, [P]...[/P] paragraph blocks:
//
//	Font=Arial
//	Size=12pt
//	[Body]
//	[P align=center]<bold>Title</bold>[/P]
//	[P]first line<def><color=red>second line[/P]
//	[/Body]
//
// Parse extracts directives and paragraph blocks. Paragraph.Lines splits a
// block on the <def> marker. ConvertLine turns one logical line into an HTML
// fragment, tracking emphasis (bold, italic, underline, strikeout) on a stack
// and style attributes (font, size, color) as an inline <span>.
//
// Parsing is fail-soft: unterminated or nested blocks produce no match,
// unknown tags are dropped and mismatched closing tags are ignored.
package qtf
