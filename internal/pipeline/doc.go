// Package pipeline implements the QTF-to-HTML conversion pipeline.
//
// The stages run in order on a single goroutine:
//   - document assembly: directives, paragraph blocks and inline markup
//     (package qtf) are turned into a standalone HTML5 document
//   - sanitization: empty span, em, u, del and strong elements are removed
//   - stylesheet injection: optional CSS is placed in the document head
//
// PDF rendering is handled separately by the root qtf2html package using
// headless Chrome (go-rod).
package pipeline
