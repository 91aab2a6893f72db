// Package qtf2html converts QTF rich-text documents to standalone HTML5,
// and optionally to PDF using headless Chrome.
//
// # Quick Start
//
//	conv, err := qtf2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, qtf2html.Input{
//	    QTF: "[Body][P align=center]<bold>Hello</bold>[/P][/Body]",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.html", result.HTML, 0644)
//
// # Conversion Pipeline
//
//  1. Directive extraction (Font=, Size=) outside the [Body] section
//  2. Block splitting on <def> and paragraph/inline translation
//  3. Removal of empty formatting elements (span, em, u, del, strong)
//  4. CSS injection (converter style, then Input.CSS)
//  5. PDF rendering via go-rod, only when Input.PDF is set
//
// Input.Progress receives integer percentages while blocks are translated,
// then 100 once the body is complete and again after cleanup.
//
// # Configuration
//
//	conv, err := qtf2html.NewConverter(
//	    qtf2html.WithTimeout(time.Minute),
//	    qtf2html.WithStyle("print"),
//	    qtf2html.WithAssetPath("/path/to/assets"),
//	    qtf2html.WithLogger(logger),
//	)
//
// # Parallel Processing
//
//	pool := qtf2html.NewConverterPool(4)
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// PDF output requires Chrome/Chromium. go-rod downloads a managed Chromium
// on first use. Set ROD_NO_SANDBOX=1 in containers and ROD_BROWSER_BIN to
// point at a pre-installed binary.
package qtf2html
