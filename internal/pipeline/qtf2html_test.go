package pipeline

// Notes:
// - Progress is recorded through a slice-appending callback; the converter
//   calls it synchronously so no locking is needed.
// - Output goes through the HTML5 parser during sanitization, so assertions
//   target stable substrings rather than whole documents.

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/alnah/go-qtf2html/internal/qtf"
)

func convertForTest(t *testing.T, content string) (string, []int) {
	t.Helper()

	var progress []int
	out, err := NewQTFConverter(nil).ToHTML(context.Background(), content, func(p int) {
		progress = append(progress, p)
	})
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	return out, progress
}

// ---------------------------------------------------------------------------
// TestQTFConverter_Progress
// ---------------------------------------------------------------------------

func TestQTFConverter_Progress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []int
	}{
		{
			name:    "no body",
			content: "Font=Arial",
			want:    []int{100, 100},
		},
		{
			name:    "empty body",
			content: "[Body][/Body]",
			want:    []int{100, 100},
		},
		{
			name:    "single block",
			content: "[Body][P]a[/P][/Body]",
			want:    []int{100, 100, 100},
		},
		{
			name:    "three blocks floor",
			content: "[Body][P]a[/P][P]b[/P][P]c[/P][/Body]",
			want:    []int{33, 66, 100, 100, 100},
		},
		{
			name:    "whitespace block still advances",
			content: "[Body][P]   [/P][P]b[/P][/Body]",
			want:    []int{50, 100, 100, 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, got := convertForTest(t, tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("progress = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestQTFConverter_ToHTML - Document assembly
// ---------------------------------------------------------------------------

func TestQTFConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
		notWant []string
	}{
		{
			name:    "shell without directives",
			content: "[Body][P]hello[/P][/Body]",
			want:    []string{"<!DOCTYPE html>", `<meta charset="utf-8"/>`, "<body>", "<p>hello</p>"},
			notWant: []string{"<body style"},
		},
		{
			name:    "font directive",
			content: "Font=Arial\n[Body][P]x[/P][/Body]",
			want:    []string{`<body style="font-family:Arial;">`},
		},
		{
			name:    "font and size directives",
			content: "Size=12pt\nFont=Arial\n[Body][P]x[/P][/Body]",
			want:    []string{`<body style="font-family:Arial; font-size:12pt;">`},
		},
		{
			name:    "aligned paragraph",
			content: "[Body][P align=center]mid[/P][/Body]",
			want:    []string{`<p style="text-align:center;">mid</p>`},
		},
		{
			name:    "new-line marker splits paragraphs",
			content: "[Body][P align=right]one<def>two[/P][/Body]",
			want:    []string{`<p style="text-align:right;">one</p>`, `<p style="text-align:right;">two</p>`},
		},
		{
			name:    "inline break keeps emphasis",
			content: "Font=Arial\n[Body][P]Body-text <bold>Hi<DEF>there</bold>[/P][/Body]",
			want: []string{
				`<body style="font-family:Arial;">`,
				"<p>Body-text <strong>Hi</strong><br/><strong>there</strong></p>",
			},
			notWant: []string{"<strong></strong>"},
		},
		{
			name:    "whitespace block emits nothing",
			content: "[Body][P]  [/P][/Body]",
			notWant: []string{"<p"},
		},
		{
			name:    "empty spans sanitized",
			content: "[Body][P]<color=red><color=blue>x[/P][/Body]",
			want:    []string{`<p><span style="color:blue;">x</span></p>`},
			notWant: []string{"color:red"},
		},
		{
			name:    "text escaped",
			content: "[Body][P]a & b[/P][/Body]",
			want:    []string{"<p>a &amp; b</p>"},
		},
		{
			name:    "paragraph order preserved",
			content: "[Body][P]first[/P]\n[P]second[/P][/Body]",
			want:    []string{"<p>first</p>\n<p>second</p>"},
		},
		{
			name:    "style change under emphasis stays in its paragraph",
			content: "[Body][P]<bold>a<color=red>b</bold>[/P][P]plain[/P][/Body]",
			want: []string{
				`<p><strong>a<span style="color:red;"><strong>b</strong></span></strong></p>`,
				"<p>plain</p>",
			},
			notWant: []string{"<strong>\n<p>plain", "</p>\n\n</strong>"},
		},
		{
			name:    "size change under italic stays in its paragraph",
			content: "[Body][P]<italic>a<size=12>b[/P][P]plain[/P][/Body]",
			want:    []string{"</em></p>\n<p>plain</p>"},
			notWant: []string{"</em></body>"},
		},
		{
			name:    "upper-case break under nested emphasis stays in its paragraph",
			content: "[Body][P]<bold><italic>a<DEF>b[/P][P]plain[/P][/Body]",
			want:    []string{"</em></strong></strong></p>\n<p>plain</p>"},
			notWant: []string{"</strong></body>"},
		},
		{
			name:    "content outside body ignored",
			content: "[P]stray[/P]",
			notWant: []string{"stray"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := convertForTest(t, tt.content)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("output should not contain %q:\n%s", nw, got)
				}
			}
		})
	}
}

func TestQTFConverter_ToHTML_NilProgress(t *testing.T) {
	t.Parallel()

	got, err := NewQTFConverter(nil).ToHTML(context.Background(), "[Body][P]x[/P][/Body]", nil)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if !strings.Contains(got, "<p>x</p>") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestQTFConverter_ToHTML_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := NewQTFConverter(nil).ToHTML(ctx, "[Body][P]x[/P][/Body]", func(int) { called = true })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("progress should not be reported for a canceled conversion")
	}
}

// ---------------------------------------------------------------------------
// TestBodyStyle
// ---------------------------------------------------------------------------

func TestBodyStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   qtf.Directives
		want string
	}{
		{"none", qtf.Directives{}, ""},
		{"font only", qtf.Directives{Font: "Arial"}, "font-family:Arial;"},
		{"size only", qtf.Directives{Size: "10pt"}, "font-size:10pt;"},
		{"both", qtf.Directives{Font: "Arial", Size: "10pt"}, "font-family:Arial; font-size:10pt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := BodyStyle(tt.in); got != tt.want {
				t.Errorf("BodyStyle() = %q, want %q", got, tt.want)
			}
		})
	}
}
