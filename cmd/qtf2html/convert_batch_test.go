package main

// Notes:
// - convertBatch/convertFile run against mockConverter and mockPool; the real
//   pipeline is covered by main_test.go.
// - Duration uses the injected clock, so it is always zero here.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-qtf2html"
)

func writeSources(t *testing.T, dir string, names ...string) []FileToConvert {
	t.Helper()

	files := make([]FileToConvert, 0, len(names))
	for _, name := range names {
		src := filepath.Join(dir, name)
		if err := os.WriteFile(src, []byte("[Body][P]"+name+"[/P][/Body]"), 0o644); err != nil {
			t.Fatal(err)
		}
		files = append(files, FileToConvert{
			InputPath:  src,
			OutputPath: filepath.Join(dir, "out", "nested", strings.TrimSuffix(name, ".qtf")+".html"),
		})
	}
	return files
}

// ---------------------------------------------------------------------------
// TestConvertBatch
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := writeSources(t, dir, "a.qtf", "b.qtf", "c.qtf")
	conv := &mockConverter{html: "<html></html>"}
	pool := &mockPool{conv: conv, size: 2}
	env, _, _ := testEnv(pool)
	params := &conversionParams{css: "p{}", page: qtf2html.DefaultPageSettings()}

	results := convertBatch(context.Background(), pool, files, params, env, nopLogger(t))

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
		if r.InputPath != files[i].InputPath {
			t.Errorf("results[%d] out of order: %s", i, r.InputPath)
		}
		data, err := os.ReadFile(r.OutputPath)
		if err != nil || string(data) != "<html></html>" {
			t.Errorf("output %s = %q, %v", r.OutputPath, data, err)
		}
		if r.PDFPath != "" {
			t.Errorf("PDFPath should be empty without --pdf")
		}
	}

	calls := conv.calls()
	if len(calls) != 3 {
		t.Fatalf("Convert called %d times", len(calls))
	}
	for _, in := range calls {
		if in.CSS != "p{}" || in.Page == nil || in.PDF || in.Name == "" || !strings.Contains(in.QTF, "[Body]") {
			t.Errorf("unexpected input %+v", in)
		}
	}
}

func TestConvertBatch_WritesPDF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := writeSources(t, dir, "doc.qtf")
	pool := &mockPool{conv: &mockConverter{html: "<html></html>", pdf: []byte("%PDF-1.7")}, size: 1}
	env, _, _ := testEnv(pool)

	results := convertBatch(context.Background(), pool, files, &conversionParams{pdf: true}, env, nopLogger(t))

	r := results[0]
	if r.Err != nil {
		t.Fatalf("Err = %v", r.Err)
	}
	if want := filepath.Join(dir, "out", "nested", "doc.pdf"); r.PDFPath != want {
		t.Errorf("PDFPath = %q, want %q", r.PDFPath, want)
	}
	if data, _ := os.ReadFile(r.PDFPath); string(data) != "%PDF-1.7" {
		t.Errorf("pdf content = %q", data)
	}
}

func TestConvertBatch_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unreadable source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		pool := &mockPool{conv: &mockConverter{}, size: 1}
		env, _, _ := testEnv(pool)
		files := []FileToConvert{{InputPath: filepath.Join(dir, "missing.qtf"), OutputPath: filepath.Join(dir, "x.html")}}

		r := convertBatch(context.Background(), pool, files, &conversionParams{}, env, nopLogger(t))[0]
		if !errors.Is(r.Err, ErrReadQTF) || !errors.Is(r.Err, os.ErrNotExist) {
			t.Errorf("Err = %v, want ErrReadQTF wrapping not-exist", r.Err)
		}
	})

	t.Run("converter error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		files := writeSources(t, dir, "doc.qtf")
		pool := &mockPool{conv: &mockConverter{err: qtf2html.ErrSanitize}, size: 1}
		env, _, _ := testEnv(pool)

		r := convertBatch(context.Background(), pool, files, &conversionParams{}, env, nopLogger(t))[0]
		if !errors.Is(r.Err, qtf2html.ErrSanitize) {
			t.Errorf("Err = %v, want ErrSanitize", r.Err)
		}
	})

	t.Run("converter init failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		files := writeSources(t, dir, "a.qtf", "b.qtf")
		pool := &mockPool{size: 2, initErr: errMockInit}
		env, _, _ := testEnv(pool)

		for _, r := range convertBatch(context.Background(), pool, files, &conversionParams{}, env, nopLogger(t)) {
			if !errors.Is(r.Err, ErrConverterInit) || !errors.Is(r.Err, errMockInit) {
				t.Errorf("Err = %v, want ErrConverterInit wrapping init error", r.Err)
			}
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		files := writeSources(t, dir, "a.qtf", "b.qtf")
		conv := &mockConverter{}
		pool := &mockPool{conv: conv, size: 1}
		env, _, _ := testEnv(pool)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		for _, r := range convertBatch(ctx, pool, files, &conversionParams{}, env, nopLogger(t)) {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("Err = %v, want context.Canceled", r.Err)
			}
		}
		if len(conv.calls()) != 0 {
			t.Error("no file should be converted after cancellation")
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		pool := &mockPool{size: 1}
		env, _, _ := testEnv(pool)
		if got := convertBatch(context.Background(), pool, nil, &conversionParams{}, env, nopLogger(t)); got != nil {
			t.Errorf("convertBatch(nil) = %v, want nil", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResultsWithWriter
// ---------------------------------------------------------------------------

func TestPrintResultsWithWriter(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.qtf", OutputPath: "out/a.html", PDFPath: "out/a.pdf"},
		{InputPath: "b.qtf", Err: ErrReadQTF},
	}

	t.Run("normal", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		err := printResultsWithWriter(results, false, env)

		var be *batchError
		if !errors.As(err, &be) || be.failed != 1 || be.total != 2 {
			t.Fatalf("error = %v, want batchError 1 of 2", err)
		}
		if !errors.Is(err, ErrReadQTF) {
			t.Error("batchError should unwrap to the file error")
		}
		if err.Error() != "1 of 2 conversion(s) failed" {
			t.Errorf("Error() = %q", err.Error())
		}
		if got, want := stdout.String(), "out/a.html\nout/a.pdf\n"; got != want {
			t.Errorf("stdout = %q, want %q", got, want)
		}
		for _, want := range []string{"FAILED b.qtf", "1 succeeded, 1 failed"} {
			if !strings.Contains(stderr.String(), want) {
				t.Errorf("stderr should contain %q, got %q", want, stderr.String())
			}
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		_ = printResultsWithWriter(results, true, env)
		if stdout.Len() != 0 {
			t.Errorf("quiet stdout = %q", stdout.String())
		}
		if !strings.Contains(stderr.String(), "FAILED") {
			t.Error("failures are printed even when quiet")
		}
	})

	t.Run("all succeeded", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		if err := printResultsWithWriter(results[:1], false, env); err != nil {
			t.Errorf("error = %v", err)
		}
		if got := stdout.String(); got != "out/a.html\nout/a.pdf\n" {
			t.Errorf("stdout = %q, want bare paths", got)
		}
		if stderr.Len() != 0 {
			t.Errorf("single result should not print a summary, stderr = %q", stderr.String())
		}
	})
}
