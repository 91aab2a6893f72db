package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-qtf2html/internal/fileutil"
)

// qtfExt is the source extension searched in directories.
const qtfExt = ".qtf"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string // .html path; the PDF, if any, sits next to it
}

// discoverFiles lists the files to convert. A file input is converted
// whatever its extension; a directory is walked for *.qtf, and the
// sub-directory layout is mirrored under outputDir.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []FileToConvert{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, outputDir, "")}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !hasQTFExtension(path) {
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: resolveOutputPath(path, outputDir, inputPath)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].InputPath < files[j].InputPath })
	return files, nil
}

// resolveOutputPath determines the HTML output path for a source file.
// For a single file, an outputDir ending in .html names the output directly.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	if baseInputDir == "" && strings.EqualFold(filepath.Ext(outputDir), ".html") {
		return outputDir
	}

	name := fileutil.ReplaceExt(inputPath, ".html")
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), name)
		}
	}
	return filepath.Join(outputDir, name)
}

// pdfOutputPath returns the PDF path next to an HTML output path.
func pdfOutputPath(htmlPath string) string {
	return filepath.Join(filepath.Dir(htmlPath), fileutil.ReplaceExt(htmlPath, ".pdf"))
}

// hasQTFExtension reports whether path ends in .qtf, ignoring case.
func hasQTFExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), qtfExt)
}
