// Package fileutil provides file, path and text decoding helpers.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrUnknownEncoding        = errors.New("unknown character encoding")
	ErrInvalidEncoding        = errors.New("content is not valid in the declared encoding")
)

// DefaultEncoding is assumed when no source encoding is given.
const DefaultEncoding = "utf-8"

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "qtf2html-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
//
// Examples:
//   - "qpad" -> false (name)
//   - "./custom.css" -> true
//   - "C:\styles\custom.css" -> true
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsCSS returns true if the string looks like inline CSS rather than a name or path.
func IsCSS(s string) bool {
	return strings.Contains(s, "{")
}

// ReplaceExt returns the base name of path with its extension replaced by ext
// (which includes the leading dot).
func ReplaceExt(path, ext string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// LookupEncoding resolves an IANA charset name or alias such as "windows-1252"
// or "latin1". An empty name resolves to UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// DecodeText converts data from the named charset to a UTF-8 string.
// UTF-8 input is validated rather than transcoded, and a leading byte order
// mark is dropped.
func DecodeText(data []byte, charset string) (string, error) {
	enc, err := LookupEncoding(charset)
	if err != nil {
		return "", err
	}

	if isUTF8(enc) {
		data = trimBOM(data)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: utf-8", ErrInvalidEncoding)
		}
		return string(data), nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		name, _ := ianaindex.IANA.Name(enc)
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidEncoding, name, err)
	}
	return string(out), nil
}

// ReadText reads a file and decodes it with DecodeText.
func ReadText(path, charset string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", err
	}
	return DecodeText(data, charset)
}

func isUTF8(enc encoding.Encoding) bool {
	name, err := ianaindex.IANA.Name(enc)
	return err == nil && strings.EqualFold(name, "UTF-8")
}

func trimBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
