package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// stylesDir is the sub-directory of a base path holding {name}.css files.
const stylesDir = "styles"

// FilesystemLoader loads styles from {basePath}/styles/{name}.css.
// Files are opened through an os.Root on the styles directory, so a symlink
// pointing outside of it is refused.
type FilesystemLoader struct {
	dir string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a directory. A base path
// without a styles/ sub-directory is valid and simply provides no style.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}

	return &FilesystemLoader{dir: filepath.Join(abs, stylesDir)}, nil
}

// LoadStyle reads {name}.css from the styles directory.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	root, err := os.OpenRoot(f.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer root.Close()

	file := name + ".css"
	content, err := root.ReadFile(file)
	if err == nil {
		return string(content), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	if info, lerr := root.Lstat(file); lerr == nil && info.Mode()&fs.ModeSymlink != 0 {
		return "", fmt.Errorf("%w: %s links outside %s", ErrPathTraversal, file, f.dir)
	}
	return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
}

var _ StyleLoader = (*FilesystemLoader)(nil)
