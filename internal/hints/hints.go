// Package hints turns common qtf2html failures into one-line suggestions.
// Each hint reads "\n  hint: <text>" so it can be appended to an error message.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-qtf2html/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciEnvVars are set by the CI runners we know about.
var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect suggests rod environment settings after a failed Chrome
// launch (PDF output). Returns "" when both are already set.
func ForBrowserConnect() string {
	var tips []string
	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		tips = append(tips, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	return format(tips...)
}

// ForTimeout suggests raising the PDF timeout.
func ForTimeout() string {
	return format("long documents may need a larger --timeout")
}

// ForConfigNotFound suggests --config, or creating the file at the user
// config location among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-qtf2html") {
			return format("use --config /path/to/file.yaml or create " + p)
		}
	}
	return format("use --config /path/to/file.yaml")
}

// ForOutputDirectory is shown when an output directory cannot be created.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available style names.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForEncoding is shown when a source file is not valid in its charset.
func ForEncoding() string {
	return format("QTF files from older editors are often windows-1252; try --encoding windows-1252")
}

func inCI() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// format joins tips with "; " behind the hint prefix. No tips, no hint.
func format(tips ...string) string {
	if len(tips) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(tips, "; ")
}
