// Package hints turns common failures into short, actionable suggestions.
// A hint renders as "\n  hint: <text>" and is appended to the error message.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdacademic/internal/fileutil"
	"github.com/alnah/go-mdacademic/internal/native"
)

// IsInContainer reports whether the process runs in a Docker container.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForLibraryLoad suggests how to make the engine library findable. searched
// is the candidate list the locator tried, most specific first.
func ForLibraryLoad(searched []string) string {
	var hints []string
	if os.Getenv(native.EnvLibraryPath) == "" {
		hints = append(hints, "set "+native.EnvLibraryPath+" or pass --lib /path/to/library")
	} else {
		hints = append(hints, native.EnvLibraryPath+" is set; check that it names a readable shared library")
	}
	hints = append(hints, "build it with: cargo build --release")
	if len(searched) > 0 {
		hints = append(hints, "searched: "+strings.Join(searched, ", "))
	}
	return formatHints(hints)
}

// ForPDFUnavailable explains how to get an engine with PDF output, or how to
// print through Chrome instead.
func ForPDFUnavailable() string {
	return format("rebuild the engine with: cargo build --release --features pdf; or use --engine chrome")
}

// ForBrowserConnect suggests environment variables for the chrome engine,
// depending on whether we appear to run in CI or a container.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	return formatHints(hints)
}

// ForConfigNotFound suggests --config, or creating the first user config
// path among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-mdacademic") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
