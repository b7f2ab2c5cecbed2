package hints

// Notes:
// - Environment-driven tests cannot use t.Parallel(): they call t.Setenv and
//   swap the package-level IsInContainer.

import (
	"strings"
	"testing"

	"github.com/alnah/go-mdacademic/internal/native"
)

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func TestForLibraryLoad(t *testing.T) {
	t.Run("env unset", func(t *testing.T) {
		t.Setenv(native.EnvLibraryPath, "")

		hint := ForLibraryLoad([]string{"/opt/app/libmarkdown_academic.so", "libmarkdown_academic.so"})

		for _, want := range []string{"hint:", "set " + native.EnvLibraryPath, "--lib", "cargo build --release", "searched: /opt/app/libmarkdown_academic.so, libmarkdown_academic.so"} {
			if !strings.Contains(hint, want) {
				t.Errorf("hint missing %q: %q", want, hint)
			}
		}
	})

	t.Run("env set", func(t *testing.T) {
		t.Setenv(native.EnvLibraryPath, "/tmp/lib.so")

		hint := ForLibraryLoad(nil)

		if strings.Contains(hint, "set "+native.EnvLibraryPath) {
			t.Error("should not suggest setting a variable that is already set")
		}
		if !strings.Contains(hint, "readable shared library") {
			t.Errorf("expected a check-the-path hint, got %q", hint)
		}
		if strings.Contains(hint, "searched:") {
			t.Error("no searched list expected")
		}
	})
}

func TestForPDFUnavailable(t *testing.T) {
	t.Parallel()

	hint := ForPDFUnavailable()
	if !strings.Contains(hint, "--features pdf") || !strings.Contains(hint, "--engine chrome") {
		t.Errorf("unexpected hint %q", hint)
	}
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		ci          string
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{"in CI", false, "true", "", "", true, true},
		{"in Docker", true, "", "", "", true, true},
		{"sandbox already disabled", true, "", "1", "", false, true},
		{"browser configured", false, "", "", "/usr/bin/chrome", false, false},
		{"all configured", true, "true", "1", "/usr/bin/chrome", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			t.Setenv("CI", tt.ci)
			t.Setenv("GITHUB_ACTIONS", "")
			t.Setenv("GITLAB_CI", "")
			t.Setenv("JENKINS_URL", "")
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX suggested = %v, want %v (%q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN suggested = %v, want %v (%q)", got, tt.wantBin, hint)
			}
			if !tt.wantSandbox && !tt.wantBin && hint != "" {
				t.Errorf("expected empty hint, got %q", hint)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{"empty paths", nil, "--config"},
		{"user path suggested", []string{"./paper.yaml", "/home/u/.config/go-mdacademic/paper.yaml"}, "create /home/u/.config/go-mdacademic/paper.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for _, h := range []string{ForOutputDirectory(), ForPDFUnavailable(), ForConfigNotFound(nil)} {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
	if format("") != "" || formatHints(nil) != "" {
		t.Error("empty input must yield no hint")
	}
}
