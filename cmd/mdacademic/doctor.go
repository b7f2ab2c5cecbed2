package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-mdacademic/internal/chrome"
	"github.com/alnah/go-mdacademic/internal/native"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Library  libraryInfo `json:"library"`
	Chrome   chromeInfo  `json:"chrome"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// libraryInfo holds engine library detection results.
type libraryInfo struct {
	Name     string `json:"name,omitempty"` // platform file name
	Override string `json:"override,omitempty"`
	Loaded   bool   `json:"loaded"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
	PDF      bool   `json:"pdf"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// Swapped in tests.
var (
	lookChrome    = chrome.LookPath
	chromeVersion = func(path string) (string, error) {
		out, err := exec.Command(path, "--version").Output() // #nosec G204 -- located browser binary
		return strings.TrimSpace(string(out)), err
	}
	tempDir = os.TempDir
)

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  env.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: env.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkLibrary(result, env)
	checkChrome(result)
	checkPDFPath(result)
	checkEnvironment(result, env)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkLibrary loads the engine and records what it offers.
func checkLibrary(result *doctorResult, env *Environment) {
	name, err := native.LibraryName(runtime.GOOS)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Library.Name = name
	result.Library.Override = env.Getenv(native.EnvLibraryPath)

	info, err := env.Engine.Info()
	if err != nil {
		msg := "Engine library not loaded: " + err.Error()
		if result.Library.Override == "" {
			msg += ". Set " + native.EnvLibraryPath
		}
		result.Errors = append(result.Errors, msg)
		return
	}

	result.Library.Loaded = true
	result.Library.Path = info.Path
	result.Library.Version = info.Version
	result.Library.PDF = info.PDF
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult) {
	path, found := lookChrome()
	if !found {
		return
	}
	if _, err := os.Stat(path); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Chrome not found at %s", path))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = path
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	version, err := chromeVersion(path)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get Chrome version: %v", err))
		return
	}
	result.Chrome.Version = version
}

// checkPDFPath warns when neither PDF engine is usable.
func checkPDFPath(result *doctorResult) {
	if !result.Library.Loaded || result.Library.PDF || result.Chrome.Found {
		return
	}
	result.Warnings = append(result.Warnings,
		"No PDF engine: rebuild the library with --features pdf, or install Chrome (set ROD_BROWSER_BIN)")
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env.Getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer returns whether the process runs in a container and which
// signal said so.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("MDACADEMIC_CONTAINER") == "1" {
		return true, "MDACADEMIC_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used by the chrome engine.
func checkSystem(result *doctorResult) {
	dir := tempDir()
	testFile := filepath.Join(dir, "mdacademic-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Temp directory not writable: %s", dir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdacademic doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Engine library")
	if r.Library.Override != "" {
		fmt.Fprintf(w, "  [OK] Override: %s\n", r.Library.Override)
	}
	if r.Library.Loaded {
		fmt.Fprintf(w, "  [OK] Loaded from %s\n", r.Library.Path)
		fmt.Fprintf(w, "  [OK] Version: %s\n", r.Library.Version)
		if r.Library.PDF {
			fmt.Fprintln(w, "  [OK] PDF: available")
		} else {
			fmt.Fprintln(w, "  [--] PDF: not compiled in")
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] Not loaded (looking for %s)\n", r.Library.Name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [--] Not found (only needed for --engine chrome)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
