package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdacademic"
	"github.com/alnah/go-mdacademic/internal/assets"
	"github.com/alnah/go-mdacademic/internal/chrome"
	"github.com/alnah/go-mdacademic/internal/config"
)

// Exit codes for the mdacademic CLI.
// 0=success, 1=general, 2=usage, custom codes stay below 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitEngine   = 4 // Engine library or browser unavailable
	ExitDocument = 5 // The document failed to parse or render
)

// exitCodeFor returns the exit code for err. It relies on errors.Is, so
// callers wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, mdacademic.ErrLibraryLoad) ||
		errors.Is(err, mdacademic.ErrUnsupportedPlatform) ||
		errors.Is(err, mdacademic.ErrPDFUnavailable) ||
		errors.Is(err, chrome.ErrBrowserConnect) ||
		errors.Is(err, chrome.ErrPageCreate) ||
		errors.Is(err, chrome.ErrPageLoad) ||
		errors.Is(err, chrome.ErrPDFGeneration) {
		return ExitEngine
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrStdoutBatch) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, config.ErrInvalidEngine) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, mdacademic.ErrInvalidMathBackend) ||
		errors.Is(err, mdacademic.ErrInvalidPaperSize) ||
		errors.Is(err, mdacademic.ErrInvalidFontSize) ||
		errors.Is(err, chrome.ErrUnknownPaper) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	if errors.Is(err, mdacademic.ErrMarkdownAcademic) {
		return ExitDocument
	}

	return ExitGeneral
}
