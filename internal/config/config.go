// Package config loads the command line tool's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-mdacademic"
	"github.com/alnah/go-mdacademic/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file too large")
	ErrInvalidEngine   = errors.New("invalid PDF engine")
	ErrInvalidWorkers  = errors.New("invalid worker count")
)

// MaxFileSize bounds the config file read into memory.
const MaxFileSize = 1 << 20

// AppName names the user config directory.
const AppName = "go-mdacademic"

// PDF engines selectable with pdf.engine or --engine.
const (
	EngineNative = "native" // the engine's own PDF output
	EngineChrome = "chrome" // engine HTML printed by headless Chrome
	EngineAuto   = "auto"   // native when built with PDF support, else chrome
)

// Config holds all configuration for the CLI.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	Render  RenderConfig  `yaml:"render"`
	PDF     PDFConfig     `yaml:"pdf"`
	Output  OutputConfig  `yaml:"output"`
	Workers int           `yaml:"workers"` // 0 = automatic
}

// LibraryConfig points at the engine library.
type LibraryConfig struct {
	Path string `yaml:"path"` // exported as MARKDOWN_ACADEMIC_LIB when set
}

// RenderConfig holds HTML rendering options.
type RenderConfig struct {
	Math           string `yaml:"math"` // katex, mathjax, mathml
	Standalone     bool   `yaml:"standalone"`
	BasePath       string `yaml:"basePath"`
	Highlight      bool   `yaml:"highlight"`
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name
	CSS            string `yaml:"css"`            // style sheet file injected into standalone output
	Style          string `yaml:"style"`          // named style: built-in or from StyleDir
	StyleDir       string `yaml:"styleDir"`       // directory of {name}.css overriding built-ins
}

// PDFConfig holds PDF options. PageNumbers is a pointer so that an absent
// key keeps the default (on).
type PDFConfig struct {
	Engine      string `yaml:"engine"`
	Paper       string `yaml:"paper"` // letter, a4
	FontSize    int    `yaml:"fontSize"`
	TitlePage   bool   `yaml:"titlePage"`
	PageNumbers *bool  `yaml:"pageNumbers"`
	Title       string `yaml:"title"`
	Direct      bool   `yaml:"direct"` // let the engine write the file
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source file
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{Math: "katex"},
		PDF: PDFConfig{
			Engine:   EngineAuto,
			Paper:    "letter",
			FontSize: mdacademic.DefaultFontSize,
		},
	}
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	if c.Render.Math != "" {
		if _, err := mdacademic.ParseMathBackend(c.Render.Math); err != nil {
			return fmt.Errorf("render.math: %w", err)
		}
	}
	if c.PDF.Paper != "" {
		if _, err := mdacademic.ParsePaperSize(c.PDF.Paper); err != nil {
			return fmt.Errorf("pdf.paper: %w", err)
		}
	}
	switch strings.ToLower(c.PDF.Engine) {
	case "", EngineNative, EngineChrome, EngineAuto:
	default:
		return fmt.Errorf("pdf.engine: %w: %q (must be native, chrome, or auto)", ErrInvalidEngine, c.PDF.Engine)
	}
	if c.PDF.FontSize < 0 || c.PDF.FontSize > 72 {
		return fmt.Errorf("pdf.fontSize: %w: %d (must be between 1 and 72)", mdacademic.ErrInvalidFontSize, c.PDF.FontSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers: %w: %d", ErrInvalidWorkers, c.Workers)
	}
	return nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Render.Math == "" {
		c.Render.Math = def.Render.Math
	}
	if c.PDF.Engine == "" {
		c.PDF.Engine = def.PDF.Engine
	}
	if c.PDF.Paper == "" {
		c.PDF.Paper = def.PDF.Paper
	}
	if c.PDF.FontSize == 0 {
		c.PDF.FontSize = def.PDF.FontSize
	}
}

// PageNumbers resolves the optional pdf.pageNumbers key.
func (c *Config) PageNumbers() bool {
	return c.PDF.PageNumbers == nil || *c.PDF.PageNumbers
}

// LoadConfig loads configuration from a file path or a config name. A name
// is searched as <name>.yaml and <name>.yml in the working directory, then in
// the user config directory. Missing keys keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if path, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, rejecting unknown keys, fills absent values from
// DefaultConfig and validates the result.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxFileSize)
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", &NotFoundError{Name: name, Searched: paths}
}

// NotFoundError reports a config name found in none of the search paths.
type NotFoundError struct {
	Name     string
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Searched, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}
