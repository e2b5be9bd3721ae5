package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// configNames are the file names looked up in a config directory, in order.
var configNames = []string{"config.json", "config.yaml", "config.yml"}

// Config holds application configuration.
type Config struct {
	// IconPrefix is prepended to the first tag of every extracted glyph
	IconPrefix string `json:"icon_prefix,omitempty" yaml:"icon_prefix,omitempty"`

	// DefaultViewBox is used for font-export documents without a height
	DefaultViewBox int `json:"default_view_box,omitempty" yaml:"default_view_box,omitempty"`

	// OutputDir is where converted files are written.
	// Relative paths are resolved against the working directory.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// IconsOutput is the file name of the combined icon list
	IconsOutput string `json:"icons_output,omitempty" yaml:"icons_output,omitempty"`

	// SnippetsOutput is the file name of the snippet list produced from a stylesheet
	SnippetsOutput string `json:"snippets_output,omitempty" yaml:"snippets_output,omitempty"`

	// StylesheetOutput is the file name of the stylesheet produced from a document
	StylesheetOutput string `json:"stylesheet_output,omitempty" yaml:"stylesheet_output,omitempty"`

	// DataFile is the catalog the editor extension loads (icons and snippets).
	// Used by lookup, the web preview and the MCP catalog tools.
	DataFile string `json:"data_file,omitempty" yaml:"data_file,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty" yaml:"disabled_tools,omitempty"`

	// Logging configures console and optional file logging
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		IconPrefix:       "if-",
		DefaultViewBox:   1024,
		OutputDir:        filepath.Join("tools", "output"),
		IconsOutput:      "output.data.json",
		SnippetsOutput:   "output.json",
		StylesheetOutput: "output.css",
		DataFile:         filepath.Join("data", "iconforge.data.json"),
		Logging: LoggingConfig{
			Console: LoggerConfig{Level: "normal"},
		},
	}
}

// Load loads configuration from baseDir (config.json, config.yaml or config.yml).
// Returns default config if no file exists.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.iconforge.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(FindConfigIn(baseDir))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// LoadWithRepo loads configuration from both global (~/.iconforge) and repo (.iconforge) directories.
// Repo config is found by walking upward from startDir to find the nearest .iconforge directory
// holding a config file. Repo config takes precedence for scalar values; arrays are merged.
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(FindConfigIn(globalDir))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindConfigIn returns the first config file present in dir, or empty string.
func FindConfigIn(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range configNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// FindRepoConfig walks upward from startDir to find the nearest .iconforge config file.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := startDir
	for {
		if p := FindConfigIn(filepath.Join(dir, ".iconforge")); p != "" {
			return p
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, not found
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the path is empty or the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.IconPrefix = firstNonEmpty(overlay.IconPrefix, base.IconPrefix)
	result.OutputDir = firstNonEmpty(overlay.OutputDir, base.OutputDir)
	result.IconsOutput = firstNonEmpty(overlay.IconsOutput, base.IconsOutput)
	result.SnippetsOutput = firstNonEmpty(overlay.SnippetsOutput, base.SnippetsOutput)
	result.StylesheetOutput = firstNonEmpty(overlay.StylesheetOutput, base.StylesheetOutput)
	result.DataFile = firstNonEmpty(overlay.DataFile, base.DataFile)

	result.DefaultViewBox = overlay.DefaultViewBox
	if result.DefaultViewBox == 0 {
		result.DefaultViewBox = base.DefaultViewBox
	}

	result.Logging.Console.Level = firstNonEmpty(overlay.Logging.Console.Level, base.Logging.Console.Level)
	result.Logging.File.Level = firstNonEmpty(overlay.Logging.File.Level, base.Logging.File.Level)
	result.Logging.File.Destination = firstNonEmpty(overlay.Logging.File.Destination, base.Logging.File.Destination)
	result.Logging.File.Mode = firstNonEmpty(overlay.Logging.File.Mode, base.Logging.File.Mode)

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
