// Package config loads bookbinder settings from .bookbinder/config.yaml and
// merges them with command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/bookbinder/internal/assembler"
	"github.com/harrison/bookbinder/internal/logger"
	"github.com/harrison/bookbinder/internal/models"
	"github.com/harrison/bookbinder/internal/render"
)

// SupportedImageExtensions are the image types a build knows how to copy.
var SupportedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg"}

// PDFConfig represents PDF rendering configuration
type PDFConfig struct {
	// Paper overrides the style sheet's paper size (Letter, A4, ...);
	// empty keeps the style sheet's own, which is Letter for the built-in one
	Paper string `yaml:"paper"`

	// StyleSheet is a yaml PDF style sheet; empty selects the built-in one
	StyleSheet string `yaml:"style_sheet"`
}

// HTMLConfig represents HTML rendering configuration
type HTMLConfig struct {
	// StyleSheet is a CSS file copied next to the pages; empty selects the built-in one
	StyleSheet string `yaml:"style_sheet"`
}

// HistoryConfig represents build history configuration
type HistoryConfig struct {
	// Enabled records every build in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the history database path; empty means <home>/history.db
	DBPath string `yaml:"db_path"`
}

// Config represents bookbinder configuration options
type Config struct {
	// SectionLevels is the deepest heading level chapters are assigned
	SectionLevels int `yaml:"section_levels"`

	// ImageExtensions lists the file types copied as chapter images
	ImageExtensions []string `yaml:"image_extensions"`

	// MarkdownExtensions lists the file types appended as chapter fragments
	MarkdownExtensions []string `yaml:"markdown_extensions"`

	// Formats lists the artifacts to produce; markdown is always produced
	Formats []string `yaml:"formats"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written; empty disables file logging
	LogDir string `yaml:"log_dir"`

	PDF     PDFConfig     `yaml:"pdf"`
	HTML    HTMLConfig    `yaml:"html"`
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		SectionLevels:      assembler.MaxSectionLevels,
		ImageExtensions:    []string{".png"},
		MarkdownExtensions: []string{".md"},
		Formats:            []string{string(models.ArtifactMarkdown), string(models.ArtifactHTML), string(models.ArtifactPDF)},
		LogLevel:           "info",
		LogDir:             filepath.Join(".bookbinder", "logs"),
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed or names unknown keys, returns an error.
// Keys present in the file replace the defaults; absent keys keep them.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Relative style sheets are resolved against the config file's directory
	base := filepath.Dir(path)
	cfg.PDF.StyleSheet = resolvePath(base, cfg.PDF.StyleSheet)
	cfg.HTML.StyleSheet = resolvePath(base, cfg.HTML.StyleSheet)

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .bookbinder/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".bookbinder", "config.yaml"))
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(sectionLevels *int, formats *[]string, logLevel *string, logDir *string, noHistory *bool) {
	if sectionLevels != nil {
		c.SectionLevels = *sectionLevels
	}
	if formats != nil {
		c.Formats = append([]string(nil), (*formats)...)
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if noHistory != nil && *noHistory {
		c.History.Enabled = false
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.SectionLevels < 1 {
		return fmt.Errorf("section_levels must be >= 1, got %d", c.SectionLevels)
	}

	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if len(c.MarkdownExtensions) == 0 {
		return fmt.Errorf("markdown_extensions cannot be empty")
	}
	for _, ext := range c.MarkdownExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid markdown extension %q, must start with a dot", ext)
		}
	}

	supported := make(map[string]bool, len(SupportedImageExtensions))
	for _, ext := range SupportedImageExtensions {
		supported[ext] = true
	}
	for _, ext := range c.ImageExtensions {
		if !supported[strings.ToLower(ext)] {
			return fmt.Errorf("unsupported image extension %q, must be one of: %s", ext, strings.Join(SupportedImageExtensions, ", "))
		}
	}

	for _, format := range c.Formats {
		switch models.ArtifactKind(strings.ToLower(format)) {
		case models.ArtifactMarkdown, models.ArtifactHTML, models.ArtifactPDF, models.ArtifactDOCX:
		default:
			return fmt.Errorf("unknown format %q, must be one of: markdown, html, pdf, docx", format)
		}
	}

	if c.PDF.Paper != "" && !render.ValidPaper(c.PDF.Paper) {
		return fmt.Errorf("unsupported pdf.paper %q", c.PDF.Paper)
	}

	return nil
}

// Wants reports whether the artifact kind is requested. Markdown is always
// produced since every other format is rendered from it.
func (c *Config) Wants(kind models.ArtifactKind) bool {
	if kind == models.ArtifactMarkdown {
		return true
	}
	for _, format := range c.Formats {
		if models.ArtifactKind(strings.ToLower(format)) == kind {
			return true
		}
	}
	return false
}

// Levels returns the section level cap applied during assembly.
func (c *Config) Levels() int {
	return assembler.LevelCap(c.SectionLevels)
}
