package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Traversal strategies for the tree renderer.
const (
	TraversalRecursive = "recursive"
	TraversalStack     = "stack"
)

// MarkdownStyles lists the accepted ui.markdown_style values.
var MarkdownStyles = []string{"auto", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night"}

// Config represents the panel configuration file (.sv/config.yaml)
type Config struct {
	// UI controls the panel layout
	UI UIConfig `yaml:"ui,omitempty" json:"ui,omitempty"`

	// Tree controls how the scene hierarchy is drawn
	Tree TreeConfig `yaml:"tree,omitempty" json:"tree,omitempty"`

	// Log configures the debug log
	Log LogConfig `yaml:"log,omitempty" json:"log,omitempty"`
}

// UIConfig holds panel layout settings
type UIConfig struct {
	// PanelWidth is the width of the side panel in cells (default: 40)
	PanelWidth int `yaml:"panel_width,omitempty" json:"panel_width,omitempty"`

	// MarkdownStyle is the glamour style used for markdown placeholders
	// (default: dark)
	MarkdownStyle string `yaml:"markdown_style,omitempty" json:"markdown_style,omitempty"`

	// ShowHelp shows the full key help below the panel on start
	ShowHelp bool `yaml:"show_help,omitempty" json:"show_help,omitempty"`
}

// TreeConfig holds tree renderer settings
type TreeConfig struct {
	// Traversal is "recursive" (default) or "stack". The stack strategy
	// bounds call depth for very deep hierarchies.
	Traversal string `yaml:"traversal,omitempty" json:"traversal,omitempty"`

	// Indent is the number of cells per nesting level (default: 2)
	Indent int `yaml:"indent,omitempty" json:"indent,omitempty"`
}

// LogConfig configures logging
type LogConfig struct {
	// File receives debug output; empty disables logging
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		UI: UIConfig{
			PanelWidth:    40,
			MarkdownStyle: "dark",
		},
		Tree: TreeConfig{
			Traversal: TraversalRecursive,
			Indent:    2,
		},
	}
}

// Load reads the config at path on top of the defaults.
// A missing file is not an error and yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := Parse(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg and validates the result. Fields absent from
// data keep their current values.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg.applyDefaults()
	return cfg.Validate()
}

// applyDefaults fills zero values left by an explicit empty entry.
func (c *Config) applyDefaults() {
	def := Default()
	if c.UI.PanelWidth == 0 {
		c.UI.PanelWidth = def.UI.PanelWidth
	}
	if c.UI.MarkdownStyle == "" {
		c.UI.MarkdownStyle = def.UI.MarkdownStyle
	}
	if c.Tree.Traversal == "" {
		c.Tree.Traversal = def.Tree.Traversal
	}
	if c.Tree.Indent == 0 {
		c.Tree.Indent = def.Tree.Indent
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.Tree.Traversal {
	case TraversalRecursive, TraversalStack:
	default:
		return fmt.Errorf("%w: tree.traversal must be %q or %q, got %q",
			ErrInvalid, TraversalRecursive, TraversalStack, c.Tree.Traversal)
	}
	if c.Tree.Indent < 1 || c.Tree.Indent > 8 {
		return fmt.Errorf("%w: tree.indent must be between 1 and 8, got %d", ErrInvalid, c.Tree.Indent)
	}
	if !slices.Contains(MarkdownStyles, c.UI.MarkdownStyle) {
		return fmt.Errorf("%w: ui.markdown_style %q is not one of %v", ErrInvalid, c.UI.MarkdownStyle, MarkdownStyles)
	}
	if c.UI.PanelWidth < 20 {
		return fmt.Errorf("%w: ui.panel_width must be at least 20, got %d", ErrInvalid, c.UI.PanelWidth)
	}
	return nil
}
