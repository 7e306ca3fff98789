// Package config provides configuration types and defaults for cssliner.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/cssliner/internal/log"
)

// Config holds all configuration options for cssliner.
type Config struct {
	// StripComments is the initial state of the strip comments toggle.
	StripComments bool          `mapstructure:"strip_comments"`
	Watch         bool          `mapstructure:"watch"`          // Reload the open file when it changes
	WatchDebounce time.Duration `mapstructure:"watch_debounce"` // Quiet period before reloading
	MaxDepth      int           `mapstructure:"max_depth"`      // Conditional group nesting limit, 0 = unlimited
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`      // How long collapsed documents stay cached
	UI            UIConfig      `mapstructure:"ui"`
	Theme         ThemeConfig   `mapstructure:"theme"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowSidebar    bool   `mapstructure:"show_sidebar"`
	SidebarWidth   int    `mapstructure:"sidebar_width"`
	HorizontalStep int    `mapstructure:"horizontal_step"` // Columns moved per h/l press
	MarkdownStyle  string `mapstructure:"markdown_style"`  // "dark" (default) or "light"
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "classic", "catppuccin-mocha", "dracula", "nord"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors overrides individual color tokens using dot notation:
	//   colors:
	//     "css.selector": "#FF0000"
	Colors map[string]string `mapstructure:"colors"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		StripComments: false,
		Watch:         true,
		WatchDebounce: 300 * time.Millisecond,
		MaxDepth:      64,
		CacheTTL:      10 * time.Minute,
		UI: UIConfig{
			ShowSidebar:    true,
			SidebarWidth:   28,
			HorizontalStep: 8,
			MarkdownStyle:  "dark",
		},
	}
}

// SetDefaults registers Defaults with v so unset keys fall back to them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("strip_comments", d.StripComments)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("watch_debounce", d.WatchDebounce)
	v.SetDefault("max_depth", d.MaxDepth)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("ui.show_sidebar", d.UI.ShowSidebar)
	v.SetDefault("ui.sidebar_width", d.UI.SidebarWidth)
	v.SetDefault("ui.horizontal_step", d.UI.HorizontalStep)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks every section of cfg.
func Validate(cfg Config) error {
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be zero or positive, got %d", cfg.MaxDepth)
	}
	if cfg.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", cfg.WatchDebounce)
	}
	if cfg.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", cfg.CacheTTL)
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	return ValidateTheme(cfg.Theme)
}

// ValidateUI checks the ui section.
func ValidateUI(ui UIConfig) error {
	if ui.SidebarWidth <= 0 {
		return fmt.Errorf("ui.sidebar_width must be positive, got %d", ui.SidebarWidth)
	}
	if ui.HorizontalStep <= 0 {
		return fmt.Errorf("ui.horizontal_step must be positive, got %d", ui.HorizontalStep)
	}
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	return nil
}

// ValidateTheme checks the theme mode. Presets and colors are checked when
// the theme is applied.
func ValidateTheme(theme ThemeConfig) error {
	switch theme.Mode {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("theme.mode must be \"dark\", \"light\" or empty, got %q", theme.Mode)
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# cssliner configuration

# Start with comments stripped from the display (toggle with "c")
strip_comments: false

# Reload the open stylesheet when it changes on disk
watch: true
watch_debounce: 300ms

# How deep nested @media / @feature groups are collapsed (0 = unlimited).
# Deeper groups are shown as written.
max_depth: 64

# How long collapsed documents stay cached
cache_ttl: 10m

# UI settings
ui:
  show_sidebar: true      # Show the status sidebar (toggle with "s")
  sidebar_width: 28
  horizontal_step: 8      # Columns scrolled per h/l press
  # markdown_style: dark  # Help screen style: "dark" (default) or "light"

# Theme configuration
theme:
  # preset: classic
  #
  # Available presets:
  #   default           - Default cssliner theme
  #   classic           - Classic light scheme for white terminals
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #
  # mode: dark            # Force "light" or "dark" instead of terminal detection
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   css.selector: "#00008B"
  #   css.property: "#8B0000"
  #   css.value: "#008000"
  #   css.comment: "#808080"
  #   css.brace: "#B28C00"
  #   css.atrule: "#B400B4"
  #   css.punctuation: "#404040"
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
