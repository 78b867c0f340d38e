package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"terminal_assist/internal/library"
)

// appDir is the directory name used under config roots
const appDir = "terminal_assist"

// TechniqueGroup defines a group of technique patterns with styling
type TechniqueGroup struct {
	// Name is the display name of this group
	Name string `yaml:"name"`

	// Color is the catppuccin color name (e.g., "red", "yellow", "green", "mauve")
	Color string `yaml:"color"`

	// Bold makes the text bold
	Bold bool `yaml:"bold"`

	// Patterns match technique tags case-insensitively (supports a single * wildcard)
	Patterns []string `yaml:"patterns"`
}

// Config holds the application configuration
type Config struct {
	// Source is the command library URL or local path
	Source string `yaml:"source"`

	// Timeout bounds the initial library fetch
	Timeout time.Duration `yaml:"timeout"`

	// Watch reloads a local source file when it changes
	Watch bool `yaml:"watch"`

	// Theme is the color theme to use (mocha, macchiato, frappe, latte)
	Theme string `yaml:"theme"`

	// OSC52 falls back to terminal escape sequences when no clipboard tool exists
	OSC52 bool `yaml:"osc52"`

	// TechniqueGroups style technique badges (checked in order, first match wins)
	TechniqueGroups []TechniqueGroup `yaml:"technique_groups"`

	// Keys overrides default key bindings, keyed by action name
	Keys map[string][]string `yaml:"keys"`
}

// Themes lists the supported theme names
var Themes = []string{"mocha", "macchiato", "frappe", "latte"}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source:  library.DefaultSourceURL,
		Timeout: 10 * time.Second,
		Theme:   "mocha",
		OSC52:   true,
		TechniqueGroups: []TechniqueGroup{
			{
				Name:  "credential-access",
				Color: "red",
				Bold:  true,
				Patterns: []string{
					"Credential*",
					"T1003*",
					"T1552*",
					"T1555*",
				},
			},
			{
				Name:     "persistence",
				Color:    "peach",
				Patterns: []string{"Persistence*", "T1053*", "T1543*", "T1547*"},
			},
			{
				Name:     "execution",
				Color:    "mauve",
				Patterns: []string{"Execution*", "T1059*"},
			},
			{
				Name:     "lateral-movement",
				Color:    "yellow",
				Patterns: []string{"Lateral*", "T1021*"},
			},
			{
				Name:  "discovery",
				Color: "green",
				Patterns: []string{
					"Discovery*",
					"T1007*",
					"T1016*",
					"T1049*",
					"T1057*",
					"T1082*",
					"T1087*",
				},
			},
			{
				Name:     "unmatched",
				Color:    "overlay1",
				Patterns: []string{"*"},
			},
		},
	}
}

// Load reads the config from a YAML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //nolint:gosec // config path from known locations
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", cleanPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cleanPath, err)
	}

	return cfg, nil
}

// LoadFromDefaultPath attempts to load config from standard locations
func LoadFromDefaultPath() (*Config, error) {
	// Check in order: current dir, ~/.config/terminal_assist/, XDG_CONFIG_HOME
	paths := []string{
		"config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", appDir, "config.yaml"),
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, appDir, "config.yaml"))
	}

	for _, path := range paths {
		cleanPath := filepath.Clean(path)
		if _, err := os.Stat(cleanPath); err == nil { //nolint:gosec // config path from known locations
			return Load(cleanPath)
		}
	}

	return DefaultConfig(), nil
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("source must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %s)", c.Theme, strings.Join(Themes, ", "))
	}
	return nil
}

// GetTechniqueGroup returns the first matching group for a technique, or nil
func (c *Config) GetTechniqueGroup(technique string) *TechniqueGroup {
	for i := range c.TechniqueGroups {
		group := &c.TechniqueGroups[i]
		if group.Matches(technique) {
			return group
		}
	}
	return nil
}

// Matches returns true if the technique matches this group
func (g *TechniqueGroup) Matches(technique string) bool {
	for _, p := range g.Patterns {
		if matchPattern(strings.ToLower(p), strings.ToLower(technique)) {
			return true
		}
	}
	return false
}

// matchPattern checks if a pattern matches (supports * wildcards)
func matchPattern(pattern, value string) bool {
	// Exact match
	if pattern == value {
		return true
	}

	// Wildcard match - supports single * anywhere in pattern
	// e.g., "T1059*" matches "T1059.001" and "T1059 - Command Interpreter"
	if strings.Contains(pattern, "*") {
		parts := strings.SplitN(pattern, "*", 2)
		if len(parts) == 2 {
			prefix := parts[0]
			suffix := parts[1]
			return len(value) >= len(prefix)+len(suffix) &&
				strings.HasPrefix(value, prefix) && strings.HasSuffix(value, suffix)
		}
	}

	return false
}

// global config instance
var globalConfig *Config

// Global returns the global config instance, loading it if necessary
func Global() *Config {
	if globalConfig == nil {
		cfg, err := LoadFromDefaultPath()
		if err != nil {
			cfg = DefaultConfig()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal sets the global config instance (useful for testing)
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}
