// Package config provides configuration types and defaults for lariat.
package config

import (
	"fmt"
	"os"

	"github.com/mfell/lariat/internal/tracing"
)

// Config holds all configuration options for lariat.
type Config struct {
	// APIKey authenticates against the Linear API. Usually supplied via
	// the LINEAR_API_KEY environment variable rather than the config file.
	APIKey string `mapstructure:"api_key"`

	// Endpoint overrides the Linear GraphQL endpoint. Empty uses the default.
	Endpoint string `mapstructure:"endpoint"`

	// DefaultTeam preselects a team by its key (e.g. "ENG") on startup.
	DefaultTeam string `mapstructure:"default_team"`

	// PageSize is the number of issues requested per page.
	PageSize int `mapstructure:"page_size"`

	// RefreshInterval is the seconds between automatic issue refreshes.
	// Zero disables automatic refresh.
	RefreshInterval int `mapstructure:"refresh_interval"`

	UI      UIConfig       `mapstructure:"ui"`
	Theme   ThemeConfig    `mapstructure:"theme"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowCounts    bool   `mapstructure:"show_counts" yaml:"show_counts"`
	HideDone      bool   `mapstructure:"hide_done" yaml:"hide_done"`
	GroupBy       string `mapstructure:"group_by" yaml:"group_by"`             // "none", "status", "priority", "project"
	MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds color overrides. Values are hex colors like "#10B981".
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"`
	Subtle    string `mapstructure:"subtle"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Endpoint:        "",
		PageSize:        50,
		RefreshInterval: 0,
		UI: UIConfig{
			ShowCounts:    true,
			HideDone:      false,
			GroupBy:       "none",
			MarkdownStyle: "dark",
		},
		Theme: ThemeConfig{
			Highlight: "#7C3AED",
			Subtle:    "#6B7280",
			Error:     "#EF4444",
			Success:   "#10B981",
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// ValidGroupBy lists the accepted group_by values.
var ValidGroupBy = []string{"none", "status", "priority", "project"}

// Validate checks the configuration for values the session cannot work with.
func (c Config) Validate() error {
	if c.PageSize < 1 || c.PageSize > 250 {
		return fmt.Errorf("page_size must be between 1 and 250, got %d", c.PageSize)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh_interval must not be negative, got %d", c.RefreshInterval)
	}
	valid := false
	for _, g := range ValidGroupBy {
		if c.UI.GroupBy == g {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("ui.group_by must be one of %v, got %q", ValidGroupBy, c.UI.GroupBy)
	}
	return nil
}

// ResolveAPIKey returns the API key, preferring the environment over the
// config file so keys stay out of dotfiles.
func (c Config) ResolveAPIKey() string {
	if key := os.Getenv("LINEAR_API_KEY"); key != "" {
		return key
	}
	return c.APIKey
}
