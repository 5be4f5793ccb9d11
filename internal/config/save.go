// Package config provides configuration types, defaults, and persistence for lariat.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mfell/lariat/internal/log"
)

// DefaultConfigTemplate returns the default config file content with comments.
func DefaultConfigTemplate() string {
	return `# lariat configuration
# This file was generated with default settings. Edit as needed.

# Linear API key. Prefer the LINEAR_API_KEY environment variable so the
# key stays out of dotfiles.
# api_key: lin_api_...

# Preselect a team by key on startup
# default_team: ENG

# Number of issues requested per page (1-250)
page_size: 50

# Seconds between automatic issue refreshes (0 disables)
refresh_interval: 0

ui:
  show_counts: true     # show issue counts in panel titles
  hide_done: false      # hide completed and canceled issues by default
  group_by: none        # none, status, priority, project
  markdown_style: dark  # dark or light

# Color overrides (hex)
# theme:
#   highlight: "#7C3AED"
#   subtle: "#6B7280"
#   error: "#EF4444"
#   success: "#10B981"

# Tracing for debugging API latency
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp
#   file_path: ~/.config/lariat/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
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

// SaveUIPrefs updates the ui section of the config file while preserving
// comments and formatting in other sections by editing the yaml.Node tree.
func SaveUIPrefs(configPath string, ui UIConfig) error {
	data, err := os.ReadFile(configPath) // #nosec G304 -- user-chosen config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	uiNode := buildUINode(ui)

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "ui"},
						uiNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == "ui" {
					root.Content[i+1] = uiNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "ui"},
					uiNode,
				)
			}
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	log.Debug(log.CatConfig, "Saved UI preferences", "path", configPath)
	return nil
}

func buildUINode(ui UIConfig) *yaml.Node {
	scalar := func(v string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
	}
	boolScalar := func(v bool) *yaml.Node {
		n := scalar(fmt.Sprintf("%t", v))
		n.Tag = "!!bool"
		return n
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalar("show_counts"), boolScalar(ui.ShowCounts),
			scalar("hide_done"), boolScalar(ui.HideDone),
			scalar("group_by"), scalar(ui.GroupBy),
			scalar("markdown_style"), scalar(ui.MarkdownStyle),
		},
	}
}
