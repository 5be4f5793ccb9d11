package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mfell/lariat/internal/app"
	"github.com/mfell/lariat/internal/config"
	"github.com/mfell/lariat/internal/linear"
	"github.com/mfell/lariat/internal/log"
	"github.com/mfell/lariat/internal/tracing"
	"github.com/mfell/lariat/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color BEFORE
	// the Bubble Tea program starts, so the OSC 11 response cannot race
	// with the input loop and show up as garbage in text fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "lariat",
	Short:   "A terminal ui for Linear issue tracking",
	Long:    `A terminal user interface for browsing and updating Linear issues: teams, projects, statuses, assignees, labels and comments, without leaving the shell.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/lariat/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"log debug output to stderr")
	rootCmd.Flags().String("team", "",
		"team key to select on startup (e.g. ENG)")

	_ = viper.BindPFlag("default_team", rootCmd.Flags().Lookup("team"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("page_size", defaults.PageSize)
	viper.SetDefault("refresh_interval", defaults.RefreshInterval)
	viper.SetDefault("ui.show_counts", defaults.UI.ShowCounts)
	viper.SetDefault("ui.hide_done", defaults.UI.HideDone)
	viper.SetDefault("ui.group_by", defaults.UI.GroupBy)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .lariat/config.yaml (current directory)
		// 2. ~/.config/lariat/config.yaml (user config)
		if _, err := os.Stat(".lariat/config.yaml"); err == nil {
			viper.SetConfigFile(".lariat/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "lariat"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "lariat", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If the write fails, continue with defaults.
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return fmt.Errorf("no Linear API key: set LINEAR_API_KEY or api_key in the config file")
	}

	if debug {
		cleanup, logErr := log.Init(filepath.Join(os.TempDir(), "lariat-debug.log"))
		if logErr != nil {
			return fmt.Errorf("initializing debug log: %w", logErr)
		}
		defer cleanup()
		log.SetMinLevel(log.LevelDebug)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	styles.ApplyTheme(cfg.Theme.Highlight, cfg.Theme.Subtle, cfg.Theme.Error, cfg.Theme.Success)

	opts := []linear.Option{linear.WithPageSize(cfg.PageSize)}
	if cfg.Endpoint != "" {
		opts = append(opts, linear.WithEndpoint(cfg.Endpoint))
	}
	var svc linear.Service = linear.NewClient(apiKey, opts...)
	if provider.Enabled() {
		svc = linear.NewTracedService(svc, provider.Tracer())
	}

	model := app.New(cfg, viper.ConfigFileUsed(), svc)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if m, ok := finalModel.(app.Model); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
