package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/cssliner/internal/app"
	"github.com/zjrosen/cssliner/internal/collapse"
	"github.com/zjrosen/cssliner/internal/config"
	"github.com/zjrosen/cssliner/internal/document"
	"github.com/zjrosen/cssliner/internal/log"
	"github.com/zjrosen/cssliner/internal/ui/styles"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply cannot race with the input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const defaultConfigPath = ".cssliner/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "cssliner [file.css]",
	Short: "View stylesheets with every rule collapsed onto one line",
	Long: `cssliner reflows CSS so each rule block sits on a single line, keeping
@media and @feature wrappers and collapsing their bodies too. The result is
shown with syntax highlighting; comments can be hidden with a toggle.

When several files are given only the first one is opened.`,
	Version:           version,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: checkConfig,
	RunE:              runApp,
	SilenceUsage:      true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/cssliner/config.yaml)")
	rootCmd.PersistentFlags().Bool("strip-comments", false,
		"hide /* comments */ in the output")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also enabled by "+log.EnvDebug+")")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the file when it changes on disk")
}

func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)
	_ = v.BindPFlag("strip_comments", rootCmd.PersistentFlags().Lookup("strip-comments"))

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .cssliner/config.yaml (current directory)
		// 2. ~/.config/cssliner/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			v.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			v.AddConfigPath(filepath.Join(home, ".config", "cssliner"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file anywhere: create the default one.
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				v.SetConfigFile(defaultConfigPath)
				_ = v.ReadInConfig()
			}
		} else {
			log.Warn(log.CatConfig, "reading config", "error", err)
		}
	}

	cfg, cfgErr = config.Load(v)
}

func checkConfig(_ *cobra.Command, _ []string) error {
	return cfgErr
}

// initLogging enables the debug log when requested. The returned cleanup is
// never nil.
func initLogging(prefix string) (func(), error) {
	if !debugFlag && !log.Enabled() {
		return func() {}, nil
	}

	logPath := os.Getenv("CSSLINER_LOG")
	if logPath == "" {
		logPath = "cssliner-debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "cssliner starting", "version", version, "logPath", logPath)
	return cleanup, nil
}

// applyTheme installs the configured colors and light/dark mode.
func applyTheme(theme config.ThemeConfig) error {
	switch theme.Mode {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
	if err := styles.ApplyTheme(styles.ThemeConfig{Preset: theme.Preset, Colors: theme.Colors}); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}
	return nil
}

func runApp(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging("cssliner")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := applyTheme(cfg.Theme); err != nil {
		return err
	}

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch = false
	}
	if cfg.UI.MarkdownStyle == "" {
		cfg.UI.MarkdownStyle = "light"
		if lipgloss.HasDarkBackground() {
			cfg.UI.MarkdownStyle = "dark"
		}
	}

	// Store the config file path for saving the strip comments toggle
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = defaultConfigPath
	}

	initialPath, _ := document.First(args)

	zone.NewGlobal()
	model := app.New(app.Options{
		Config:      cfg,
		ConfigPath:  configFilePath,
		Loader:      document.NewLoader(collapse.New(cfg.MaxDepth), cfg.CacheTTL),
		InitialPath: initialPath,
		Debug:       debugFlag || log.Enabled(),
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// oneShotLoader returns a loader for commands that read a file once.
func oneShotLoader() *document.Loader {
	return document.NewLoader(collapse.New(cfg.MaxDepth), 0)
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
