package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ryan-rushton/drawer/internal/app"
	"github.com/ryan-rushton/drawer/internal/config"
	"github.com/ryan-rushton/drawer/internal/drawer"
	"github.com/ryan-rushton/drawer/internal/logging"
	"github.com/ryan-rushton/drawer/internal/source"
	"github.com/ryan-rushton/drawer/internal/state"
)

var (
	configPath string
	sourceName string
	localeFlag string
)

var rootCmd = &cobra.Command{
	Use:   "drawer",
	Short: "Terminal app drawer",
	Long:  "drawer - search the installed applications and launch one",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.close()

		screen := drawer.New(drawer.Options{
			Source: env.source,
			Holder: state.New(),
			Logger: env.logger,
		})
		p := tea.NewProgram(app.New(screen, env.cfg.ShouldCloseOnLaunch()), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/drawer/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&sourceName, "source", "", "app source: xdg or manifest")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "locale for app names (default from LANG)")
}

// runEnv is what every command needs: configuration, a logger and the
// selected app source.
type runEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	source source.Source
	close  func() error
}

func setup() (*runEnv, error) {
	path := configPath
	var baseDir string
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
		baseDir = dir
	} else {
		baseDir = filepath.Dir(path)
	}

	cfg, err := config.Load(path, baseDir)
	if err != nil {
		return nil, err
	}
	if sourceName != "" {
		cfg.Source = sourceName
	}
	if localeFlag != "" {
		cfg.Locale = localeFlag
	}

	logger, closeLog := logging.OpenOrDiscard(cfg.LogFile, cfg.LogLevel)

	src, err := source.Open(cfg.Source, source.Options{
		Locale:      cfg.Locale,
		ExtraDirs:   cfg.ExtraDirs,
		ManifestDir: cfg.ManifestDir,
		Terminal:    cfg.Terminal,
		Logger:      logger,
	})
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	logger.Debug("drawer starting", "config", path, "source", cfg.Source)
	return &runEnv{cfg: cfg, logger: logger, source: src, close: closeLog}, nil
}

// SetVersion sets the version string shown by --version.
func SetVersion(v string) {
	rootCmd.Version = v
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
