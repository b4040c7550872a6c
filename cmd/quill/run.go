package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/clipboard"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/gui"
	"github.com/dshills/quill/internal/logging"
	"github.com/dshills/quill/internal/plugin"
	"github.com/dshills/quill/internal/settings"
)

// loadConfig layers the config file, the environment and the flags.
func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.pluginDir != "" {
		cfg.PluginDir = f.pluginDir
	}
	if f.settingsDir != "" {
		cfg.SettingsDir = f.settingsDir
	}
	if f.platform != "" {
		cfg.Platform = f.platform
	}
	return cfg, cfg.Validate()
}

// openLog returns the log destination. The terminal owns stderr while the
// GUI runs, so without a log file logging is discarded.
func openLog(cfg config.Config) (io.Writer, func(), error) {
	if cfg.LogFile == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// loadPlugins loads the core plugin followed by every manifest in dir.
func loadPlugins(dir string, logger zerolog.Logger) (*plugin.Manager, error) {
	pm := plugin.NewManager(plugin.WithLogger(logger))
	if _, err := pm.Load(app.CorePlugin{}); err != nil {
		return nil, err
	}
	descs, err := plugin.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if err := pm.LoadAll(descs...); err != nil {
		return nil, err
	}
	return pm, nil
}

func run(cmd *cobra.Command, f flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	p, err := cfg.ResolvePlatform()
	if err != nil {
		return err
	}

	out, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := logging.New(out, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithContext(ctx, logger)

	store, err := settings.NewStore(cfg.SettingsDir, settings.WithLogger(logging.Component(logger, "settings")))
	if err != nil {
		return err
	}
	if cfg.WatchSettings {
		go func() {
			if err := store.Watch(ctx); err != nil {
				logger.Warn().Err(err).Msg("settings watcher stopped")
			}
		}()
	}
	storage, err := store.Namespace(app.StorageNamespace)
	if err != nil {
		return err
	}

	pm, err := loadPlugins(cfg.PluginDir, logging.Component(logger, "plugin"))
	if err != nil {
		return err
	}

	var clipOpts []clipboard.Option
	if cfg.SystemClipboard {
		clipOpts = append(clipOpts, clipboard.WithSystem(clipboard.NewSystem()))
	}

	actx, err := app.Start(app.Options{
		Plugins:   pm,
		Storage:   storage,
		Platform:  p,
		Clipboard: clipboard.New("application", clipOpts...),
		Logger:    &logger,
	})
	if err != nil {
		return err
	}
	defer actx.App.Destroy()

	term, err := gui.NewTerminal(gui.WithTerminalLogger(logging.Component(logger, "gui")))
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	if err := actx.SetGUI(term); err != nil {
		return err
	}
	term.OnAction(func(_ gui.Frame, action string) {
		if err := actx.Execute(action, "keymap"); err != nil {
			logger.Warn().Err(err).Str("action", action).Msg("action failed")
		}
	})

	actx.App.NewWindow()
	return term.Run(ctx)
}
