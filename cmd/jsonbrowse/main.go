package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"jsonbrowse/internal/adapters/browser"
	"jsonbrowse/internal/adapters/placeholder"
	"jsonbrowse/internal/adapters/sqlite"
	"jsonbrowse/internal/adapters/tui"
	"jsonbrowse/internal/adapters/tui/styles"
	"jsonbrowse/internal/application"
	"jsonbrowse/internal/config"
	"jsonbrowse/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file (default "+config.DefaultConfigPath+")")
	fragment := flag.String("fragment", "", "start at this location, e.g. #users#todos?userId=1")
	query := flag.String("query", "", "initial search filter")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	if err := browse(ctx, *configPath, *fragment, *query); err != nil {
		fmt.Fprintf(os.Stderr, "jsonbrowse: %v\n", err)
		return 1
	}
	return 0
}

func browse(ctx context.Context, configPath, fragment, query string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := styles.Apply(cfg.Theme); err != nil {
		return err
	}

	logger, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	store, err := sqlite.Open(cfg.StorePath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	remote, err := placeholder.NewClient(cfg.APIBase, cfg.Timeout)
	if err != nil {
		return err
	}

	// An explicit --fragment wins over the last visited location
	if fragment == "" {
		saved, err := store.LoadLocation(ctx)
		if err != nil {
			logger.Warn("could not load last location", zap.Error(err))
		}
		fragment = saved
	}

	logger.Info("starting",
		zap.String("api", remote.BaseURL()),
		zap.String("store", store.Path()),
		zap.String("fragment", fragment))

	opener, err := browser.NewOpener(remote.BaseURL())
	if err != nil {
		return err
	}

	renderer := application.NewRenderer(remote, store, logger)
	app := tui.NewApp(renderer, store, tui.Options{
		Fragment:   fragment,
		Query:      query,
		Logger:     logger,
		OpenRemote: opener.Open,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	watcher, err := sqlite.NewWatcher(store)
	if err != nil {
		logger.Warn("store changes from other processes will not be picked up", zap.Error(err))
	} else {
		go func() {
			err := watcher.Run(watchCtx, func() { p.Send(tui.StoreChangedMsg{}) })
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("store watcher stopped", zap.Error(err))
			}
		}()
	}

	_, runErr := p.Run()

	saveCtx, cancelSave := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelSave()
	if err := store.SaveLocation(saveCtx, app.Fragment()); err != nil {
		logger.Warn("could not save location", zap.Error(err))
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return nil
}

// openLog sends logs to the configured file; the terminal belongs to the TUI.
// An empty log_path disables logging.
func openLog(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogPath == "" {
		return zap.NewNop(), nil
	}
	return logging.New(cfg.LogLevel, cfg.LogPath)
}
