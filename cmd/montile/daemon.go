package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/1broseidon/montile/internal/config"
	"github.com/1broseidon/montile/internal/daemon"
	"github.com/1broseidon/montile/internal/hotkeys"
	"github.com/1broseidon/montile/internal/instance"
	"github.com/1broseidon/montile/internal/ipc"
	"github.com/1broseidon/montile/internal/logging"
	"github.com/1broseidon/montile/internal/platform"
	"github.com/1broseidon/montile/internal/runtimepath"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.StringP("config", "c", "", "Config file path (default: ~/.config/montile/config.yaml)")
	logLevel := fs.String("log-level", "", "Override log_level from the config")
	display := fs.StringP("display", "d", "", "X display to manage (default: $DISPLAY)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: montile daemon [--config PATH] [--display NAME] [--log-level LEVEL]")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	path, err := resolveConfigPath(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cfg := res.Config
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logs, err := newLogManager(cfg, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer logs.Close()
	logger := logs.Logger("daemon")

	dir, err := runtimepath.Dir()
	if err != nil {
		logger.Error("no runtime directory", "error", err)
		return 1
	}
	if *display == "" {
		*display = os.Getenv("DISPLAY")
	}
	lock, err := instance.Lock(dir, *display)
	if err != nil {
		logger.Error("cannot start daemon", "error", err)
		return 1
	}
	defer instance.Cleanup(lock)

	backend, err := platform.NewLinuxBackendFromDisplay(*display)
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		return 1
	}
	defer backend.Disconnect()

	d, err := daemon.New(daemon.Options{
		Config:  cfg,
		Backend: backend,
		Logger:  logs.Logger("wm"),
		Reload: func() (*config.Config, error) {
			res, err := config.LoadFromPath(path)
			if err != nil {
				return nil, err
			}
			return res.Config, nil
		},
	})
	if err != nil {
		logger.Error("failed to create daemon", "error", err)
		return 1
	}
	if err := d.Start(); err != nil {
		logger.Error("failed to start daemon", "error", err)
		return 1
	}
	defer d.Close()

	keys := hotkeys.NewHandler(hotkeys.NewXBinder(backend.XUtil(), backend.RootWindow()), d, logs.Logger("hotkeys"))
	bindKeys := func(binds map[string]string) {
		for _, err := range keys.Apply(binds) {
			logger.Warn("keybind not registered", "error", err)
		}
	}
	bindKeys(d.Keybinds())
	d.OnKeybinds(bindKeys)

	socket, err := runtimepath.SocketPath()
	if err != nil {
		logger.Error("no socket path", "error", err)
		return 1
	}
	server := ipc.NewServer(socket, d, d.Hooks(), logs.Logger("ipc"))
	if err := server.Start(); err != nil {
		logger.Error("failed to start IPC server", "error", err)
		return 1
	}
	defer server.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reload := func() {
		if err := d.Reload(); err != nil {
			logger.Warn("config reload failed", "error", err)
			return
		}
		logger.Info("config reloaded")
	}
	if watcher, err := daemon.NewConfigWatcher(path, 0, reload, logs.Logger("config")); err != nil {
		logger.Warn("config watcher disabled", "error", err)
	} else {
		go watcher.Run(ctx)
	}

	go backend.EventLoop()
	logger.Info("montile daemon running", "socket", socket, "config", path)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				logger.Info("received SIGHUP, reloading config")
				reload()
				continue
			}
			logger.Info("shutting down", "signal", sig.String())
		case <-d.Done():
			logger.Info("shutting down", "reason", "quit command")
		}
		backend.QuitEventLoop()
		return 0
	}
}

func newLogManager(cfg *config.Config, console bool) (*logging.Manager, error) {
	path := cfg.Logging.File
	if path == "" {
		var err error
		if path, err = runtimepath.LogPath(); err != nil {
			return nil, err
		}
	}
	lc := logging.Config{
		FilePath:   path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Level:      cfg.LogLevel,
	}
	if console {
		lc.Console = os.Stderr
	}
	return logging.NewManager(lc)
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.DefaultConfigPath()
}
