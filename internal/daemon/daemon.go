// Package daemon wires the monitor manager, tag registry, layout engine and
// command surface to the window system and serialises access to them.
package daemon

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/1broseidon/montile/internal/command"
	"github.com/1broseidon/montile/internal/config"
	"github.com/1broseidon/montile/internal/hook"
	"github.com/1broseidon/montile/internal/monitor"
	"github.com/1broseidon/montile/internal/platform"
	"github.com/1broseidon/montile/internal/tags"
	"github.com/1broseidon/montile/internal/tiling"
)

// Backend is the window system driven by the daemon.
type Backend interface {
	platform.Backend
	ManageRoot() error
	WatchClients(onMap, onDestroy func(platform.WindowID))
	IsManageable(id platform.WindowID) bool
	IsFullscreen(id platform.WindowID) bool
	SetClientList(ids []platform.WindowID) error
}

// Options configures a Daemon.
type Options struct {
	Config  *config.Config
	Backend Backend
	Logger  *slog.Logger
	// Reload loads a fresh configuration. Without it the reload command
	// fails.
	Reload func() (*config.Config, error)
}

// Daemon owns the window-manager state. Exec, X event handlers and config
// reloads take the same mutex, so commands never interleave.
type Daemon struct {
	mu sync.Mutex

	cfg      *config.Config
	backend  Backend
	tags     *tags.Registry
	engine   *tiling.Engine
	monitors *monitor.Manager
	hooks    *hook.Emitter
	commands *command.Dispatcher
	logger   *slog.Logger

	reload     func() (*config.Config, error)
	onKeybinds func(map[string]string)

	managed map[platform.WindowID]struct{}
	order   []platform.WindowID

	quit     chan struct{}
	quitOnce sync.Once
}

// New builds the daemon state from cfg without touching the display.
func New(opts Options) (*Daemon, error) {
	if opts.Config == nil {
		return nil, errors.New("daemon: config is required")
	}
	if opts.Backend == nil {
		return nil, errors.New("daemon: backend is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := &Daemon{
		cfg:     opts.Config,
		backend: opts.Backend,
		tags:    tags.NewRegistry(opts.Config.Tags...),
		logger:  logger,
		reload:  opts.Reload,
		managed: map[platform.WindowID]struct{}{},
		quit:    make(chan struct{}),
	}
	d.engine = tiling.NewEngine(opts.Backend, opts.Config, logger.With("component", "tiling"))
	d.hooks = hook.NewEmitter(d.tags, opts.Backend, logger.With("component", "hook"))
	d.monitors = monitor.NewManager(monitor.Config{
		Layout:   d.engine,
		Tags:     d.tags,
		Display:  opts.Backend,
		Notifier: d.hooks,
		Settings: settingsFrom(opts.Config),
		Logger:   logger.With("component", "monitor"),
	})
	d.commands = command.New(command.Config{
		Monitors: d.monitors,
		Tags:     d.tags,
		Detect:   d.detect,
		Logger:   logger.With("component", "command"),
	})
	d.commands.Register("reload", d.reloadCommand)
	d.commands.Register("quit", d.quitCommand)
	d.commands.Register("pad_from_struts", d.padFromStrutsCommand)
	return d, nil
}

func settingsFrom(cfg *config.Config) monitor.Settings {
	return monitor.Settings{
		SwapMonitorsToGetTag:   cfg.SwapMonitorsToGetTag,
		MouseRecenterGap:       cfg.MouseRecenterGap,
		FrameGap:               cfg.FrameGap,
		SmartFrameSurroundings: cfg.SmartFrameSurroundings,
	}
}

// Start takes over the root window when configured, creates the monitors
// and publishes the desktops.
func (d *Daemon) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cfg.ManageWindows {
		if err := d.backend.ManageRoot(); err != nil {
			return err
		}
		d.backend.WatchClients(d.manage, d.unmanage)
		d.logger.Info("managing windows")
	}
	if err := d.setupMonitors(); err != nil {
		return err
	}
	d.hooks.UpdateDesktopNames()
	d.logger.Info("daemon started", "monitors", d.monitors.Count(), "tags", d.tags.Len())
	return nil
}

// Exec runs one command line.
func (d *Daemon) Exec(args []string) (int, string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	tagCount := d.tags.Len()
	status, output := d.commands.Run(args)
	if d.tags.Len() != tagCount {
		d.hooks.UpdateDesktopNames()
	}
	d.logger.Debug("command", "args", strings.Join(args, " "), "status", int(status))
	return int(status), output
}

// Hooks returns the hook emitter for idle subscriptions.
func (d *Daemon) Hooks() *hook.Emitter {
	return d.hooks
}

// OnKeybinds registers fn to receive the keybinds of every applied config.
func (d *Daemon) OnKeybinds(fn func(map[string]string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onKeybinds = fn
}

// Keybinds returns the keybinds of the current config.
func (d *Daemon) Keybinds() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Keybinds
}

// Quit asks the daemon to stop. It is safe to call more than once.
func (d *Daemon) Quit() {
	d.quitOnce.Do(func() {
		close(d.quit)
	})
}

// Done is closed once Quit has been called.
func (d *Daemon) Done() <-chan struct{} {
	return d.quit
}

// Close releases the monitors and ends all hook subscriptions.
func (d *Daemon) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.monitors.Close()
	d.hooks.Close()
}

func (d *Daemon) quitCommand(args []string, out *strings.Builder) command.Status {
	if len(args) > 1 {
		return command.StatusNoParameterExpected
	}
	d.logger.Info("quit requested")
	d.Quit()
	return command.StatusOK
}
