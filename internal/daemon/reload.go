package daemon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/montile/internal/command"
	"github.com/1broseidon/montile/internal/config"
)

// Reload loads the configuration again and applies it.
func (d *Daemon) Reload() error {
	if d.reload == nil {
		return errors.New("reload is not configured")
	}
	cfg, err := d.reload()
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.applyConfig(cfg)
	return nil
}

// applyConfig takes over runtime settings and new tags from cfg and lays
// every monitor out once.
func (d *Daemon) applyConfig(cfg *config.Config) {
	d.cfg = cfg

	d.monitors.Lock()
	defer d.monitors.Unlock()

	d.monitors.SetSettings(settingsFrom(cfg))
	d.engine.UpdateConfig(cfg)

	added := 0
	for _, name := range cfg.Tags {
		if d.tags.Find(name) != nil {
			continue
		}
		if _, err := d.tags.Add(name); err != nil {
			d.logger.Warn("cannot add tag", "tag", name, "error", err)
			continue
		}
		added++
	}
	if added > 0 {
		d.hooks.UpdateDesktopNames()
	}
	d.monitors.ApplyAll()

	if d.onKeybinds != nil {
		d.onKeybinds(cfg.Keybinds)
	}
	d.logger.Info("config applied", "new_tags", added)
}

func (d *Daemon) reloadCommand(args []string, out *strings.Builder) command.Status {
	if d.reload == nil {
		fmt.Fprintf(out, "%s: reload is not configured\n", args[0])
		return command.StatusUnknownError
	}
	cfg, err := d.reload()
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", args[0], err)
		return command.StatusUnknownError
	}
	d.applyConfig(cfg)
	return command.StatusOK
}
