// Package hotkeys binds global key sequences to command lines.
package hotkeys

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Executor runs a command line.
type Executor interface {
	Exec(args []string) (status int, output string)
}

// Binder attaches a callback to a key sequence.
type Binder interface {
	Bind(keySequence string, callback func()) error
	UnbindAll()
}

// Handler maps key sequences to commands.
type Handler struct {
	binder Binder
	exec   Executor
	logger *slog.Logger
	bound  map[string][]string
}

// NewHandler creates a handler that runs commands through exec.
func NewHandler(binder Binder, exec Executor, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		binder: binder,
		exec:   exec,
		logger: logger,
		bound:  map[string][]string{},
	}
}

// Register binds keySequence to the whitespace-separated command line.
func (h *Handler) Register(keySequence, commandLine string) error {
	args := strings.Fields(commandLine)
	if len(args) == 0 {
		return fmt.Errorf("keybind %s: empty command", keySequence)
	}
	err := h.binder.Bind(keySequence, func() {
		h.run(keySequence, args)
	})
	if err != nil {
		return fmt.Errorf("keybind %s: %w", keySequence, err)
	}
	h.bound[keySequence] = args
	return nil
}

func (h *Handler) run(keySequence string, args []string) {
	status, output := h.exec.Exec(args)
	if status != 0 {
		h.logger.Warn("keybind command failed",
			"key", keySequence,
			"command", strings.Join(args, " "),
			"status", status,
			"output", strings.TrimSpace(output))
		return
	}
	h.logger.Debug("keybind command", "key", keySequence, "command", strings.Join(args, " "))
}

// Apply replaces all bindings with binds. Sequences are registered in
// sorted order; failures are collected and the rest are still bound.
func (h *Handler) Apply(binds map[string]string) []error {
	h.binder.UnbindAll()
	h.bound = map[string][]string{}

	keys := make([]string, 0, len(binds))
	for k := range binds {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		if err := h.Register(k, binds[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Bound returns the command bound to keySequence.
func (h *Handler) Bound(keySequence string) ([]string, bool) {
	args, ok := h.bound[keySequence]
	return args, ok
}

// XBinder grabs keys on the X root window.
type XBinder struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var ignoreModsOnce sync.Once

// NewXBinder creates a binder on root. Lock modifiers are ignored so that
// bindings work with CapsLock or NumLock on.
func NewXBinder(xu *xgbutil.XUtil, root xproto.Window) *XBinder {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})
	return &XBinder{xu: xu, root: root}
}

// Bind grabs keySequence on the root window.
func (b *XBinder) Bind(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(b.xu, b.root, keySequence, true)
}

// UnbindAll releases every key grabbed on the root window.
func (b *XBinder) UnbindAll() {
	keybind.Detach(b.xu, b.root)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
