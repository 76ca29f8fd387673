package plugin

import (
	"fmt"

	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/logging"
	"github.com/dshills/confetti/internal/plugin/api"
	"github.com/dshills/confetti/internal/plugin/lua"
)

// Runner hosts a single Lua script.
type Runner struct {
	state   *lua.State
	modules []api.Module
	logger  *logging.Logger
	script  string
	closed  bool
}

// NewRunner creates a runner with the confetti module installed.
func NewRunner(ctrl api.Controller, bus event.Bus, logger *logging.Logger, opts ...lua.StateOption) (*Runner, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.WithComponent("plugin")

	opts = append([]lua.StateOption{lua.WithPrint(func(line string) {
		logger.Info("%s", line)
	})}, opts...)
	r := &Runner{
		state:  lua.NewState(opts...),
		logger: logger,
	}

	mod := api.NewConfettiModule(ctrl, bus, logger)
	if err := mod.Register(r.state.L); err != nil {
		_ = r.state.Close()
		return nil, fmt.Errorf("register %s module: %w", mod.Name(), err)
	}
	r.modules = append(r.modules, mod)
	return r, nil
}

// LoadFile runs the script at path. Only one script may be loaded.
func (r *Runner) LoadFile(path string) error {
	if err := r.begin(path); err != nil {
		return err
	}
	if err := r.state.DoFile(path); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	r.logger.Info("loaded script %s", path)
	return nil
}

// LoadString runs code as the script, named name in errors.
func (r *Runner) LoadString(name, code string) error {
	if err := r.begin(name); err != nil {
		return err
	}
	if err := r.state.DoString(code); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

func (r *Runner) begin(name string) error {
	if r.closed {
		return ErrClosed
	}
	if r.script != "" {
		return ErrAlreadyLoaded
	}
	r.script = name
	return nil
}

// Script returns the name of the loaded script.
func (r *Runner) Script() string {
	return r.script
}

// State returns the underlying Lua state.
func (r *Runner) State() *lua.State {
	return r.state
}

// Close unsubscribes script handlers and closes the Lua state.
func (r *Runner) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	for _, m := range r.modules {
		m.Cleanup()
	}
	return r.state.Close()
}
