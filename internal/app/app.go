package app

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/confetti/internal/confetti"
	"github.com/dshills/confetti/internal/config"
	"github.com/dshills/confetti/internal/config/watcher"
	"github.com/dshills/confetti/internal/editor"
	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/logging"
	"github.com/dshills/confetti/internal/plugin"
	"github.com/dshills/confetti/internal/schedule"
)

// funcQueueSize bounds work posted to the loop before posters block.
const funcQueueSize = 256

// Options configures the application.
type Options struct {
	// Files are opened in order; the first is focused.
	// With no files a scratch buffer is opened.
	Files []string

	// Screen replaces the real terminal, mainly for tests.
	Screen tcell.Screen

	// LogOutput overrides the configured log file.
	LogOutput io.Writer
}

// Application owns every component and the UI loop.
type Application struct {
	cfg  *config.Config
	opts Options

	logger  *logging.Logger
	logFile io.Closer

	bus       event.Bus
	editor    *editor.Editor
	scheduler *schedule.Loop
	ctrl      *confetti.Controller
	listener  *confetti.Listener
	plugins   *plugin.Runner
	watcher   *watcher.Watcher

	screen tcell.Screen
	view   *editor.Screen

	funcs    chan func()
	done     chan struct{}
	running  atomic.Bool
	shutOnce sync.Once
	status   string
}

// New activates confetti: it builds every component from cfg and opens the
// requested files. The terminal is not touched until Run.
func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	app := &Application{
		cfg:   cfg,
		opts:  opts,
		funcs: make(chan func(), funcQueueSize),
		done:  make(chan struct{}),
	}
	if err := app.activate(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// activate creates components in dependency order.
func (app *Application) activate() error {
	if err := app.initLogging(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	app.bus = event.NewBus(event.WithPanicHandler(func(_ any, id string, recovered any) {
		app.logger.Error("handler %s panicked: %v", id, recovered)
	}))
	if err := app.bus.Start(); err != nil {
		return &InitError{Component: "event bus", Err: err}
	}

	app.editor = editor.New(app.bus, app.logger)
	app.scheduler = schedule.NewLoop(app.post)
	app.ctrl = confetti.NewController(
		app.editor.Decorations(),
		app.scheduler,
		settingsFrom(app.cfg),
		confetti.WithLogger(app.logger),
		confetti.WithBus(app.bus),
	)

	listener, err := confetti.Listen(app.bus, app.ctrl)
	if err != nil {
		return &InitError{Component: "listener", Err: err}
	}
	app.listener = listener

	if err := app.openFiles(); err != nil {
		return err
	}

	if script := app.cfg.Plugin.Script; script != "" {
		runner, err := plugin.NewRunner(app.ctrl, app.bus, app.logger)
		if err != nil {
			return &InitError{Component: "plugin", Err: err}
		}
		app.plugins = runner
		if err := runner.LoadFile(config.ExpandPath(script)); err != nil {
			// A broken script does not keep the editor from starting.
			app.logger.Error("plugin: %v", err)
			app.status = "script error: " + filepath.Base(script)
		}
	}

	if app.cfg.Path != "" {
		w, err := watcher.New(app.cfg.Path,
			func(watcher.Event) { app.post(app.reloadConfig) },
			watcher.WithErrorHandler(func(err error) {
				app.post(func() { app.logger.Warn("config watcher: %v", err) })
			}),
		)
		if err != nil {
			app.logger.Warn("config hot reload disabled: %v", err)
		} else {
			app.watcher = w
		}
	}

	app.logger.Info("activated")
	return nil
}

func (app *Application) openFiles() error {
	if len(app.opts.Files) == 0 {
		app.editor.Focus(app.editor.Open(""))
		return nil
	}
	for _, path := range app.opts.Files {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return &FileError{Op: "open", Path: path, Err: err}
		}
		v := app.editor.Open(string(data))
		if app.editor.Active() == nil {
			app.editor.Focus(v)
		}
	}
	return nil
}

// initLogging sends logs to the configured file. While the terminal is in
// use stderr is the screen, so without a log file output is discarded.
func (app *Application) initLogging() error {
	out := app.opts.LogOutput
	if out == nil {
		out = io.Discard
		if path := app.cfg.Logging.File; path != "" {
			f, err := os.OpenFile(config.ExpandPath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			app.logFile = f
			out = f
		}
	}
	app.logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(app.cfg.Logging.Level),
		Output: out,
		Prefix: "confetti",
	})
	return nil
}

// settingsFrom maps the configuration onto controller settings.
func settingsFrom(cfg *config.Config) confetti.Settings {
	return confetti.Settings{
		Enabled:  cfg.Confetti.Enabled,
		Debounce: cfg.Confetti.Debounce,
		Duration: cfg.Confetti.Duration,
		Width:    cfg.Confetti.Width,
		Floating: cfg.Confetti.Floating,
	}
}

// post queues fn to run on the loop goroutine. Work posted after shutdown
// is dropped.
func (app *Application) post(fn func()) {
	select {
	case <-app.done:
	case app.funcs <- fn:
	}
}

// Controller returns the confetti controller.
func (app *Application) Controller() *confetti.Controller {
	return app.ctrl
}

// Editor returns the editor.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// EventBus returns the event bus.
func (app *Application) EventBus() event.Bus {
	return app.bus
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Shutdown deactivates confetti and releases every component.
// It is safe to call more than once and before Run.
func (app *Application) Shutdown() {
	app.shutOnce.Do(func() {
		close(app.done)

		if app.watcher != nil {
			_ = app.watcher.Close()
		}
		if app.plugins != nil {
			_ = app.plugins.Close()
		}
		if app.listener != nil {
			app.listener.Dispose()
		}
		if app.ctrl != nil {
			app.ctrl.Close()
		}
		if app.bus != nil {
			_ = app.bus.Stop()
		}
		if app.logger != nil {
			app.logger.Info("shut down")
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}
