package app

import (
	"context"

	"github.com/dshills/confetti/internal/config"
	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/event/events"
	"github.com/dshills/confetti/internal/logging"
)

// reloadConfig re-reads the configuration file and applies the parts that
// can change at runtime: confetti settings and the log level. A file that
// fails to load or validate leaves the running settings untouched.
func (app *Application) reloadConfig() {
	cfg, err := config.Load(config.WithPath(app.cfg.Path))
	if err != nil {
		app.logger.Warn("config reload failed: %v", err)
		app.status = "config error"
		return
	}
	// Settings given on the command line or in the original session that
	// cannot change at runtime are carried over.
	cfg.Path = app.cfg.Path
	cfg.Plugin = app.cfg.Plugin
	cfg.Logging.File = app.cfg.Logging.File
	app.cfg = cfg

	app.ctrl.UpdateSettings(settingsFrom(cfg))
	app.logger.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	if app.view != nil {
		app.view.SetLifetime(cfg.Confetti.Duration)
	}
	app.status = "config reloaded"
	app.logger.Info("config reloaded from %s", cfg.Path)

	ev := event.NewEvent(events.TopicConfigReloaded, events.ConfigReloaded{
		Path:     cfg.Path,
		Enabled:  cfg.Confetti.Enabled,
		Debounce: cfg.Confetti.Debounce,
		Duration: cfg.Confetti.Duration,
	}, "app")
	if err := app.bus.Publish(context.Background(), ev); err != nil {
		app.logger.Debug("publish config reload: %v", err)
	}
}
