package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/confetti/internal/editor"
)

// frameInterval paces redraws while a burst animates.
const frameInterval = time.Second / 30

// Run takes over the terminal and processes input until the user quits.
// The caller should call Shutdown afterwards.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	select {
	case <-app.done:
		return ErrShutdown
	default:
	}

	screen := app.opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer screen.Fini()

	app.screen = screen
	app.view = editor.NewScreen(screen, app.editor.Decorations(),
		editor.WithLifetime(app.cfg.Confetti.Duration))

	events := make(chan tcell.Event, 64)
	go app.pollEvents(screen, events)

	return app.loop(events)
}

// pollEvents forwards terminal events until the screen is finalised.
func (app *Application) pollEvents(screen tcell.Screen, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-app.done:
			return
		}
	}
}

// loop runs until a quit key, a closed event channel or Shutdown.
func (app *Application) loop(events <-chan tcell.Event) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	app.draw()
	for {
		select {
		case <-app.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !app.handleEvent(ev) {
				return nil
			}
			app.draw()
		case fn := <-app.funcs:
			fn()
			app.draw()
		case <-ticker.C:
			if app.view != nil && app.view.Animating() {
				app.draw()
			}
		}
	}
}

// handleEvent applies a terminal event. It returns false to quit.
func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return app.editor.HandleKey(ev)
	case *tcell.EventResize:
		if app.screen != nil {
			app.screen.Sync()
		}
	}
	return true
}

func (app *Application) draw() {
	if app.view == nil {
		return
	}
	app.view.Draw(app.editor.Active(), app.statusLine())
}

func (app *Application) statusLine() string {
	line := "confetti"
	if v := app.editor.Active(); v != nil {
		c := v.Cursor()
		line = fmt.Sprintf("confetti  %d:%d  %s", c.Line+1, c.Col+1, app.ctrl.State())
	}
	if app.status != "" {
		line += "  [" + app.status + "]"
	}
	return line + "  ^Q quit  ^N next view"
}
