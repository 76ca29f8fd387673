package api

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/confetti/internal/confetti"
	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/event/events"
	"github.com/dshills/confetti/internal/event/topic"
	"github.com/dshills/confetti/internal/glyph"
	"github.com/dshills/confetti/internal/logging"
)

// Controller is the part of confetti.Controller scripts can drive.
type Controller interface {
	RequestRefresh(immediate bool) error
	Pending() bool
	Visible() bool
	Stats() confetti.Stats
}

// ConfettiModule implements the confetti Lua table.
type ConfettiModule struct {
	ctrl   Controller
	bus    event.Bus
	logger *logging.Logger

	L        *lua.LState
	handlers *lua.LTable // keeps handler functions reachable
	subs     map[string]event.Subscription
	nextID   uint64
}

// NewConfettiModule creates the module. bus may be nil, in which case
// on_shown and on_released raise an error.
func NewConfettiModule(ctrl Controller, bus event.Bus, logger *logging.Logger) *ConfettiModule {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ConfettiModule{
		ctrl:   ctrl,
		bus:    bus,
		logger: logger.WithComponent("lua"),
		subs:   make(map[string]event.Subscription),
	}
}

// Name returns the module name.
func (m *ConfettiModule) Name() string {
	return "confetti"
}

// Register installs the confetti global.
func (m *ConfettiModule) Register(L *lua.LState) error {
	m.L = L
	m.handlers = L.NewTable()
	L.SetGlobal("_confetti_handlers", m.handlers)

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"refresh":     m.refresh,
		"pending":     m.pending,
		"visible":     m.visible,
		"stats":       m.stats,
		"glyph":       m.glyph,
		"on_shown":    m.onShown,
		"on_released": m.onReleased,
		"off":         m.off,
	})
	L.SetGlobal(m.Name(), mod)
	return nil
}

// Cleanup cancels every subscription made by scripts.
func (m *ConfettiModule) Cleanup() {
	for id, sub := range m.subs {
		sub.Cancel()
		delete(m.subs, id)
	}
	if m.L != nil {
		m.L.SetGlobal("_confetti_handlers", lua.LNil)
	}
	m.L = nil
	m.handlers = nil
}

// refresh([immediate]) -> true | nil, err
func (m *ConfettiModule) refresh(L *lua.LState) int {
	immediate := L.OptBool(1, false)
	if err := m.ctrl.RequestRefresh(immediate); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (m *ConfettiModule) pending(L *lua.LState) int {
	L.Push(lua.LBool(m.ctrl.Pending()))
	return 1
}

func (m *ConfettiModule) visible(L *lua.LState) int {
	L.Push(lua.LBool(m.ctrl.Visible()))
	return 1
}

func (m *ConfettiModule) stats(L *lua.LState) int {
	s := m.ctrl.Stats()
	tbl := L.NewTable()
	for k, v := range map[string]uint64{
		"requested": s.Requested,
		"performed": s.Performed,
		"skipped":   s.Skipped,
		"shown":     s.Shown,
		"released":  s.Released,
		"expired":   s.Expired,
		"failed":    s.Failed,
	} {
		tbl.RawSetString(k, lua.LNumber(v))
	}
	L.Push(tbl)
	return 1
}

// glyph(id) -> data URI
func (m *ConfettiModule) glyph(L *lua.LState) int {
	id := L.CheckString(1)
	if id == "" {
		L.ArgError(1, "glyph id cannot be empty")
		return 0
	}
	L.Push(lua.LString(glyph.RenderGlyph(id)))
	return 1
}

// on_shown(fn) -> id
func (m *ConfettiModule) onShown(L *lua.LState) int {
	fn := L.CheckFunction(1)
	id := m.subscribe(L, fn, events.TopicDecorationShown, func(L *lua.LState, ev any) *lua.LTable {
		e, ok := ev.(event.Event[events.DecorationShown])
		if !ok {
			return nil
		}
		p := e.Payload
		tbl := L.NewTable()
		tbl.RawSetString("handle", lua.LString(p.Handle))
		tbl.RawSetString("view", lua.LString(p.ViewID))
		tbl.RawSetString("glyph", lua.LString(p.GlyphID))
		tbl.RawSetString("line", lua.LNumber(p.Range.Start.Line))
		tbl.RawSetString("col", lua.LNumber(p.Range.Start.Col))
		return tbl
	})
	L.Push(lua.LString(id))
	return 1
}

// on_released(fn) -> id
func (m *ConfettiModule) onReleased(L *lua.LState) int {
	fn := L.CheckFunction(1)
	id := m.subscribe(L, fn, events.TopicDecorationReleased, func(L *lua.LState, ev any) *lua.LTable {
		e, ok := ev.(event.Event[events.DecorationReleased])
		if !ok {
			return nil
		}
		p := e.Payload
		tbl := L.NewTable()
		tbl.RawSetString("handle", lua.LString(p.Handle))
		tbl.RawSetString("expired", lua.LBool(p.Expired))
		return tbl
	})
	L.Push(lua.LString(id))
	return 1
}

// off(id) -> bool
func (m *ConfettiModule) off(L *lua.LState) int {
	id := L.CheckString(1)
	sub, ok := m.subs[id]
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	sub.Cancel()
	delete(m.subs, id)
	if m.handlers != nil {
		m.handlers.RawSetString(id, lua.LNil)
	}
	L.Push(lua.LTrue)
	return 1
}

// payloadConverter turns a bus event into the handler argument, or nil to skip it.
type payloadConverter func(L *lua.LState, ev any) *lua.LTable

func (m *ConfettiModule) subscribe(L *lua.LState, fn *lua.LFunction, t topic.Topic, convert payloadConverter) string {
	if m.bus == nil {
		L.RaiseError("no event bus available")
		return ""
	}

	m.nextID++
	id := fmt.Sprintf("confetti_%d", m.nextID)
	m.handlers.RawSetString(id, fn)

	sub, err := m.bus.Subscribe(t, event.HandlerFunc(func(_ context.Context, ev any) error {
		return m.dispatch(id, ev, convert)
	}))
	if err != nil {
		m.handlers.RawSetString(id, lua.LNil)
		L.RaiseError("subscribe %s: %v", t, err)
		return ""
	}
	m.subs[id] = sub
	return id
}

// dispatch calls the Lua handler id with the converted payload.
// Script errors are logged rather than returned to the bus.
func (m *ConfettiModule) dispatch(id string, ev any, convert payloadConverter) error {
	L, handlers := m.L, m.handlers
	if L == nil || handlers == nil {
		return nil
	}
	fn := handlers.RawGetString(id)
	if fn.Type() != lua.LTFunction {
		return nil
	}

	arg := convert(L, ev)
	if arg == nil {
		return nil
	}

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, arg); err != nil {
		m.logger.Warn("handler %s failed: %v", id, err)
	}
	return nil
}
