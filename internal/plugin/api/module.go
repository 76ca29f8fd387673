package api

import lua "github.com/yuin/gopher-lua"

// Module is a set of Lua functions installed into a state.
type Module interface {
	// Name returns the global name the module is installed under.
	Name() string

	// Register installs the module into L.
	Register(L *lua.LState) error

	// Cleanup releases subscriptions and handler references.
	Cleanup()
}
