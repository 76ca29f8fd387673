package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// PrintFunc receives the output of the Lua print function.
type PrintFunc func(line string)

// removedGlobals can load or run code outside the sandbox.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
	"collectgarbage",
}

// Sandbox restricts a Lua state to safe operations.
type Sandbox struct {
	L     *lua.LState
	print PrintFunc
}

// NewSandbox creates a sandbox for L. A nil print discards output.
func NewSandbox(L *lua.LState, print PrintFunc) *Sandbox {
	return &Sandbox{L: L, print: print}
}

// Install removes unsafe globals and replaces print.
func (s *Sandbox) Install() {
	for _, name := range removedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(s.luaPrint))
}

// luaPrint joins its arguments with tabs, like the stock print.
func (s *Sandbox) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	if s.print != nil {
		s.print(strings.Join(parts, "\t"))
	}
	return 0
}

// openSafeLibraries opens only safe Lua standard libraries.
// io, os, debug and package are deliberately absent.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
		{lua.CoroutineLibName, lua.OpenCoroutine},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}
