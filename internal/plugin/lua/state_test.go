package lua

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v := state.GetGlobal("x"); v != glua.LNumber(2) {
		t.Errorf("x = %v, want 2", v)
	}
}

func TestStateDoString_SyntaxError(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`x = = 1`); err == nil {
		t.Error("expected syntax error")
	}
}

func TestStateDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`greeting = "hi"`), 0o644); err != nil {
		t.Fatal(err)
	}

	state := NewState()
	defer state.Close()

	if err := state.DoFile(path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if v := state.GetGlobal("greeting"); v.String() != "hi" {
		t.Errorf("greeting = %v", v)
	}
}

func TestStateDoFile_Missing(t *testing.T) {
	state := NewState()
	defer state.Close()

	err := state.DoFile(filepath.Join(t.TempDir(), "nope.lua"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestStateTimeout(t *testing.T) {
	state := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer state.Close()

	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("expected ErrExecutionTimeout, got %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	state := NewState()
	if err := state.Close(); err != nil {
		t.Fatal(err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false")
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString after close = %v", err)
	}
	if v := state.GetGlobal("x"); v != glua.LNil {
		t.Errorf("GetGlobal after close = %v", v)
	}
}

func TestSandbox_RemovesUnsafeGlobals(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		if v := state.GetGlobal(name); v != glua.LNil {
			t.Errorf("%s should not be available, got %v", name, v.Type())
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs", "pcall"} {
		if v := state.GetGlobal(name); v == glua.LNil {
			t.Errorf("%s should be available", name)
		}
	}
}

func TestSandbox_Print(t *testing.T) {
	var lines []string
	state := NewState(WithPrint(func(line string) { lines = append(lines, line) }))
	defer state.Close()

	if err := state.DoString(`print("a", 1, true)`); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "a\t1\ttrue" {
		t.Errorf("lines = %q", lines)
	}
}

func TestSandbox_PrintDiscardedByDefault(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`print(string.rep("x", 3))`); err != nil {
		t.Errorf("print without sink: %v", err)
	}
}
