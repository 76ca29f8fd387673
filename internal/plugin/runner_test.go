package plugin

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/confetti/internal/confetti"
	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/logging"
)

type stubController struct {
	requests int
}

func (s *stubController) RequestRefresh(bool) error { s.requests++; return nil }
func (s *stubController) Pending() bool             { return false }
func (s *stubController) Visible() bool             { return false }
func (s *stubController) Stats() confetti.Stats     { return confetti.Stats{} }

func TestRunner_LoadString(t *testing.T) {
	ctrl := &stubController{}
	r, err := NewRunner(ctrl, event.NewBus(), nil)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	defer r.Close()

	if err := r.LoadString("inline", `confetti.refresh()`); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if ctrl.requests != 1 {
		t.Errorf("requests = %d, want 1", ctrl.requests)
	}
	if r.Script() != "inline" {
		t.Errorf("Script() = %q", r.Script())
	}
	if err := r.LoadString("again", ``); !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("second load = %v, want ErrAlreadyLoaded", err)
	}
}

func TestRunner_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`print("hello", confetti.pending())`), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})
	r, err := NewRunner(&stubController{}, nil, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !strings.Contains(buf.String(), "hello\tfalse") {
		t.Errorf("print output not logged: %q", buf.String())
	}
}

func TestRunner_ScriptError(t *testing.T) {
	r, err := NewRunner(&stubController{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	err = r.LoadString("bad.lua", `error("nope")`)
	if err == nil || !strings.Contains(err.Error(), "bad.lua") {
		t.Errorf("expected wrapped script error, got %v", err)
	}
}

func TestRunner_Close(t *testing.T) {
	r, err := NewRunner(&stubController{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if !r.State().IsClosed() {
		t.Error("state not closed")
	}
	if err := r.LoadString("x", ""); !errors.Is(err, ErrClosed) {
		t.Errorf("load after close = %v", err)
	}
}
