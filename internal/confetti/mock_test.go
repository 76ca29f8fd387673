package confetti

import (
	"errors"
	"fmt"

	"github.com/dshills/confetti/internal/host"
)

// mockView is a single-document view with a movable cursor.
type mockView struct {
	id     string
	docID  string
	lines  []int // line lengths in columns
	cursor host.Position
}

func newMockView(id string, lines ...int) *mockView {
	return &mockView{id: id, docID: "doc-" + id, lines: lines}
}

func (v *mockView) ID() string            { return v.id }
func (v *mockView) DocumentID() string    { return v.docID }
func (v *mockView) Cursor() host.Position { return v.cursor }
func (v *mockView) LineEnd(line int) host.Position {
	if line < 0 || line >= len(v.lines) {
		return host.Position{Line: line}
	}
	return host.Position{Line: line, Col: v.lines[line]}
}

// placeBeforeEnd puts the cursor one column before the end of line.
func (v *mockView) placeBeforeEnd(line int) {
	v.cursor = host.Position{Line: line, Col: v.lines[line] - 1}
}

type hostCall struct {
	op     string
	handle host.DecorationHandle
}

// mockHost records every decoration call in order.
type mockHost struct {
	seq       int
	calls     []hostCall
	visible   map[host.DecorationHandle][]host.Range
	options   map[host.DecorationHandle]host.DecorationOptions
	createErr error
	setErr    error
}

func newMockHost() *mockHost {
	return &mockHost{
		visible: make(map[host.DecorationHandle][]host.Range),
		options: make(map[host.DecorationHandle]host.DecorationOptions),
	}
}

func (h *mockHost) CreateDecoration(opts host.DecorationOptions) (host.DecorationHandle, error) {
	if h.createErr != nil {
		return "", h.createErr
	}
	h.seq++
	handle := host.DecorationHandle(fmt.Sprintf("d%d", h.seq))
	h.options[handle] = opts
	h.calls = append(h.calls, hostCall{"create", handle})
	return handle, nil
}

func (h *mockHost) SetDecorations(_ host.View, handle host.DecorationHandle, ranges []host.Range) error {
	if h.setErr != nil {
		return h.setErr
	}
	if _, ok := h.options[handle]; !ok {
		return errors.New("unknown handle")
	}
	h.visible[handle] = ranges
	h.calls = append(h.calls, hostCall{"set", handle})
	return nil
}

func (h *mockHost) ReleaseDecoration(handle host.DecorationHandle) {
	delete(h.visible, handle)
	h.calls = append(h.calls, hostCall{"release", handle})
}

func (h *mockHost) count(op string) int {
	n := 0
	for _, c := range h.calls {
		if c.op == op {
			n++
		}
	}
	return n
}
