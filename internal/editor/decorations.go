package editor

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/confetti/internal/host"
)

// Errors returned by the decoration store.
var (
	ErrNoAttachment = errors.New("decoration has no after attachment")
	ErrNilView      = errors.New("nil view")
)

// Decoration is a created decoration and where it is currently applied.
type Decoration struct {
	Handle  host.DecorationHandle
	Options host.DecorationOptions
	ViewID  string
	Ranges  []host.Range
	Created time.Time
}

// Decorations stores decorations and implements host.Host.
type Decorations struct {
	items    map[host.DecorationHandle]*Decoration
	order    []host.DecorationHandle
	onChange func()
	now      func() time.Time
}

// NewDecorations creates an empty store.
func NewDecorations() *Decorations {
	return &Decorations{
		items: make(map[host.DecorationHandle]*Decoration),
		now:   time.Now,
	}
}

// OnChange sets a callback invoked after decorations are set or released.
func (d *Decorations) OnChange(fn func()) {
	d.onChange = fn
}

// CreateDecoration registers a decoration type. It is not visible until
// SetDecorations places it.
func (d *Decorations) CreateDecoration(opts host.DecorationOptions) (host.DecorationHandle, error) {
	if opts.After == nil {
		return "", ErrNoAttachment
	}
	h := host.DecorationHandle(uuid.NewString())
	d.items[h] = &Decoration{Handle: h, Options: opts, Created: d.now()}
	d.order = append(d.order, h)
	return h, nil
}

// SetDecorations places handle on ranges in view, replacing earlier ranges.
func (d *Decorations) SetDecorations(view host.View, handle host.DecorationHandle, ranges []host.Range) error {
	if view == nil {
		return ErrNilView
	}
	dec, ok := d.items[handle]
	if !ok {
		return host.ErrUnknownDecoration
	}
	dec.ViewID = view.ID()
	dec.Ranges = append([]host.Range(nil), ranges...)
	d.changed()
	return nil
}

// ReleaseDecoration removes handle. Unknown handles are ignored.
func (d *Decorations) ReleaseDecoration(handle host.DecorationHandle) {
	if _, ok := d.items[handle]; !ok {
		return
	}
	delete(d.items, handle)
	for i, h := range d.order {
		if h == handle {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.changed()
}

// Get returns the decoration for handle.
func (d *Decorations) Get(handle host.DecorationHandle) (*Decoration, bool) {
	dec, ok := d.items[handle]
	return dec, ok
}

// Len returns the number of live decorations.
func (d *Decorations) Len() int {
	return len(d.items)
}

// Placed is one decorated range ready for painting.
type Placed struct {
	Decoration *Decoration
	Range      host.Range
}

// At returns the decorated ranges in viewID that start on line,
// ordered by column then creation.
func (d *Decorations) At(viewID string, line int) []Placed {
	var out []Placed
	for _, h := range d.order {
		dec := d.items[h]
		if dec.ViewID != viewID {
			continue
		}
		for _, r := range dec.Ranges {
			if r.Start.Line == line {
				out = append(out, Placed{Decoration: dec, Range: r})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Range.Start.Col < out[j].Range.Start.Col
	})
	return out
}

func (d *Decorations) changed() {
	if d.onChange != nil {
		d.onChange()
	}
}

var _ host.Host = (*Decorations)(nil)
