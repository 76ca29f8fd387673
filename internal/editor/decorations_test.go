package editor

import (
	"errors"
	"testing"

	"github.com/dshills/confetti/internal/host"
)

func afterOpts() host.DecorationOptions {
	return host.DecorationOptions{After: &host.AttachmentOptions{ContentIconPath: "data:x", Width: "2em"}}
}

func TestDecorations_Lifecycle(t *testing.T) {
	d := NewDecorations()
	changes := 0
	d.OnChange(func() { changes++ })

	v := NewView(NewBuffer("abc"))
	h, err := d.CreateDecoration(afterOpts())
	if err != nil {
		t.Fatalf("CreateDecoration() error = %v", err)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d", d.Len())
	}
	if got := d.At(v.ID(), 0); len(got) != 0 {
		t.Errorf("unplaced decoration visible: %v", got)
	}

	r := host.EmptyRange(host.Position{Line: 0, Col: 2})
	if err := d.SetDecorations(v, h, []host.Range{r}); err != nil {
		t.Fatalf("SetDecorations() error = %v", err)
	}
	placed := d.At(v.ID(), 0)
	if len(placed) != 1 || placed[0].Range != r || placed[0].Decoration.Handle != h {
		t.Fatalf("At() = %+v", placed)
	}
	if got := d.At("other-view", 0); len(got) != 0 {
		t.Errorf("decoration leaked into another view: %v", got)
	}

	d.ReleaseDecoration(h)
	d.ReleaseDecoration(h)
	if d.Len() != 0 {
		t.Errorf("Len() after release = %d", d.Len())
	}
	if changes != 2 {
		t.Errorf("changes = %d, want 2 (set + one release)", changes)
	}
}

func TestDecorations_Errors(t *testing.T) {
	d := NewDecorations()
	if _, err := d.CreateDecoration(host.DecorationOptions{}); !errors.Is(err, ErrNoAttachment) {
		t.Errorf("CreateDecoration without After = %v", err)
	}

	v := NewView(NewBuffer(""))
	if err := d.SetDecorations(v, "missing", nil); !errors.Is(err, host.ErrUnknownDecoration) {
		t.Errorf("SetDecorations unknown = %v", err)
	}

	h, _ := d.CreateDecoration(afterOpts())
	if err := d.SetDecorations(nil, h, nil); !errors.Is(err, ErrNilView) {
		t.Errorf("SetDecorations nil view = %v", err)
	}
}

func TestDecorations_AtOrdersByColumn(t *testing.T) {
	d := NewDecorations()
	v := NewView(NewBuffer("abcdef"))

	h1, _ := d.CreateDecoration(afterOpts())
	h2, _ := d.CreateDecoration(afterOpts())
	_ = d.SetDecorations(v, h1, []host.Range{host.EmptyRange(host.Position{Col: 4})})
	_ = d.SetDecorations(v, h2, []host.Range{host.EmptyRange(host.Position{Col: 1})})

	placed := d.At(v.ID(), 0)
	if len(placed) != 2 || placed[0].Decoration.Handle != h2 || placed[1].Decoration.Handle != h1 {
		t.Errorf("At() order = %+v", placed)
	}
}
