package glyph

import (
	"net/url"
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestEncodeSVG(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"quotes", `<a b="c"></a>`, `%3Ca b='c'%3E%3C/a%3E`},
		{"between tags", "<a>\n   <b/>", `%3Ca%3E%3Cb/%3E`},
		{"collapse spaces", "x    y", "x y"},
		{"hash and percent", "#fff 50%", "%23fff 50%25"},
		{"parens kept", "rotate(45)", "rotate(45)"},
		{"brackets", "[a]{b}|c^d`e?f\\", "%5Ba%5D%7Bb%7D%7Cc%5Ed%60e%3Ff%5C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeSVG(tt.in); got != tt.want {
				t.Errorf("EncodeSVG(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderGlyph_IsDataURI(t *testing.T) {
	uri := RenderGlyph("abc-123")
	if !strings.HasPrefix(uri, DataURIPrefix) {
		t.Fatalf("missing data URI prefix: %q", uri[:40])
	}

	body := strings.TrimPrefix(uri, DataURIPrefix)
	for _, bad := range []string{"<", ">", "#", `"`, "\n"} {
		if strings.Contains(body, bad) {
			t.Errorf("encoded body contains %q", bad)
		}
	}

	decoded, err := url.PathUnescape(body)
	if err != nil {
		t.Fatalf("body does not unescape: %v", err)
	}
	if !strings.Contains(decoded, "id='confetti-abc-123'") {
		t.Error("expected the id to be embedded in the svg root")
	}
	if strings.Count(decoded, "<rect") != ParticleCount {
		t.Errorf("expected %d particles", ParticleCount)
	}
	if !strings.Contains(decoded, "<animate") {
		t.Error("expected an animated svg")
	}
}

func TestRenderGlyph_TranslateKeepsSpin(t *testing.T) {
	decoded, err := url.PathUnescape(strings.TrimPrefix(RenderGlyph("spin"), DataURIPrefix))
	if err != nil {
		t.Fatalf("unescape failed: %v", err)
	}
	if n := strings.Count(decoded, "transform='rotate("); n != ParticleCount {
		t.Errorf("rotated particles = %d, want %d", n, ParticleCount)
	}
	if n := strings.Count(decoded, "type='translate' additive='sum'"); n != ParticleCount {
		t.Errorf("additive translations = %d, want %d", n, ParticleCount)
	}
}

func TestRenderGlyph_DeterministicPerID(t *testing.T) {
	if RenderGlyph("one") != RenderGlyph("one") {
		t.Error("same id must render identically")
	}
	if RenderGlyph("one") == RenderGlyph("two") {
		t.Error("different ids must render differently")
	}
}

func TestRenderGlyph_SanitizesID(t *testing.T) {
	decoded, err := url.PathUnescape(strings.TrimPrefix(RenderGlyph(`x"><script>`), DataURIPrefix))
	if err != nil {
		t.Fatalf("unescape failed: %v", err)
	}
	if strings.Contains(decoded, "<script") {
		t.Error("id was not sanitized")
	}
}

func TestStyleString(t *testing.T) {
	got := StyleString(map[string]string{"width": "2em", "position": "absolute"})
	if got != "position:absolute;width:2em" {
		t.Errorf("StyleString = %q", got)
	}
	if StyleString(nil) != "" {
		t.Error("expected empty string for no styles")
	}
}

func TestFloatingMargin(t *testing.T) {
	want := "0;position:absolute;top:-.25em;transform:rotate(45deg)"
	if got := FloatingMargin(); got != want {
		t.Errorf("FloatingMargin = %q, want %q", got, want)
	}
}

func TestPalette(t *testing.T) {
	p := Palette("seed", 6)
	if len(p) != 6 {
		t.Fatalf("len = %d, want 6", len(p))
	}
	seen := make(map[string]bool)
	for _, c := range p {
		if !c.IsValid() {
			t.Errorf("colour %v out of gamut", c)
		}
		seen[c.Hex()] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 distinct colours, got %d", len(seen))
	}
	if Palette("seed", 0) != nil {
		t.Error("expected nil palette for n=0")
	}
}

func TestFrames(t *testing.T) {
	bg := colorful.Color{}
	frames := Frames("id", 5, 2, bg)
	if len(frames) != 5 {
		t.Fatalf("len = %d, want 5", len(frames))
	}
	for i, f := range frames {
		if len(f) == 0 || len(f) > 2 {
			t.Errorf("frame %d has %d cells, want 1..2", i, len(f))
		}
	}

	first := frames[0][0].Color
	last := frames[len(frames)-1][0].Color
	if last.DistanceLab(bg) >= first.DistanceLab(bg) {
		t.Error("expected the burst to fade toward the background")
	}

	if Frames("id", 0, 2, bg) != nil || Frames("id", 3, 0, bg) != nil {
		t.Error("expected nil for empty dimensions")
	}
}
