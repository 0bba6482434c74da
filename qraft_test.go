package qraft

import (
	"image/color"
	"testing"
)

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left edge", 10, 40, true},
		{"bottom edge", 50, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Intersects ---

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"fully contained", Rect{20, 20, 10, 10}, true},
		{"containing", Rect{0, 0, 200, 200}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, true},
		{"adjacent top", Rect{10, -50, 50, 60}, true},
		{"disjoint right", Rect{111, 10, 50, 50}, false},
		{"disjoint left", Rect{-100, 10, 50, 50}, false},
		{"disjoint below", Rect{10, 111, 50, 50}, false},
		{"zero-size at corner", Rect{110, 110, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Intersects(tt.other)
			if got != tt.expect {
				t.Errorf("Rect%v.Intersects(Rect%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
		})
	}
}

func TestRectExpand(t *testing.T) {
	got := Rect{0, 0, 800, 600}.Expand(800, 600)
	if got != (Rect{-800, -600, 2400, 1800}) {
		t.Errorf("Expand = %v", got)
	}
}

func TestBoundsOf(t *testing.T) {
	got := boundsOf([]Vec2{{3, -1}, {-2, 4}, {1, 1}})
	if got != (Rect{-2, -1, 5, 5}) {
		t.Errorf("boundsOf = %v, want {-2 -1 5 5}", got)
	}
}

// --- Color ---

func TestColorWhite(t *testing.T) {
	if ColorWhite.R != 1 || ColorWhite.G != 1 || ColorWhite.B != 1 || ColorWhite.A != 1 {
		t.Errorf("ColorWhite = %v, want {1,1,1,1}", ColorWhite)
	}
}

func TestColorScale(t *testing.T) {
	c := Color{0.5, 0.8, 1, 0.25}.Scale(1.5)
	if c != (Color{0.75, 1, 1, 0.25}) {
		t.Errorf("Scale(1.5) = %+v", c)
	}
	if c := (Color{0.5, 0.5, 0.5, 1}).Scale(-1); c != (Color{0, 0, 0, 1}) {
		t.Errorf("Scale(-1) = %+v, want clamped black", c)
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.toRGBA()
	want := color.RGBA{128, 64, 0, 128}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		err  bool
	}{
		{"#BBDDFF", DefaultMeshColor, false},
		{"bbddff", DefaultMeshColor, false},
		{" #000000 ", Color{0, 0, 0, 1}, false},
		{"#11223380", Color{0x11 / 255.0, 0x22 / 255.0, 0x33 / 255.0, 0x80 / 255.0}, false},
		{"#FFF", Color{}, true},
		{"#GG0000", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("err = %v, want error %v", err, tt.err)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseHexColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
	if h := RGB(0x12, 0xAB, 0x00).Hex(); h != "#12AB00" {
		t.Errorf("Hex = %q, want #12AB00", h)
	}
	if h := (Color{1, 0, 0, 0.5}).Hex(); h != "#FF000080" {
		t.Errorf("Hex = %q, want #FF000080", h)
	}
}

// --- Benchmarks (verify zero allocations) ---

func BenchmarkRectIntersects(b *testing.B) {
	r := Rect{10, 20, 100, 50}
	other := Rect{50, 40, 80, 60}
	b.ReportAllocs()
	for b.Loop() {
		_ = r.Intersects(other)
	}
}
