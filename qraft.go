package qraft

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Meshes carry a flat RGB color; A is only honored by surfaces that blend.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default mesh color used when none is given.
var ColorWhite = Color{1, 1, 1, 1}

// DefaultMeshColor is the pale blue applied to meshes decoded without a color.
var DefaultMeshColor = Color{0xBB / 255.0, 0xDD / 255.0, 1, 1}

// RGB returns an opaque color from 0-255 channel values.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// Scale multiplies the R, G and B channels by f, leaving alpha untouched.
// The result is clamped to [0, 1].
func (c Color) Scale(f float64) Color {
	return Color{clamp01(c.R * f), clamp01(c.G * f), clamp01(c.B * f), c.A}
}

// RGBA implements color.Color (premultiplied, 16-bit).
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Hex formats the color as "#RRGGBB", or "#RRGGBBAA" when it is not opaque.
func (c Color) Hex() string {
	h := fmt.Sprintf("#%02X%02X%02X",
		uint8(clamp01(c.R)*255+0.5), uint8(clamp01(c.G)*255+0.5), uint8(clamp01(c.B)*255+0.5))
	if a := uint8(clamp01(c.A)*255 + 0.5); a != 0xFF {
		h += fmt.Sprintf("%02X", a)
	}
	return h
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA", with or without the '#'.
// Six digits give an opaque color.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	if len(h) == 6 {
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	c := RGB(uint8(v>>24), uint8(v>>16), uint8(v>>8))
	c.A = float64(uint8(v)) / 255
	return c, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D point in screen space (pixels, Y down).
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used as the source for untextured triangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Expand returns r grown by dx on the left and right and dy on the top and bottom.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{r.X - dx, r.Y - dy, r.Width + 2*dx, r.Height + 2*dy}
}

// boundsOf returns the bounding rectangle of pts. pts must be non-empty.
func boundsOf(pts []Vec2) Rect {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
