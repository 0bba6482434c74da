package qraft

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/vector"
)

// Surface is the 2D target a Renderer paints onto. Coordinates are pixels
// with the origin at the top-left and Y increasing downward.
type Surface interface {
	Width() int
	Height() int
	// DrawFilledPolygon fills the polygon through points with c.
	DrawFilledPolygon(points []Vec2, c Color)
}

// Flusher is implemented by surfaces that buffer draw calls. The renderer
// calls Flush once after the last polygon of a frame.
type Flusher interface {
	Flush()
}

// --- ImageSurface ---

// ImageSurface is a CPU surface backed by an *image.RGBA. Polygons are
// scan-converted with golang.org/x/image/vector and hard-thresholded at half
// coverage, so fills are aliased and later polygons simply overwrite
// earlier ones.
type ImageSurface struct {
	img    *image.RGBA
	raster *vector.Rasterizer
	mask   *image.Alpha
}

// NewImageSurface creates a w×h surface cleared to transparent black.
func NewImageSurface(w, h int) *ImageSurface {
	return &ImageSurface{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		raster: vector.NewRasterizer(w, h),
	}
}

// Width returns the surface width in pixels.
func (s *ImageSurface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *ImageSurface) Height() int { return s.img.Bounds().Dy() }

// Image returns the backing image. It is live: later draws modify it.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Clear fills the whole surface with c.
func (s *ImageSurface) Clear(c Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c.toRGBA()), image.Point{}, draw.Src)
}

// DrawFilledPolygon implements Surface.
func (s *ImageSurface) DrawFilledPolygon(points []Vec2, c Color) {
	if len(points) < 3 {
		return
	}
	b := boundsOf(points)
	if math.IsNaN(b.X) || math.IsNaN(b.Y) || math.IsInf(b.Width, 0) || math.IsInf(b.Height, 0) {
		return
	}
	r := image.Rect(
		int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.X+b.Width))+1, int(math.Ceil(b.Y+b.Height))+1,
	).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}

	w, h := r.Dx(), r.Dy()
	s.raster.Reset(w, h)
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	s.raster.MoveTo(float32(points[0].X-ox), float32(points[0].Y-oy))
	for _, p := range points[1:] {
		s.raster.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	s.raster.ClosePath()

	mask := s.scratchMask(w, h)
	s.raster.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	col := c.toRGBA()
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, a := range row {
			if a >= 0x80 {
				s.img.SetRGBA(r.Min.X+x, r.Min.Y+y, col)
			}
		}
	}
}

// scratchMask returns a zeroed w×h alpha mask, reusing the previous buffer
// when it is large enough.
func (s *ImageSurface) scratchMask(w, h int) *image.Alpha {
	if s.mask == nil || cap(s.mask.Pix) < w*h {
		s.mask = image.NewAlpha(image.Rect(0, 0, w, h))
		return s.mask
	}
	s.mask.Pix = s.mask.Pix[:w*h]
	clear(s.mask.Pix)
	s.mask.Stride = w
	s.mask.Rect = image.Rect(0, 0, w, h)
	return s.mask
}

// WritePNG encodes the surface to a PNG file at path.
func (s *ImageSurface) WritePNG(path string) error {
	return writePNG(path, s.img)
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// --- EbitenSurface ---

// EbitenSurface paints onto an *ebiten.Image. Polygons are fan-triangulated
// into one vertex batch and submitted with a single DrawTriangles32 call on
// Flush, in the order they were drawn.
type EbitenSurface struct {
	target *ebiten.Image
	verts  []ebiten.Vertex
	inds   []uint32
}

// NewEbitenSurface wraps target.
func NewEbitenSurface(target *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{target: target}
}

// SetTarget retargets the surface, dropping anything not yet flushed.
func (s *EbitenSurface) SetTarget(target *ebiten.Image) {
	s.target = target
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

// Clear fills the target with c and drops anything not yet flushed.
func (s *EbitenSurface) Clear(c Color) {
	s.target.Fill(c.toRGBA())
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

// Width returns the target width in pixels.
func (s *EbitenSurface) Width() int { return s.target.Bounds().Dx() }

// Height returns the target height in pixels.
func (s *EbitenSurface) Height() int { return s.target.Bounds().Dy() }

// DrawFilledPolygon implements Surface.
func (s *EbitenSurface) DrawFilledPolygon(points []Vec2, c Color) {
	n := len(points)
	if n < 3 {
		return
	}
	base := uint32(len(s.verts))
	// Vertex colors are premultiplied.
	cr := float32(clamp01(c.R) * c.A)
	cg := float32(clamp01(c.G) * c.A)
	cb := float32(clamp01(c.B) * c.A)
	ca := float32(c.A)
	off := float64(s.target.Bounds().Min.X)
	offY := float64(s.target.Bounds().Min.Y)
	for _, p := range points {
		s.verts = append(s.verts, ebiten.Vertex{
			DstX:   float32(p.X + off),
			DstY:   float32(p.Y + offY),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 1; i+1 < n; i++ {
		s.inds = append(s.inds, base, base+uint32(i), base+uint32(i+1))
	}
}

// Flush submits the batched polygons.
func (s *EbitenSurface) Flush() {
	if len(s.inds) > 0 {
		var op ebiten.DrawTrianglesOptions
		s.target.DrawTriangles32(s.verts, s.inds, WhitePixel, &op)
	}
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}
