package qraft

import "math"

// RenderConfig tunes the per-frame pipeline. The zero value is usable but
// has no ambient light, no margin and back-face culling off; use
// DefaultRenderConfig for the usual settings.
type RenderConfig struct {
	// Ambient is the light floor in [0, 1] applied to every face.
	Ambient float64
	// Margin widens the offscreen test by Margin·W horizontally and
	// Margin·H vertically on each side of the screen.
	Margin float64
	// NearEpsilon is the smallest magnitude the projection divisor f + c.z
	// may have. A vertex closer than that to the eye plane cannot be
	// projected.
	NearEpsilon float64
	// CullBackFaces skips triangles facing away from the eye. Meshes with
	// DoubleSided set are exempt.
	CullBackFaces bool
}

// DefaultRenderConfig returns the settings used by NewScene.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Ambient:       0.3,
		Margin:        1.0,
		NearEpsilon:   1e-6,
		CullBackFaces: true,
	}
}

// FrameStats reports what one Render call did.
type FrameStats struct {
	Instances     int // mesh instances unpacked
	Triangles     int // triangles considered
	Drawn         int // polygons handed to the surface
	BackFace      int
	Offscreen     int
	// Unprojectable counts triangles entirely behind the eye plane or with
	// a vertex on it.
	Unprojectable int
	// Err is ErrSingularFrame when the camera frame could not be inverted.
	// Nothing is drawn in that case.
	Err error
}

// Culled returns the total number of skipped triangles.
func (s FrameStats) Culled() int {
	return s.BackFace + s.Offscreen + s.Unprojectable
}

// triangle is a shaded, projected triangle waiting to be painted.
type triangle struct {
	points [3]Vec2
	color  Color
	depth  float64 // sum of eye distances of the three vertices
	order  int     // emission order, for a stable sort
}

// Renderer turns a scene graph into back-to-front filled polygons. It keeps
// scratch buffers between frames, so a Renderer must not be used from more
// than one goroutine at a time.
type Renderer struct {
	Config RenderConfig

	instances []Instance
	camVerts  []Quaternion
	screen    []Vec2
	outside   []bool
	singular  []bool
	tris      []triangle
	sortBuf   []triangle
}

// NewRenderer creates a renderer with the given configuration.
func NewRenderer(cfg RenderConfig) *Renderer {
	return &Renderer{Config: cfg}
}

// Render draws roots as seen from cam onto surface. light is the direction
// the light travels, in world space. Stages run in a fixed order: unpack,
// camera transform, projection, culling, shading, depth sort, draw.
func (r *Renderer) Render(surface Surface, roots []Node, cam *Camera, light Quaternion) FrameStats {
	var st FrameStats
	r.instances = UnpackInto(r.instances[:0], roots...)
	// Drop mesh references held by the scratch buffer, on every exit.
	defer clear(r.instances)
	r.tris = r.tris[:0]
	st.Instances = len(r.instances)

	if len(r.instances) > 0 {
		if err := r.collect(surface, cam, light, &st); err != nil {
			st.Err = err
			r.tris = r.tris[:0]
			return st
		}
		r.sortTriangles()
	}

	for i := range r.tris {
		surface.DrawFilledPolygon(r.tris[i].points[:], r.tris[i].color)
	}
	st.Drawn = len(r.tris)
	if fl, ok := surface.(Flusher); ok {
		fl.Flush()
	}
	return st
}

// collect projects, culls and shades every instance triangle into r.tris.
func (r *Renderer) collect(surface Surface, cam *Camera, light Quaternion, st *FrameStats) error {
	cfg := r.Config
	frame := cam.Orientation
	lightCam, err := light.Pure().Unmorph(frame)
	if err != nil {
		return err
	}
	lightDir := lightCam.Normalized()

	f := cam.FocalLength()
	eye := cam.Position.Add(cam.FocalOffset())
	toEye := Vec(0, 0, f)
	w, h := float64(surface.Width()), float64(surface.Height())
	cx, cy := w/2, h/2
	scale := f * w / 2
	view := Rect{Width: w, Height: h}.Expand(cfg.Margin*w, cfg.Margin*h)
	ambient := clamp01(cfg.Ambient)

	order := 0
	for _, in := range r.instances {
		m := in.Mesh
		st.Triangles += len(m.triangles)

		r.camVerts = r.camVerts[:0]
		r.screen = r.screen[:0]
		r.outside = r.outside[:0]
		r.singular = r.singular[:0]
		for _, v := range m.vertices {
			world := in.Position.Add(v.Morph(in.Frame))
			c, err := world.Sub(eye).Unmorph(frame)
			if err != nil {
				return err
			}
			r.camVerts = append(r.camVerts, c)
			d := f + c.Z
			r.outside = append(r.outside, d <= 0)
			if math.Abs(d) <= cfg.NearEpsilon {
				r.screen = append(r.screen, Vec2{})
				r.singular = append(r.singular, true)
				continue
			}
			// Vertices behind the eye project with the signed divisor.
			r.screen = append(r.screen, Vec2{
				X: c.X*scale/d + cx,
				Y: c.Y*scale/d + cy,
			})
			r.singular = append(r.singular, false)
		}

		for _, t := range m.triangles {
			if (r.outside[t[0]] && r.outside[t[1]] && r.outside[t[2]]) ||
				r.singular[t[0]] || r.singular[t[1]] || r.singular[t[2]] {
				st.Unprojectable++
				continue
			}
			pts := [3]Vec2{r.screen[t[0]], r.screen[t[1]], r.screen[t[2]]}
			if !boundsOf(pts[:]).Intersects(view) {
				st.Offscreen++
				continue
			}

			c0, c1, c2 := r.camVerts[t[0]], r.camVerts[t[1]], r.camVerts[t[2]]
			normal := c1.Sub(c0).Cross(c2.Sub(c0)).Normalized()
			sight := c0.Add(c1).Add(c2).DivScalar(3).Add(toEye).Normalized()
			if sight.Dot(normal) > 0 {
				if cfg.CullBackFaces && !m.DoubleSided {
					st.BackFace++
					continue
				}
				// Light the side that faces the eye.
				normal = normal.Neg()
			}

			lambert := math.Max(0, normal.Neg().Dot(lightDir))
			intensity := ambient + (1-ambient)*lambert

			order++
			r.tris = append(r.tris, triangle{
				points: pts,
				color:  m.Color.Scale(intensity),
				depth:  c0.Add(toEye).Norm() + c1.Add(toEye).Norm() + c2.Add(toEye).Norm(),
				order:  order,
			})
		}
	}
	return nil
}

// --- Merge sort ---

// triangleLessOrEqual returns true if a should be painted before or at the
// same position as b: farther first, emission order breaking ties.
func triangleLessOrEqual(a, b *triangle) bool {
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.order <= b.order
}

// sortTriangles sorts r.tris in-place using r.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (r *Renderer) sortTriangles() {
	n := len(r.tris)
	if n <= 1 {
		return
	}
	if cap(r.sortBuf) < n {
		r.sortBuf = make([]triangle, n)
	}
	r.sortBuf = r.sortBuf[:n]

	a := r.tris
	b := r.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(r.tris, r.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []triangle, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if triangleLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:hi], src[i:mid])
	copy(dst[k:hi], src[j:hi])
}
