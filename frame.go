package qraft

// Frame is an orientation: an ordered triple of nominally orthonormal pure
// quaternions giving the local x, y and z axes in parent coordinates.
//
// Frame is an array, so assignment copies it. Rotate is the only in-place
// mutator and touches nothing but the receiver.
type Frame [3]Quaternion

// IdentityFrame returns a fresh world-axis triple (i, j, k).
func IdentityFrame() Frame {
	return Frame{Vec(1, 0, 0), Vec(0, 1, 0), Vec(0, 0, 1)}
}

// NewFrame returns the frame with the given axes.
func NewFrame(x, y, z Quaternion) Frame {
	return Frame{x, y, z}
}

// X returns the frame's x axis.
func (f Frame) X() Quaternion { return f[0] }

// Y returns the frame's y axis.
func (f Frame) Y() Quaternion { return f[1] }

// Z returns the frame's z axis.
func (f Frame) Z() Quaternion { return f[2] }

// Rotated applies one rotation to every axis. Orthonormality is preserved
// analytically; floating-point drift accumulates over many calls (see
// Orthonormalized).
func (f Frame) Rotated(axis Quaternion, angle float64) Frame {
	r := rotor(axis, angle)
	rc := r.Conjugate()
	return Frame{r.Mul(f[0]).Mul(rc), r.Mul(f[1]).Mul(rc), r.Mul(f[2]).Mul(rc)}
}

// Rotate rotates f in place. See Rotated.
func (f *Frame) Rotate(axis Quaternion, angle float64) {
	*f = f.Rotated(axis, angle)
}

// Morph re-expresses each axis of f, given in parent's coordinates, in
// parent's own parent space. Used to accumulate a child's axes into world space.
func (f Frame) Morph(parent Frame) Frame {
	return Frame{f[0].Morph(parent), f[1].Morph(parent), f[2].Morph(parent)}
}

// Unmorph is the element-wise inverse of Morph.
func (f Frame) Unmorph(parent Frame) (Frame, error) {
	var out Frame
	for i := range f {
		v, err := f[i].Unmorph(parent)
		if err != nil {
			return Frame{}, err
		}
		out[i] = v
	}
	return out, nil
}

// Scaled returns the frame with its axes multiplied by sx, sy and sz.
func (f Frame) Scaled(sx, sy, sz float64) Frame {
	return Frame{f[0].Scale(sx), f[1].Scale(sy), f[2].Scale(sz)}
}

// Determinant returns x·(y×z), the signed volume spanned by the axes.
func (f Frame) Determinant() float64 {
	return f[0].Dot(f[1].Cross(f[2]))
}

// Orthonormalized returns f re-orthogonalized with Gram-Schmidt. The x axis
// keeps its direction, y is made perpendicular to it, and z is rebuilt as
// x×y, so the result is always right-handed. Degenerate input yields the
// identity frame.
func (f Frame) Orthonormalized() Frame {
	x := f[0].Pure().Normalized()
	y := f[1].Pure()
	y = y.Sub(x.Scale(x.Dot(y))).Normalized()
	if x.Norm() == 0 || y.Norm() == 0 {
		return IdentityFrame()
	}
	return Frame{x, y, x.Cross(y)}
}

// ApproxEqual reports whether every axis of f and g matches within eps.
func (f Frame) ApproxEqual(g Frame, eps float64) bool {
	return f[0].ApproxEqual(g[0], eps) && f[1].ApproxEqual(g[1], eps) && f[2].ApproxEqual(g[2], eps)
}
