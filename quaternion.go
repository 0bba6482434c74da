package qraft

import (
	"fmt"
	"math"
)

// SingularEpsilon is the smallest |determinant| a frame may have and still be
// inverted by Unmorph.
const SingularEpsilon = 1e-12

// Quaternion is a value w + xi + yj + zk.
//
// A pure quaternion (W == 0) stands for a 3D point or vector; a unit
// quaternion stands for a rotation or a basis axis. The type does not enforce
// either: operations keep those properties only when callers feed them
// matching inputs. All methods on a value receiver return new values.
type Quaternion struct {
	W, X, Y, Z float64
}

// Q returns the quaternion w + xi + yj + zk.
func Q(w, x, y, z float64) Quaternion {
	return Quaternion{w, x, y, z}
}

// Vec returns the pure quaternion xi + yj + zk.
func Vec(x, y, z float64) Quaternion {
	return Quaternion{0, x, y, z}
}

// QuaternionFrom builds a quaternion from 3 components (promoted to a pure
// quaternion) or 4 components (w, x, y, z). Any other count panics.
func QuaternionFrom(c ...float64) Quaternion {
	switch len(c) {
	case 3:
		return Vec(c[0], c[1], c[2])
	case 4:
		return Q(c[0], c[1], c[2], c[3])
	}
	panic(fmt.Sprintf("qraft: quaternion needs 3 or 4 components, got %d", len(c)))
}

// Add returns q + r.
func (q Quaternion) Add(r Quaternion) Quaternion {
	return Quaternion{q.W + r.W, q.X + r.X, q.Y + r.Y, q.Z + r.Z}
}

// AddScalar returns q + s, where s is added to the real part.
func (q Quaternion) AddScalar(s float64) Quaternion {
	return Quaternion{q.W + s, q.X, q.Y, q.Z}
}

// Sub returns q - r.
func (q Quaternion) Sub(r Quaternion) Quaternion {
	return Quaternion{q.W - r.W, q.X - r.X, q.Y - r.Y, q.Z - r.Z}
}

// Neg returns -q.
func (q Quaternion) Neg() Quaternion {
	return Quaternion{-q.W, -q.X, -q.Y, -q.Z}
}

// Mul returns the Hamilton product q*r. It is not commutative.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Scale returns q with all four components multiplied by s.
func (q Quaternion) Scale(s float64) Quaternion {
	return Quaternion{q.W * s, q.X * s, q.Y * s, q.Z * s}
}

// DivScalar returns q with all four components divided by s.
// Division by zero follows IEEE-754 and yields infinities or NaN.
func (q Quaternion) DivScalar(s float64) Quaternion {
	return Quaternion{q.W / s, q.X / s, q.Y / s, q.Z / s}
}

// Div returns q * r⁻¹. It fails with ErrDivisionByZero when r has zero norm.
func (q Quaternion) Div(r Quaternion) (Quaternion, error) {
	inv, err := r.Inverse()
	if err != nil {
		return Quaternion{}, err
	}
	return q.Mul(inv), nil
}

// Inverse returns conj(q) / |q|².
func (q Quaternion) Inverse() (Quaternion, error) {
	ss := q.SquareSum()
	if ss == 0 {
		return Quaternion{}, ErrDivisionByZero
	}
	return q.Conjugate().DivScalar(ss), nil
}

// Conjugate returns w - xi - yj - zk.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{q.W, -q.X, -q.Y, -q.Z}
}

// SquareSum returns w² + x² + y² + z².
func (q Quaternion) SquareSum() float64 {
	return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
}

// Norm returns the Euclidean length of the 4-vector.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.SquareSum())
}

// Normalized returns q / |q|. A zero quaternion is returned unchanged.
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	if n == 0 {
		return q
	}
	return q.DivScalar(n)
}

// WithNorm returns q rescaled to length n, keeping its direction.
// A zero quaternion stays zero.
func (q Quaternion) WithNorm(n float64) Quaternion {
	return q.Normalized().Scale(n)
}

// Pure returns the vector part xi + yj + zk.
func (q Quaternion) Pure() Quaternion {
	return Quaternion{0, q.X, q.Y, q.Z}
}

// IsPure reports whether the real part is exactly zero.
func (q Quaternion) IsPure() bool {
	return q.W == 0
}

// Rotated returns r*q*conj(r) for the rotor r = cos(angle/2) + â·sin(angle/2),
// where â is the normalized vector part of axis. A zero axis yields the
// identity rotor for angle 0 and a pure scaling otherwise, so callers should
// pass a non-zero axis.
func (q Quaternion) Rotated(axis Quaternion, angle float64) Quaternion {
	r := rotor(axis, angle)
	return r.Mul(q).Mul(r.Conjugate())
}

// Rotate rotates q in place. See Rotated.
func (q *Quaternion) Rotate(axis Quaternion, angle float64) {
	*q = q.Rotated(axis, angle)
}

// rotor builds the unit quaternion cos(angle/2) + axiŝ·sin(angle/2).
func rotor(axis Quaternion, angle float64) Quaternion {
	s, c := math.Sincos(angle / 2)
	return axis.Pure().Normalized().Scale(s).AddScalar(c)
}

// Cross returns the 3-vector cross product of the vector parts as a pure quaternion.
func (q Quaternion) Cross(r Quaternion) Quaternion {
	return Quaternion{
		X: q.Y*r.Z - q.Z*r.Y,
		Y: q.Z*r.X - q.X*r.Z,
		Z: q.X*r.Y - q.Y*r.X,
	}
}

// Dot returns the 3-vector dot product of the vector parts.
func (q Quaternion) Dot(r Quaternion) float64 {
	return q.X*r.X + q.Y*r.Y + q.Z*r.Z
}

// Dot4 returns the dot product over all four components.
func (q Quaternion) Dot4(r Quaternion) float64 {
	return q.W*r.W + q.X*r.X + q.Y*r.Y + q.Z*r.Z
}

// Morph reads q's (x, y, z) as coordinates in frame f and returns the same
// vector expressed in f's parent space: x·f[0] + y·f[1] + z·f[2].
// Equivalent to multiplying by the 3×3 matrix whose columns are the axes.
func (q Quaternion) Morph(f Frame) Quaternion {
	return f[0].Scale(q.X).Add(f[1].Scale(q.Y)).Add(f[2].Scale(q.Z))
}

// Unmorph is the inverse of Morph: it returns the coordinates of the parent
// space vector q in frame f, solving the 3×3 system in closed form. It fails
// with ErrSingularFrame when the axes are (numerically) linearly dependent.
func (q Quaternion) Unmorph(f Frame) (Quaternion, error) {
	det := f.Determinant()
	if math.Abs(det) < SingularEpsilon {
		return Quaternion{}, ErrSingularFrame
	}
	// Rows of the inverse matrix are the reciprocal basis.
	rx := f[1].Cross(f[2])
	ry := f[2].Cross(f[0])
	rz := f[0].Cross(f[1])
	return Vec(q.Dot(rx)/det, q.Dot(ry)/det, q.Dot(rz)/det), nil
}

// Exp returns the quaternion exponential e^w·(cos|v| + v̂·sin|v|).
func Exp(q Quaternion) Quaternion {
	ew := math.Exp(q.W)
	v := q.Pure()
	n := v.Norm()
	if n == 0 {
		return Quaternion{W: ew}
	}
	s, c := math.Sincos(n)
	return v.DivScalar(n).Scale(s).AddScalar(c).Scale(ew)
}

// ApproxEqual reports whether every component of q and r differs by at most eps.
func (q Quaternion) ApproxEqual(r Quaternion, eps float64) bool {
	return math.Abs(q.W-r.W) <= eps && math.Abs(q.X-r.X) <= eps &&
		math.Abs(q.Y-r.Y) <= eps && math.Abs(q.Z-r.Z) <= eps
}

// String formats q as "(w +xi +yj +zk)" with three decimals.
func (q Quaternion) String() string {
	return fmt.Sprintf("(%.3f %+.3fi %+.3fj %+.3fk)", q.W, q.X, q.Y, q.Z)
}
