package qraft

import "math"

// Mesh is a leaf node carrying static geometry: local vertex positions, the
// faces as declared, their fan triangulation, and one flat color.
//
// Faces wind counter-clockwise seen from outside, so cross(v1-v0, v2-v0) is
// the outward normal. All built-in generators follow this convention and the
// renderer's back-face cull depends on it.
type Mesh struct {
	Entity

	// Color is the base color before shading.
	Color Color
	// DoubleSided meshes are never back-face culled.
	DoubleSided bool

	vertices  []Quaternion
	faces     [][]int
	triangles [][3]int
}

// NewMesh validates faces against vertices and fan-triangulates them. Every
// face needs at least three indices, each naming an existing vertex;
// otherwise a *GeometryError wrapping ErrMalformedGeometry is returned.
// The vertex and face slices are copied.
func NewMesh(name string, vertices []Quaternion, faces [][]int, color Color) (*Mesh, error) {
	ntri := 0
	for fi, f := range faces {
		if len(f) < 3 {
			return nil, &GeometryError{Mesh: name, Face: fi, Index: ShortFace, Reason: reasonShortFace}
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(vertices) {
				return nil, &GeometryError{Mesh: name, Face: fi, Index: idx, Reason: reasonIndexRange}
			}
		}
		ntri += len(f) - 2
	}
	return newMesh(name, vertices, faces, ntri, color), nil
}

// MustMesh is NewMesh for static tables; it panics on malformed geometry.
func MustMesh(name string, vertices []Quaternion, faces [][]int, color Color) *Mesh {
	m, err := NewMesh(name, vertices, faces, color)
	if err != nil {
		panic(err)
	}
	return m
}

// newMesh builds a mesh from trusted faces.
func newMesh(name string, vertices []Quaternion, faces [][]int, ntri int, color Color) *Mesh {
	m := &Mesh{
		Entity:    newEntity(name),
		Color:     color,
		vertices:  make([]Quaternion, len(vertices)),
		faces:     make([][]int, len(faces)),
		triangles: make([][3]int, 0, ntri),
	}
	copy(m.vertices, vertices)
	for i, f := range faces {
		m.faces[i] = append([]int(nil), f...)
		// Fan triangulation: vertex 0 is the hub.
		for k := 0; k+2 < len(f); k++ {
			m.triangles = append(m.triangles, [3]int{f[0], f[k+1], f[k+2]})
		}
	}
	return m
}

// Vertices returns the local vertex positions. The slice MUST NOT be mutated.
func (m *Mesh) Vertices() []Quaternion { return m.vertices }

// Faces returns the faces as declared. The slices MUST NOT be mutated.
func (m *Mesh) Faces() [][]int { return m.faces }

// Triangles returns the fan-triangulated faces.
func (m *Mesh) Triangles() [][3]int { return m.triangles }

// NumTriangles returns len(Triangles()).
func (m *Mesh) NumTriangles() int { return len(m.triangles) }

// Volume returns the enclosed volume of a closed, outward-wound mesh as the
// sum of signed tetrahedra against the local origin. Open meshes give
// meaningless results.
func (m *Mesh) Volume() float64 {
	v, _ := m.volumeCentroid()
	return v
}

// Centroid returns the volumetric center of a closed mesh in local
// coordinates. A mesh with zero volume returns the vertex average.
func (m *Mesh) Centroid() Quaternion {
	_, c := m.volumeCentroid()
	return c
}

func (m *Mesh) volumeCentroid() (float64, Quaternion) {
	var vol float64
	var acc Quaternion
	for _, t := range m.triangles {
		a, b, c := m.vertices[t[0]], m.vertices[t[1]], m.vertices[t[2]]
		v := a.Dot(b.Cross(c)) / 6
		vol += v
		acc = acc.Add(a.Add(b).Add(c).Scale(v / 4))
	}
	if math.Abs(vol) < 1e-15 {
		var avg Quaternion
		for _, v := range m.vertices {
			avg = avg.Add(v)
		}
		if len(m.vertices) > 0 {
			avg = avg.DivScalar(float64(len(m.vertices)))
		}
		return 0, avg.Pure()
	}
	return vol, acc.DivScalar(vol).Pure()
}

// Bounds returns the local axis-aligned bounding box as its minimum and
// maximum corners. An empty mesh returns two zero vectors.
func (m *Mesh) Bounds() (lo, hi Quaternion) {
	if len(m.vertices) == 0 {
		return
	}
	lo, hi = m.vertices[0].Pure(), m.vertices[0].Pure()
	for _, v := range m.vertices[1:] {
		lo = Vec(math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z))
		hi = Vec(math.Max(hi.X, v.X), math.Max(hi.Y, v.Y), math.Max(hi.Z, v.Z))
	}
	return lo, hi
}
