package qraft

import "math"

// --- Cuboid ---

// cuboidCorners are the unit-cube corners; index bits are (x, y, z) = (4, 2, 1).
var cuboidCorners = [8][3]float64{
	{-1, -1, -1}, {-1, -1, 1},
	{-1, 1, -1}, {-1, 1, 1},
	{1, -1, -1}, {1, -1, 1},
	{1, 1, -1}, {1, 1, 1},
}

// cuboidFaces lists the six quads, counter-clockwise seen from outside:
// -x, +x, -y, +y, -z, +z.
var cuboidFaces = [6][4]int{
	{0, 1, 3, 2}, {4, 6, 7, 5},
	{0, 4, 5, 1}, {2, 3, 7, 6},
	{0, 2, 6, 4}, {1, 5, 7, 3},
}

// NewCuboid creates a box centered on its origin with edge lengths
// size.X, size.Y and size.Z: 8 vertices, 6 quads, 12 triangles.
func NewCuboid(name string, size Quaternion, color Color) *Mesh {
	half := IdentityFrame().Scaled(size.X/2, size.Y/2, size.Z/2)
	verts := make([]Quaternion, len(cuboidCorners))
	for i, c := range cuboidCorners {
		verts[i] = Vec(c[0], c[1], c[2]).Morph(half)
	}
	faces := make([][]int, len(cuboidFaces))
	for i := range cuboidFaces {
		faces[i] = cuboidFaces[i][:]
	}
	return newMesh(name, verts, faces, 12, color)
}

// --- UV sphere ---

// NewUVSphere creates a latitude/longitude sphere. m is the number of
// vertex rows from pole to pole (clamped to at least 2) and n the number of
// vertices per interior row (clamped to at least 3).
//
// Row i sits at latitude i/(m-1)·π and vertex j at longitude j/n·2π. The
// poles are single vertices, so the mesh has 2+(m-2)·n vertices and
// 2·n·(m-2) triangular faces; m == 2 gives the two poles and no faces.
func NewUVSphere(name string, radius float64, m, n int, color Color) *Mesh {
	m = max(m, 2)
	n = max(n, 3)

	verts := make([]Quaternion, 0, uvSphereVertexCount(m, n))
	verts = append(verts, Vec(0, 0, radius))
	for i := 1; i < m-1; i++ {
		lat := float64(i) / float64(m-1) * math.Pi
		sinLat, cosLat := math.Sincos(lat)
		for j := 0; j < n; j++ {
			lon := float64(j) / float64(n) * 2 * math.Pi
			sinLon, cosLon := math.Sincos(lon)
			verts = append(verts, Vec(radius*sinLat*cosLon, radius*sinLat*sinLon, radius*cosLat))
		}
	}
	verts = append(verts, Vec(0, 0, -radius))

	nf := uvSphereFaceCount(m, n)
	faces := make([][]int, 0, nf)
	if m > 2 {
		north, south := 0, len(verts)-1
		for j := 0; j < n; j++ {
			faces = append(faces, []int{north, uvIndex(n, 1, j), uvIndex(n, 1, j+1)})
		}
		for i := 1; i < m-2; i++ {
			for j := 0; j < n; j++ {
				a, b := uvIndex(n, i, j), uvIndex(n, i+1, j)
				c, d := uvIndex(n, i+1, j+1), uvIndex(n, i, j+1)
				faces = append(faces, []int{a, b, c}, []int{a, c, d})
			}
		}
		for j := 0; j < n; j++ {
			faces = append(faces, []int{uvIndex(n, m-2, j), south, uvIndex(n, m-2, j+1)})
		}
	}
	return newMesh(name, verts, faces, nf, color)
}

// uvIndex returns the vertex index of interior row i (1-based), column j
// (wrapping around the row).
func uvIndex(n, i, j int) int {
	return 1 + (i-1)*n + j%n
}

func uvSphereVertexCount(m, n int) int { return 2 + (m-2)*n }

func uvSphereFaceCount(m, n int) int { return 2 * n * (m - 2) }

// --- Icosahedron / icosphere ---

var phi = (1 + math.Sqrt(5)) / 2

var icosahedronCorners = [12][3]float64{
	{0, phi, 1}, {0, -phi, 1}, {0, -phi, -1}, {0, phi, -1},
	{1, 0, phi}, {1, 0, -phi}, {-1, 0, -phi}, {-1, 0, phi},
	{phi, 1, 0}, {-phi, 1, 0}, {-phi, -1, 0}, {phi, -1, 0},
}

var icosahedronFaces = [20][3]int{
	{0, 7, 4}, {0, 4, 8}, {0, 8, 3}, {0, 3, 9}, {0, 9, 7},
	{5, 3, 8}, {5, 6, 3}, {5, 2, 6}, {5, 11, 2}, {5, 8, 11},
	{1, 11, 4}, {1, 4, 7}, {1, 7, 10}, {1, 10, 2}, {1, 2, 11},
	{10, 9, 6}, {9, 10, 7}, {6, 9, 3}, {10, 6, 2}, {4, 11, 8},
}

// NewIcosahedron creates a regular icosahedron with its 12 vertices on a
// sphere of the given radius: 20 triangular faces.
func NewIcosahedron(name string, radius float64, color Color) *Mesh {
	return NewIcosphere(name, radius, 0, color)
}

// NewIcosphere subdivides an icosahedron k times. Each round splits every
// triangle into four through its edge midpoints, pushed back out to radius.
// Midpoints are shared between neighbouring faces, giving 20·4^k faces and
// 10·4^k+2 vertices. Negative k is treated as 0.
func NewIcosphere(name string, radius float64, k int, color Color) *Mesh {
	verts := make([]Quaternion, len(icosahedronCorners))
	for i, c := range icosahedronCorners {
		verts[i] = Vec(c[0], c[1], c[2]).WithNorm(radius)
	}
	tris := make([][3]int, len(icosahedronFaces))
	copy(tris, icosahedronFaces[:])

	for round := 0; round < k; round++ {
		mid := make(map[[2]int]int, len(tris)*3/2)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if i, ok := mid[key]; ok {
				return i
			}
			verts = append(verts, verts[a].Add(verts[b]).WithNorm(radius))
			mid[key] = len(verts) - 1
			return len(verts) - 1
		}
		next := make([][3]int, 0, len(tris)*4)
		for _, t := range tris {
			ab := midpoint(t[0], t[1])
			bc := midpoint(t[1], t[2])
			ca := midpoint(t[2], t[0])
			next = append(next,
				[3]int{t[0], ab, ca},
				[3]int{t[1], bc, ab},
				[3]int{t[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		tris = next
	}

	faces := make([][]int, len(tris))
	for i := range tris {
		faces[i] = tris[i][:]
	}
	return newMesh(name, verts, faces, len(tris), color)
}

// --- Polyline ---

// NewPolyline creates a flat ribbon of the given width along points. The
// ribbon's width runs along segment × view, so it faces a viewer looking
// along view. If closed is true the last point connects back to the first.
// The mesh is double-sided. Fewer than two points gives an empty mesh.
func NewPolyline(name string, points []Quaternion, width float64, closed bool, view Quaternion, color Color) *Mesh {
	pts := points
	if closed && len(points) > 1 {
		pts = append(append([]Quaternion(nil), points...), points[0])
	}
	var verts []Quaternion
	var faces [][]int
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i].Pure(), pts[i+1].Pure()
		side := b.Sub(a).Cross(view)
		if side.Norm() == 0 {
			side = anyPerpendicular(b.Sub(a))
		}
		side = side.WithNorm(width / 2)
		j := len(verts)
		verts = append(verts, a.Add(side), a.Sub(side), b.Add(side), b.Sub(side))
		faces = append(faces, []int{j, j + 2, j + 3, j + 1})
	}
	m := newMesh(name, verts, faces, 2*len(faces), color)
	m.DoubleSided = true
	return m
}

// anyPerpendicular returns some vector perpendicular to v.
func anyPerpendicular(v Quaternion) Quaternion {
	if math.Abs(v.X) < math.Abs(v.Y) {
		return v.Cross(Vec(1, 0, 0))
	}
	return v.Cross(Vec(0, 1, 0))
}
