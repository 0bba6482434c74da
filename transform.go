package qraft

// Instance is a mesh resolved into world space: the mesh data plus the world
// position and orientation of its node. Instances are produced fresh by
// every Unpack and hold no references back into the traversal.
type Instance struct {
	Mesh     *Mesh
	Position Quaternion
	Frame    Frame
}

// WorldVertex returns mesh vertex i in world coordinates.
func (in Instance) WorldVertex(i int) Quaternion {
	return in.Position.Add(in.Mesh.vertices[i].Morph(in.Frame))
}

// WorldVertices appends every mesh vertex, in world coordinates, to dst.
func (in Instance) WorldVertices(dst []Quaternion) []Quaternion {
	for _, v := range in.Mesh.vertices {
		dst = append(dst, in.Position.Add(v.Morph(in.Frame)))
	}
	return dst
}

// inherit composes a local transform with its parent's resolved world
// transform:
//
//	worldPos   = parentPos + localPos.Morph(parentFrame)
//	worldFrame = localFrame.Morph(parentFrame)
func inherit(e *Entity, parentPos Quaternion, parentFrame Frame) (Quaternion, Frame) {
	return parentPos.Add(e.Position.Morph(parentFrame)), e.Orientation.Morph(parentFrame)
}

// Unpack flattens the given roots into world-space mesh instances, treating
// each root as a child of the world origin. Nodes are not modified.
func Unpack(roots ...Node) []Instance {
	return UnpackInto(nil, roots...)
}

// UnpackInto is Unpack appending into dst, so a per-frame caller can reuse
// one buffer.
func UnpackInto(dst []Instance, roots ...Node) []Instance {
	world := IdentityFrame()
	for _, r := range roots {
		dst = r.unpack(dst, Quaternion{}, world)
	}
	return dst
}

// Unpack resolves g and its subtree against the given parent transform.
func (g *Group) Unpack(parentPos Quaternion, parentFrame Frame) []Instance {
	return g.unpack(nil, parentPos, parentFrame)
}

func (g *Group) unpack(dst []Instance, parentPos Quaternion, parentFrame Frame) []Instance {
	if g.Hidden {
		return dst
	}
	pos, frame := inherit(&g.Entity, parentPos, parentFrame)
	for _, c := range g.children {
		dst = c.unpack(dst, pos, frame)
	}
	return dst
}

func (m *Mesh) unpack(dst []Instance, parentPos Quaternion, parentFrame Frame) []Instance {
	if m.Hidden {
		return dst
	}
	pos, frame := inherit(&m.Entity, parentPos, parentFrame)
	return append(dst, Instance{Mesh: m, Position: pos, Frame: frame})
}

// WorldTransform resolves n's world position and orientation by walking up
// its ancestors. Nothing is cached.
func WorldTransform(n Node) (Quaternion, Frame) {
	var chain []*Entity
	for e := n.Base(); e != nil; {
		chain = append(chain, e)
		if e.parent == nil {
			break
		}
		e = &e.parent.Entity
	}
	pos, frame := Quaternion{}, IdentityFrame()
	for i := len(chain) - 1; i >= 0; i-- {
		pos, frame = inherit(chain[i], pos, frame)
	}
	return pos, frame
}

// LocalToWorld converts a point in n's local coordinates to world space.
func LocalToWorld(n Node, p Quaternion) Quaternion {
	pos, frame := WorldTransform(n)
	return pos.Add(p.Morph(frame))
}

// WorldToLocal converts a world-space point into n's local coordinates.
func WorldToLocal(n Node, p Quaternion) (Quaternion, error) {
	pos, frame := WorldTransform(n)
	return p.Sub(pos).Unmorph(frame)
}
