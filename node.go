package qraft

// RenormalizeEvery is how many Entity.Rotate calls may accumulate before the
// orientation is re-orthonormalized to cancel floating-point drift.
const RenormalizeEvery = 64

// Node is an element of the scene tree: a *Group or a *Mesh. The set of
// implementations is closed; world transforms are resolved by Unpack.
type Node interface {
	// Base returns the node's local transform and identity.
	Base() *Entity
	// Parent returns the owning group, or nil for a root.
	Parent() *Group

	unpack(dst []Instance, parentPos Quaternion, parentFrame Frame) []Instance
}

// Entity is the local transform shared by every node: a position (pure
// quaternion) and an orientation, both relative to the parent.
type Entity struct {
	Name string

	// Position is the node's origin in parent coordinates.
	Position Quaternion
	// Orientation holds the node's axes in parent coordinates.
	Orientation Frame

	// Hidden nodes, and their subtrees, are skipped by Unpack.
	Hidden bool

	parent    *Group
	rotations int
}

func newEntity(name string) Entity {
	return Entity{Name: name, Orientation: IdentityFrame()}
}

// Base returns e. It lets embedding types satisfy Node.
func (e *Entity) Base() *Entity { return e }

// Parent returns the owning group, or nil.
func (e *Entity) Parent() *Group { return e.parent }

// Translate moves the node by offset, given in parent coordinates.
func (e *Entity) Translate(offset Quaternion) {
	e.Position = e.Position.Add(offset.Pure())
}

// TranslateRelative moves the node by offset, given along its own axes.
func (e *Entity) TranslateRelative(offset Quaternion) {
	e.Position = e.Position.Add(offset.Morph(e.Orientation))
}

// Rotate turns the node's orientation about axis (parent coordinates) by angle
// radians. Every RenormalizeEvery calls the frame is re-orthonormalized.
func (e *Entity) Rotate(axis Quaternion, angle float64) {
	e.Orientation.Rotate(axis, angle)
	e.rotations++
	if e.rotations%RenormalizeEvery == 0 {
		e.Orientation = e.Orientation.Orthonormalized()
	}
}

// RotateLocal turns the node about one of its own axes, given in local
// coordinates.
func (e *Entity) RotateLocal(axis Quaternion, angle float64) {
	e.Rotate(axis.Morph(e.Orientation), angle)
}

// RemoveFromParent detaches the node from its parent.
// No-op if the node has no parent.
func (e *Entity) RemoveFromParent() {
	if e.parent == nil {
		return
	}
	e.parent.removeChildByBase(e)
	e.parent = nil
}

// --- Group ---

// Group is a container node. It exclusively owns an ordered list of children.
type Group struct {
	Entity
	children []Node
}

// NewGroup creates a group at the origin with the identity orientation and
// adds children in order.
func NewGroup(name string, children ...Node) *Group {
	g := &Group{Entity: newEntity(name)}
	for _, c := range children {
		g.AddChild(c)
	}
	return g
}

// AddChild appends child to this group's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this group (cycle).
func (g *Group) AddChild(child Node) {
	g.AddChildAt(child, len(g.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (g *Group) AddChildAt(child Node, index int) {
	if child == nil {
		panic("qraft: cannot add nil child")
	}
	if cg, ok := child.(*Group); ok && isAncestor(cg, g) {
		panic("qraft: adding child would create a cycle")
	}
	b := child.Base()
	if b.parent == g {
		g.removeChildByBase(b)
	} else if b.parent != nil {
		b.RemoveFromParent()
	}
	if index < 0 || index > len(g.children) {
		panic("qraft: child index out of range")
	}
	b.parent = g
	g.children = append(g.children, nil)
	copy(g.children[index+1:], g.children[index:])
	g.children[index] = child

	if globalDebug {
		debugCheckTreeDepth(g)
		debugCheckChildCount(g)
	}
}

// RemoveChild detaches child from this group.
// Panics if child.Parent() != g.
func (g *Group) RemoveChild(child Node) {
	b := child.Base()
	if b.parent != g {
		panic("qraft: child's parent is not this group")
	}
	g.removeChildByBase(b)
	b.parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (g *Group) RemoveChildAt(index int) Node {
	if index < 0 || index >= len(g.children) {
		panic("qraft: child index out of range")
	}
	child := g.children[index]
	copy(g.children[index:], g.children[index+1:])
	g.children[len(g.children)-1] = nil
	g.children = g.children[:len(g.children)-1]
	child.Base().parent = nil
	return child
}

// RemoveChildren detaches all children from this group.
func (g *Group) RemoveChildren() {
	for i, c := range g.children {
		c.Base().parent = nil
		g.children[i] = nil
	}
	g.children = g.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (g *Group) Children() []Node {
	return g.children
}

// NumChildren returns the number of children.
func (g *Group) NumChildren() int {
	return len(g.children)
}

// ChildAt returns the child at the given index.
func (g *Group) ChildAt(index int) Node {
	return g.children[index]
}

// Walk calls fn for g and every descendant in depth-first order. Returning
// false from fn skips that node's children.
func (g *Group) Walk(fn func(Node) bool) {
	if !fn(g) {
		return
	}
	for _, c := range g.children {
		if cg, ok := c.(*Group); ok {
			cg.Walk(fn)
		} else {
			fn(c)
		}
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is g or one of g's ancestors.
func isAncestor(candidate, g *Group) bool {
	for p := g; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByBase removes the child whose Entity is b without clearing
// its parent pointer. Uses copy+nil to avoid retaining a dangling pointer in
// the backing array.
func (g *Group) removeChildByBase(b *Entity) {
	for i, c := range g.children {
		if c.Base() == b {
			copy(g.children[i:], g.children[i+1:])
			g.children[len(g.children)-1] = nil
			g.children = g.children[:len(g.children)-1]
			return
		}
	}
}
