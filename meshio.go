package qraft

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// groupDoc is the interchange form of a Group.
type groupDoc struct {
	Type        string      `json:"type" yaml:"type"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Position    []float64   `json:"position" yaml:"position,flow"`
	UnitVectors [][]float64 `json:"unit_vectors" yaml:"unit_vectors,flow"`
	Hidden      bool        `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Shapes      []meshDoc   `json:"shapes" yaml:"shapes"`
	Subgroups   []groupDoc  `json:"subgroups" yaml:"subgroups"`
}

// meshDoc is the interchange form of a Mesh. Position and unit vectors are
// optional; a mesh without them sits at its group's origin.
type meshDoc struct {
	Type        string      `json:"type" yaml:"type"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Position    []float64   `json:"position,omitempty" yaml:"position,omitempty,flow"`
	UnitVectors [][]float64 `json:"unit_vectors,omitempty" yaml:"unit_vectors,omitempty,flow"`
	Vertices    [][]float64 `json:"vertices" yaml:"vertices,flow"`
	Faces       [][]int     `json:"faces" yaml:"faces,flow"`
	Color       string      `json:"color,omitempty" yaml:"color,omitempty"`
	DoubleSided bool        `json:"double_sided,omitempty" yaml:"double_sided,omitempty"`
	Hidden      bool        `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// DecodeGroupJSON reads one group document from r.
func DecodeGroupJSON(r io.Reader) (*Group, error) {
	var doc groupDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode group json: %w", err)
	}
	return groupFromDoc(&doc, "root")
}

// DecodeGroupYAML reads one group document from r.
func DecodeGroupYAML(r io.Reader) (*Group, error) {
	var doc groupDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode group yaml: %w", err)
	}
	return groupFromDoc(&doc, "root")
}

// EncodeGroupJSON writes g and its subtree to w as indented JSON.
//
// A group's meshes and subgroups are stored in separate lists, so decoding
// restores subgroups ahead of meshes. Relative order within each kind is
// kept.
func EncodeGroupJSON(w io.Writer, g *Group) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(docFromGroup(g)); err != nil {
		return fmt.Errorf("encode group json: %w", err)
	}
	return nil
}

// EncodeGroupYAML writes g and its subtree to w as YAML. Child order is
// normalized as described for EncodeGroupJSON.
func EncodeGroupYAML(w io.Writer, g *Group) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docFromGroup(g)); err != nil {
		return fmt.Errorf("encode group yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode group yaml: %w", err)
	}
	return nil
}

// LoadGroupFile decodes a group from a .json, .yaml or .yml file.
func LoadGroupFile(path string) (*Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load group: %w", err)
	}
	var g *Group
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		g, err = DecodeGroupJSON(bytes.NewReader(data))
	case ".yaml", ".yml":
		g, err = DecodeGroupYAML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("load group %s: unsupported extension", path)
	}
	if err != nil {
		return nil, fmt.Errorf("load group %s: %w", path, err)
	}
	return g, nil
}

// SaveGroupFile encodes g to path, choosing JSON or YAML by extension.
func SaveGroupFile(path string, g *Group) error {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = EncodeGroupJSON(&buf, g)
	case ".yaml", ".yml":
		err = EncodeGroupYAML(&buf, g)
	default:
		return fmt.Errorf("save group %s: unsupported extension", path)
	}
	if err != nil {
		return fmt.Errorf("save group %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save group: %w", err)
	}
	return nil
}

// --- document conversion ---

// groupFromDoc builds a group from its document. Subgroups are added before
// shapes.
func groupFromDoc(d *groupDoc, where string) (*Group, error) {
	if d.Type != "" && d.Type != "group" {
		return nil, fmt.Errorf("%s: type %q, want \"group\": %w", where, d.Type, ErrMalformedGeometry)
	}
	g := NewGroup(d.Name)
	g.Hidden = d.Hidden
	if err := applyTransform(&g.Entity, d.Position, d.UnitVectors, where); err != nil {
		return nil, err
	}
	for i := range d.Subgroups {
		sub, err := groupFromDoc(&d.Subgroups[i], fmt.Sprintf("%s.subgroups[%d]", where, i))
		if err != nil {
			return nil, err
		}
		g.AddChild(sub)
	}
	for i := range d.Shapes {
		m, err := meshFromDoc(&d.Shapes[i], fmt.Sprintf("%s.shapes[%d]", where, i))
		if err != nil {
			return nil, err
		}
		g.AddChild(m)
	}
	return g, nil
}

func meshFromDoc(d *meshDoc, where string) (*Mesh, error) {
	if d.Type != "" && d.Type != "mesh" {
		return nil, fmt.Errorf("%s: type %q, want \"mesh\": %w", where, d.Type, ErrMalformedGeometry)
	}
	verts := make([]Quaternion, len(d.Vertices))
	for i, v := range d.Vertices {
		q, err := docVector(v)
		if err != nil {
			return nil, fmt.Errorf("%s: vertex %d: %w", where, i, err)
		}
		verts[i] = q
	}
	c := DefaultMeshColor
	if d.Color != "" {
		var err error
		if c, err = ParseHexColor(d.Color); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", where, ErrMalformedGeometry, err)
		}
	}
	m, err := NewMesh(d.Name, verts, d.Faces, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}
	m.DoubleSided = d.DoubleSided
	m.Hidden = d.Hidden
	if err := applyTransform(&m.Entity, d.Position, d.UnitVectors, where); err != nil {
		return nil, err
	}
	return m, nil
}

// applyTransform sets e's position and orientation from document fields.
// Missing fields keep the origin and identity orientation.
func applyTransform(e *Entity, pos []float64, axes [][]float64, where string) error {
	if pos != nil {
		q, err := docVector(pos)
		if err != nil {
			return fmt.Errorf("%s: position: %w", where, err)
		}
		e.Position = q
	}
	if axes != nil {
		if len(axes) != 3 {
			return fmt.Errorf("%s: unit_vectors: want 3 vectors, got %d: %w", where, len(axes), ErrMalformedGeometry)
		}
		var f Frame
		for i, a := range axes {
			q, err := docVector(a)
			if err != nil {
				return fmt.Errorf("%s: unit_vectors[%d]: %w", where, i, err)
			}
			f[i] = q
		}
		e.Orientation = f
	}
	return nil
}

// docVector converts a 3-component list to a pure quaternion.
func docVector(v []float64) (Quaternion, error) {
	if len(v) != 3 {
		return Quaternion{}, fmt.Errorf("want 3 components, got %d: %w", len(v), ErrMalformedGeometry)
	}
	return Vec(v[0], v[1], v[2]), nil
}

func vectorDoc(q Quaternion) []float64 {
	return []float64{q.X, q.Y, q.Z}
}

func frameDoc(f Frame) [][]float64 {
	return [][]float64{vectorDoc(f[0]), vectorDoc(f[1]), vectorDoc(f[2])}
}

func docFromGroup(g *Group) groupDoc {
	d := groupDoc{
		Type:        "group",
		Name:        g.Name,
		Position:    vectorDoc(g.Position),
		UnitVectors: frameDoc(g.Orientation),
		Hidden:      g.Hidden,
		Shapes:      []meshDoc{},
		Subgroups:   []groupDoc{},
	}
	for _, c := range g.children {
		switch n := c.(type) {
		case *Group:
			d.Subgroups = append(d.Subgroups, docFromGroup(n))
		case *Mesh:
			d.Shapes = append(d.Shapes, docFromMesh(n))
		}
	}
	return d
}

func docFromMesh(m *Mesh) meshDoc {
	d := meshDoc{
		Type:        "mesh",
		Name:        m.Name,
		Vertices:    make([][]float64, len(m.vertices)),
		Faces:       make([][]int, len(m.faces)),
		Color:       m.Color.Hex(),
		DoubleSided: m.DoubleSided,
		Hidden:      m.Hidden,
	}
	for i, v := range m.vertices {
		d.Vertices[i] = vectorDoc(v)
	}
	for i, f := range m.faces {
		d.Faces[i] = append([]int(nil), f...)
	}
	if m.Position != (Quaternion{}) {
		d.Position = vectorDoc(m.Position)
	}
	if m.Orientation != IdentityFrame() {
		d.UnitVectors = frameDoc(m.Orientation)
	}
	return d
}
