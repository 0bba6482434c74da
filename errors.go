package qraft

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when dividing by a quaternion of zero norm
	// or normalizing a zero total (mass, weight).
	ErrDivisionByZero = errors.New("qraft: division by zero")

	// ErrSingularFrame is returned by Unmorph when the frame's axes are
	// linearly dependent (|det| below SingularEpsilon).
	ErrSingularFrame = errors.New("qraft: singular frame")

	// ErrMalformedGeometry is returned when a mesh is declared with a face of
	// fewer than three indices or an index that names no vertex.
	ErrMalformedGeometry = errors.New("qraft: malformed geometry")
)

// GeometryError describes a rejected face. It wraps ErrMalformedGeometry.
type GeometryError struct {
	Mesh   string
	Face   int
	Index  int // offending vertex index, or ShortFace
	Reason string
}

// ShortFace is the GeometryError.Index of a face with fewer than three indices.
const ShortFace = -1

const (
	reasonShortFace  = "face has fewer than 3 vertices"
	reasonIndexRange = "vertex index out of range"
)

func (e *GeometryError) Error() string {
	if e.Reason == reasonShortFace {
		return fmt.Sprintf("qraft: mesh %q face %d: %s", e.Mesh, e.Face, e.Reason)
	}
	return fmt.Sprintf("qraft: mesh %q face %d index %d: %s", e.Mesh, e.Face, e.Index, e.Reason)
}

func (e *GeometryError) Unwrap() error { return ErrMalformedGeometry }
