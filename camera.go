package qraft

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// DefaultFieldOfView is the horizontal field of view, in degrees, of NewCamera.
	DefaultFieldOfView = 60.0
	// MinFieldOfView and MaxFieldOfView bound SetFieldOfView.
	MinFieldOfView = 1.0
	MaxFieldOfView = 179.0
)

// Camera is the viewpoint the renderer projects from. It is not part of the
// scene tree.
//
// The orientation's axes are, in order, screen right, screen down and the
// view direction. An identity orientation therefore looks along +z with +y
// drawn toward the bottom of the screen.
type Camera struct {
	// Position is the eye point in world coordinates.
	Position Quaternion
	// Orientation is the camera's basis in world coordinates.
	Orientation Frame
	// FieldOfView is the horizontal field of view in degrees.
	FieldOfView float64

	fovTween  *gween.Tween
	rotations int
}

// NewCamera creates a camera at position with the identity orientation.
// A non-positive fov selects DefaultFieldOfView.
func NewCamera(position Quaternion, fov float64) *Camera {
	c := &Camera{Position: position.Pure(), Orientation: IdentityFrame()}
	if fov <= 0 {
		fov = DefaultFieldOfView
	}
	c.SetFieldOfView(fov)
	return c
}

// FocalLength returns 1 / tan(fov/2), the distance from the eye to a
// projection plane two units wide.
func (c *Camera) FocalLength() float64 {
	return 1 / math.Tan(c.FieldOfView*math.Pi/180/2)
}

// FocalOffset returns the focal length along the view direction.
func (c *Camera) FocalOffset() Quaternion {
	return c.Orientation.Z().Scale(c.FocalLength())
}

// SetFieldOfView sets the field of view, clamped to
// [MinFieldOfView, MaxFieldOfView], and cancels any running zoom.
func (c *Camera) SetFieldOfView(deg float64) {
	c.FieldOfView = math.Max(MinFieldOfView, math.Min(MaxFieldOfView, deg))
	c.fovTween = nil
}

// ZoomTo animates the field of view to deg over duration seconds.
// Advance it with Update.
func (c *Camera) ZoomTo(deg float64, duration float32, easeFn ease.TweenFunc) {
	deg = math.Max(MinFieldOfView, math.Min(MaxFieldOfView, deg))
	c.fovTween = gween.New(float32(c.FieldOfView), float32(deg), duration, easeFn)
}

// Zooming reports whether a ZoomTo animation is in progress.
func (c *Camera) Zooming() bool {
	return c.fovTween != nil
}

// Update advances the zoom animation by dt seconds. Called from Scene.Update.
func (c *Camera) Update(dt float32) {
	if c.fovTween == nil {
		return
	}
	v, done := c.fovTween.Update(dt)
	c.FieldOfView = float64(v)
	if done {
		c.fovTween = nil
	}
}

// Translate moves the camera by offset in world coordinates.
func (c *Camera) Translate(offset Quaternion) {
	c.Position = c.Position.Add(offset.Pure())
}

// TranslateRelative moves the camera by offset given along its own axes
// (right, down, forward).
func (c *Camera) TranslateRelative(offset Quaternion) {
	c.Position = c.Position.Add(offset.Morph(c.Orientation))
}

// Rotate turns the camera about a world-space axis. The orientation is
// re-orthonormalized every RenormalizeEvery calls.
func (c *Camera) Rotate(axis Quaternion, angle float64) {
	c.Orientation.Rotate(axis, angle)
	c.rotations++
	if c.rotations%RenormalizeEvery == 0 {
		c.Orientation = c.Orientation.Orthonormalized()
	}
}

// Yaw turns the camera about its own down axis.
func (c *Camera) Yaw(angle float64) { c.Rotate(c.Orientation.Y(), angle) }

// Pitch turns the camera about its own right axis.
func (c *Camera) Pitch(angle float64) { c.Rotate(c.Orientation.X(), angle) }

// Roll turns the camera about its view direction.
func (c *Camera) Roll(angle float64) { c.Rotate(c.Orientation.Z(), angle) }

// LookAt points the camera at target. up is the world direction that should
// appear toward the top of the screen. It returns ErrSingularFrame, leaving
// the orientation unchanged, when target coincides with the camera or the
// view direction is parallel to up.
func (c *Camera) LookAt(target, up Quaternion) error {
	z := target.Pure().Sub(c.Position).Normalized()
	x := up.Pure().Neg().Cross(z).Normalized()
	if z.Norm() == 0 || x.Norm() == 0 {
		return ErrSingularFrame
	}
	c.Orientation = Frame{x, z.Cross(x), z}
	return nil
}
