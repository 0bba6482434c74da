package qraft

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation is anything Scene.Update can advance once per tick.
type Animation interface {
	Update(dt float32)
	Finished() bool
}

// TweenGroup animates up to 4 float64 fields simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenColor,
// TweenFieldOfView) and either register it with Scene.Animate or call
// Update(dt) each frame yourself.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Finished reports whether every tween in the group has completed.
func (g *TweenGroup) Finished() bool { return g.Done }

// TweenPosition creates a TweenGroup that moves e to the point to (parent
// coordinates) over the specified duration using the easing function.
func TweenPosition(e *Entity, to Quaternion, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3}
	g.tweens[0] = gween.New(float32(e.Position.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(e.Position.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(e.Position.Z), float32(to.Z), duration, fn)
	g.fields[0] = &e.Position.X
	g.fields[1] = &e.Position.Y
	g.fields[2] = &e.Position.Z
	return g
}

// TweenColor creates a TweenGroup that animates all four components of
// m.Color to the target color over the specified duration.
func TweenColor(m *Mesh, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(m.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(m.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(m.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(m.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &m.Color.R
	g.fields[1] = &m.Color.G
	g.fields[2] = &m.Color.B
	g.fields[3] = &m.Color.A
	return g
}

// TweenFieldOfView creates a TweenGroup that animates cam.FieldOfView to deg,
// clamped to [MinFieldOfView, MaxFieldOfView].
func TweenFieldOfView(cam *Camera, deg float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	deg = math.Max(MinFieldOfView, math.Min(MaxFieldOfView, deg))
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(cam.FieldOfView), float32(deg), duration, fn)
	g.fields[0] = &cam.FieldOfView
	return g
}

// Spin rotates an entity at a constant angular speed. It never finishes on
// its own; set Stopped to end it.
type Spin struct {
	Target *Entity
	// Axis is in the target's parent coordinates.
	Axis Quaternion
	// Speed is in radians per second.
	Speed   float64
	Stopped bool
}

// NewSpin creates a Spin turning e about axis at speed radians per second.
func NewSpin(e *Entity, axis Quaternion, speed float64) *Spin {
	return &Spin{Target: e, Axis: axis, Speed: speed}
}

// Update rotates the target by Speed·dt.
func (s *Spin) Update(dt float32) {
	if s.Stopped || s.Speed == 0 {
		return
	}
	s.Target.Rotate(s.Axis, s.Speed*float64(dt))
}

// Finished reports whether the spin has been stopped.
func (s *Spin) Finished() bool { return s.Stopped }
