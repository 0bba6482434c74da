package qraft

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, a FrameEvent is forwarded after every Draw.
type EntityStore interface {
	EmitEvent(event FrameEvent)
}

// FrameEvent carries one frame's render results to the ECS bridge.
type FrameEvent struct {
	Frame    uint64
	Stats    FrameStats
	Duration time.Duration
}

// DefaultLight is the world-space light direction given to new scenes:
// travelling down and away from a camera at the default orientation.
var DefaultLight = Vec(0.4, 1, 0.8)

// Scene owns the root nodes, the camera and the renderer used to draw them.
type Scene struct {
	Camera *Camera
	// Light is the direction light travels, in world coordinates.
	Light      Quaternion
	ClearColor Color
	Renderer   *Renderer

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	roots    []Node
	anims    []Animation
	updateFn func(dt float32)
	store    EntityStore
	debug    bool
	frame    uint64

	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates an empty scene with a camera five units behind the origin
// looking along +z.
func NewScene() *Scene {
	return &Scene{
		Camera:        NewCamera(Vec(0, 0, -5), DefaultFieldOfView),
		Light:         DefaultLight,
		ClearColor:    Color{0, 0, 0, 1},
		Renderer:      NewRenderer(DefaultRenderConfig()),
		ScreenshotDir: "screenshots",
	}
}

// AddRoot appends n to the scene's root list. Adding a node that is already
// a root is a no-op. Panics if n is nil or has a parent group.
func (s *Scene) AddRoot(n Node) {
	if n == nil {
		panic("qraft: cannot add nil root")
	}
	if n.Parent() != nil {
		panic("qraft: root node must not have a parent")
	}
	for _, r := range s.roots {
		if r == n {
			return
		}
	}
	s.roots = append(s.roots, n)
}

// RemoveRoot removes n from the root list and reports whether it was there.
func (s *Scene) RemoveRoot(n Node) bool {
	for i, r := range s.roots {
		if r == n {
			copy(s.roots[i:], s.roots[i+1:])
			s.roots[len(s.roots)-1] = nil
			s.roots = s.roots[:len(s.roots)-1]
			return true
		}
	}
	return false
}

// Roots returns the root list in draw order. The returned slice MUST NOT be mutated.
func (s *Scene) Roots() []Node {
	return s.roots
}

// SetUpdateFunc registers fn to run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func(dt float32)) {
	s.updateFn = fn
}

// Animate registers a to be advanced by every Update until it reports
// Finished.
func (s *Scene) Animate(a Animation) {
	s.anims = append(s.anims, a)
}

// Update advances the scene by one tick of 1/TPS seconds.
func (s *Scene) Update() {
	s.update(float32(1.0 / float64(ebiten.TPS())))
}

// update advances the test runner, the camera zoom, registered animations and
// the user update function, in that order.
func (s *Scene) update(dt float32) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.Camera.Update(dt)

	live := s.anims[:0]
	for _, a := range s.anims {
		a.Update(dt)
		if !a.Finished() {
			live = append(live, a)
		}
	}
	clear(s.anims[len(live):])
	s.anims = live

	if s.updateFn != nil {
		s.updateFn(dt)
	}
}

// Draw clears surface (when it supports clearing) and renders the scene onto
// it. Queued screenshots are captured afterwards.
func (s *Scene) Draw(surface Surface) FrameStats {
	if c, ok := surface.(interface{ Clear(Color) }); ok {
		c.Clear(s.ClearColor)
	}

	t0 := time.Now()
	stats := s.Renderer.Render(surface, s.roots, s.Camera, s.Light)
	elapsed := time.Since(t0)
	s.frame++

	if s.debug {
		s.debugLog(stats, elapsed)
	}
	if s.store != nil {
		s.store.EmitEvent(FrameEvent{Frame: s.frame, Stats: stats, Duration: elapsed})
	}
	s.flushScreenshots(surface)
	return stats
}

// Frame returns the number of frames drawn so far.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are printed and per-frame stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
