package qraft

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Camera == nil || s.Renderer == nil {
		t.Fatal("NewScene left camera or renderer nil")
	}
	assertQuat(t, "camera", s.Camera.Position, Vec(0, 0, -5))
	assertQuat(t, "light", s.Light, DefaultLight)
	if s.Renderer.Config != DefaultRenderConfig() {
		t.Errorf("renderer config = %+v", s.Renderer.Config)
	}
	if len(s.Roots()) != 0 || s.Frame() != 0 {
		t.Error("new scene should be empty")
	}
}

func TestSceneAddRemoveRoot(t *testing.T) {
	s := NewScene()
	a, b := testMesh("a"), NewGroup("b")
	s.AddRoot(a)
	s.AddRoot(b)
	s.AddRoot(a)
	if len(s.Roots()) != 2 {
		t.Fatalf("roots = %d, want 2", len(s.Roots()))
	}
	if !s.RemoveRoot(a) {
		t.Error("RemoveRoot(a) = false")
	}
	if s.RemoveRoot(a) {
		t.Error("second RemoveRoot(a) = true")
	}
	if len(s.Roots()) != 1 || s.Roots()[0] != Node(b) {
		t.Errorf("roots = %v, want [b]", s.Roots())
	}
}

func TestSceneAddRootPanics(t *testing.T) {
	tests := []struct {
		name string
		node func() Node
	}{
		{"nil", func() Node { return nil }},
		{"has parent", func() Node {
			m := testMesh("child")
			NewGroup("parent", m)
			return m
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewScene().AddRoot(tt.node())
		})
	}
}

func TestSceneUpdateOrder(t *testing.T) {
	s := NewScene()
	m := testMesh("m")
	s.AddRoot(m)
	s.Camera.ZoomTo(90, 1, ease.Linear)

	var seen []string
	s.Animate(&probe{onUpdate: func() {
		seen = append(seen, "anim")
		if s.Camera.FieldOfView == DefaultFieldOfView {
			t.Error("camera zoom should advance before animations")
		}
	}})
	s.SetUpdateFunc(func(dt float32) {
		seen = append(seen, "update")
		if dt != 0.25 {
			t.Errorf("dt = %v, want 0.25", dt)
		}
	})
	s.update(0.25)

	if len(seen) != 2 || seen[0] != "anim" || seen[1] != "update" {
		t.Errorf("order = %v, want [anim update]", seen)
	}
}

// probe is an Animation that finishes after a fixed number of updates.
type probe struct {
	onUpdate func()
	left     int
	updates  int
}

func (p *probe) Update(float32) {
	p.updates++
	if p.left > 0 {
		p.left--
	}
	if p.onUpdate != nil {
		p.onUpdate()
	}
}

func (p *probe) Finished() bool { return p.left == 0 }

func TestSceneFinishedAnimationsPruned(t *testing.T) {
	s := NewScene()
	short := &probe{left: 1}
	long := &probe{left: 3}
	s.Animate(short)
	s.Animate(long)

	for i := 0; i < 5; i++ {
		s.update(0.1)
	}
	if short.updates != 1 {
		t.Errorf("short updates = %d, want 1", short.updates)
	}
	if long.updates != 3 {
		t.Errorf("long updates = %d, want 3", long.updates)
	}
	if len(s.anims) != 0 {
		t.Errorf("anims left = %d, want 0", len(s.anims))
	}
}

func TestSceneDrawClearsAndCounts(t *testing.T) {
	s := NewScene()
	s.ClearColor = Color{0, 0, 1, 1}
	s.Camera.Position = Vec(0, 0, -3)
	s.Light = headOn
	cube := testMesh("cube")
	cube.Color = red
	s.AddRoot(cube)

	surf := NewImageSurface(80, 60)
	st := s.Draw(surf)
	if st.Drawn != 2 {
		t.Errorf("Drawn = %d, want 2", st.Drawn)
	}
	if s.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", s.Frame())
	}
	img := surf.Image()
	if got := img.RGBAAt(1, 1); got.B != 255 || got.R != 0 {
		t.Errorf("corner = %v, want clear color", got)
	}
	if got := img.RGBAAt(40, 30); got.R != 255 || got.B != 0 {
		t.Errorf("center = %v, want cube color", got)
	}
}

type storeSpy struct{ events []FrameEvent }

func (s *storeSpy) EmitEvent(e FrameEvent) { s.events = append(s.events, e) }

func TestSceneEntityStoreReceivesFrames(t *testing.T) {
	s := NewScene()
	spy := &storeSpy{}
	s.SetEntityStore(spy)
	s.AddRoot(testMesh("m"))

	surf := newRecordingSurface(100, 100)
	s.Draw(surf)
	s.Draw(surf)
	if len(spy.events) != 2 {
		t.Fatalf("events = %d, want 2", len(spy.events))
	}
	if spy.events[1].Frame != 2 {
		t.Errorf("second event frame = %d, want 2", spy.events[1].Frame)
	}
	if spy.events[0].Stats.Instances != 1 {
		t.Errorf("event stats = %+v", spy.events[0].Stats)
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug flags not set")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug flags not cleared")
	}
}

func TestSceneSpinAnimation(t *testing.T) {
	s := NewScene()
	m := testMesh("m")
	s.AddRoot(m)
	spin := NewSpin(&m.Entity, Vec(0, 0, 1), math.Pi)
	s.Animate(spin)
	s.update(0.5)
	assertQuat(t, "x axis", m.Orientation.X(), Vec(0, 1, 0))

	spin.Stopped = true
	s.update(0.5)
	if len(s.anims) != 0 {
		t.Error("stopped spin should be pruned")
	}
	assertQuat(t, "x axis after stop", m.Orientation.X(), Vec(0, 1, 0))
}
