package qraft

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeInput is a scripted InputSource.
type fakeInput struct {
	held   map[Control]bool
	dx, dy float64
	wheel  float64
}

func (f *fakeInput) Held(c Control) bool { return f.held[c] }

func (f *fakeInput) MouseDelta() (float64, float64) { return f.dx, f.dy }

func (f *fakeInput) Wheel() float64 { return f.wheel }

func TestFlyControllerMoves(t *testing.T) {
	tests := []struct {
		name string
		held []Control
		want Quaternion
	}{
		{"forward", []Control{ControlForward}, Vec(0, 0, 3)},
		{"back", []Control{ControlBack}, Vec(0, 0, -3)},
		{"left", []Control{ControlLeft}, Vec(-3, 0, 0)},
		{"right", []Control{ControlRight}, Vec(3, 0, 0)},
		{"up", []Control{ControlUp}, Vec(0, -3, 0)},
		{"down", []Control{ControlDown}, Vec(0, 3, 0)},
		{"forward and back cancel", []Control{ControlForward, ControlBack}, Vec(0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &fakeInput{held: map[Control]bool{}}
			for _, c := range tt.held {
				in.held[c] = true
			}
			cam := NewCamera(Vec(0, 0, 0), 60)
			NewFlyController(cam, in).Update(1)
			assertQuat(t, "position", cam.Position, tt.want)
		})
	}
}

func TestFlyControllerMovesAlongCameraAxes(t *testing.T) {
	in := &fakeInput{held: map[Control]bool{ControlForward: true}}
	cam := NewCamera(Vec(0, 0, 0), 60)
	cam.Yaw(math.Pi / 2)
	NewFlyController(cam, in).Update(0.5)
	assertQuat(t, "position", cam.Position, Vec(1.5, 0, 0))
}

func TestFlyControllerRoll(t *testing.T) {
	in := &fakeInput{held: map[Control]bool{ControlRollRight: true}}
	cam := NewCamera(Vec(0, 0, 0), 60)
	fc := NewFlyController(cam, in)
	fc.RollSpeed = math.Pi / 2
	fc.Update(1)
	assertQuat(t, "right axis", cam.Orientation.X(), Vec(0, 1, 0))
}

func TestFlyControllerMouse(t *testing.T) {
	in := &fakeInput{held: map[Control]bool{}}
	cam := NewCamera(Vec(0, 0, 0), 60)
	fc := NewFlyController(cam, in)
	fc.MouseSensitivity = math.Pi / 2 / 100

	in.dx = 100
	fc.Update(1)
	assertQuat(t, "after yaw", cam.Orientation.Z(), Vec(1, 0, 0))

	cam.Orientation = IdentityFrame()
	in.dx, in.dy = 0, -100
	fc.Update(1)
	// Moving the mouse up tilts the view up, toward -y.
	assertQuat(t, "after pitch", cam.Orientation.Z(), Vec(0, -1, 0))
}

func TestFlyControllerWheelZooms(t *testing.T) {
	in := &fakeInput{wheel: 2}
	cam := NewCamera(Vec(0, 0, 0), 60)
	fc := NewFlyController(cam, in)
	fc.ZoomStep = 5
	fc.Update(1)
	assertNear(t, "fov", cam.FieldOfView, 50)
	if fc.Finished() {
		t.Error("controller should never finish")
	}
}

func TestDefaultBindingsCoverEveryControl(t *testing.T) {
	b := DefaultBindings()
	for c := Control(0); c < numControls; c++ {
		if len(b[c]) == 0 {
			t.Errorf("control %d has no keys", c)
		}
	}
	if b[ControlForward][0] != ebiten.KeyW {
		t.Errorf("forward = %v, want W", b[ControlForward])
	}
}

func TestNewEbitenInputBindings(t *testing.T) {
	in := NewEbitenInput(nil)
	if len(in.bindings[ControlDown]) != 2 {
		t.Errorf("down keys = %v, want both shifts", in.bindings[ControlDown])
	}

	custom := NewEbitenInput(map[Control][]ebiten.Key{ControlForward: {ebiten.KeyArrowUp}})
	if len(custom.bindings[ControlForward]) != 1 || custom.bindings[ControlForward][0] != ebiten.KeyArrowUp {
		t.Errorf("forward = %v, want arrow up", custom.bindings[ControlForward])
	}
	if len(custom.bindings[ControlBack]) != 0 {
		t.Error("unbound control picked up keys")
	}
	if custom.Held(numControls) {
		t.Error("Held out of range should be false")
	}
}
