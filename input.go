package qraft

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Control is a camera action that can be bound to keys.
type Control uint8

const (
	ControlForward Control = iota
	ControlBack
	ControlLeft
	ControlRight
	ControlUp
	ControlDown
	ControlRollLeft
	ControlRollRight
	numControls
)

// InputSource reports the player input a FlyController reacts to.
type InputSource interface {
	// Held reports whether a key bound to c is currently down.
	Held(c Control) bool
	// MouseDelta returns the pointer movement in pixels since the last call.
	MouseDelta() (dx, dy float64)
	// Wheel returns the vertical wheel movement since the last tick.
	Wheel() float64
}

// FlyController steers a camera like a free-flying craft: translation along
// the camera's own axes, roll about the view direction, pitch and yaw from
// the mouse, and field of view from the wheel.
type FlyController struct {
	Camera *Camera
	Input  InputSource

	// Speed is the translation speed in units per second.
	Speed float64
	// RollSpeed is in radians per second.
	RollSpeed float64
	// MouseSensitivity is radians of turn per pixel of pointer movement.
	MouseSensitivity float64
	// ZoomStep is degrees of field of view per wheel notch.
	ZoomStep float64
}

// NewFlyController creates a controller with the default speeds.
func NewFlyController(cam *Camera, in InputSource) *FlyController {
	return &FlyController{
		Camera:           cam,
		Input:            in,
		Speed:            3,
		RollSpeed:        3,
		MouseSensitivity: 1.0 / 600,
		ZoomStep:         1,
	}
}

// Update applies one tick of input. It implements Animation so it can be
// registered with Scene.Animate.
func (f *FlyController) Update(dt float32) {
	cam, in := f.Camera, f.Input
	step := f.Speed * float64(dt)

	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 {
		cam.Yaw(dx * f.MouseSensitivity)
		cam.Pitch(-dy * f.MouseSensitivity)
	}

	roll := f.RollSpeed * float64(dt)
	if in.Held(ControlRollLeft) {
		cam.Roll(-roll)
	}
	if in.Held(ControlRollRight) {
		cam.Roll(roll)
	}

	var move Quaternion
	if in.Held(ControlForward) {
		move.Z++
	}
	if in.Held(ControlBack) {
		move.Z--
	}
	if in.Held(ControlLeft) {
		move.X--
	}
	if in.Held(ControlRight) {
		move.X++
	}
	// +y is down on screen.
	if in.Held(ControlUp) {
		move.Y--
	}
	if in.Held(ControlDown) {
		move.Y++
	}
	if move != (Quaternion{}) {
		cam.TranslateRelative(move.Scale(step))
	}

	if w := in.Wheel(); w != 0 {
		cam.SetFieldOfView(cam.FieldOfView - w*f.ZoomStep)
	}
}

// Finished always reports false.
func (f *FlyController) Finished() bool { return false }

// --- ebiten input ---

// DefaultBindings maps every control to its keys: WASD to move, Space and
// Shift to rise and sink, Q and E to roll.
func DefaultBindings() map[Control][]ebiten.Key {
	return map[Control][]ebiten.Key{
		ControlForward:   {ebiten.KeyW},
		ControlBack:      {ebiten.KeyS},
		ControlLeft:      {ebiten.KeyA},
		ControlRight:     {ebiten.KeyD},
		ControlUp:        {ebiten.KeySpace},
		ControlDown:      {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
		ControlRollLeft:  {ebiten.KeyQ},
		ControlRollRight: {ebiten.KeyE},
	}
}

// EbitenInput reads the keyboard and mouse through ebiten. The right mouse
// button toggles pointer capture; the mouse only turns the camera while
// captured.
type EbitenInput struct {
	bindings [numControls][]ebiten.Key
	captured bool
	lastX    int
	lastY    int
}

// NewEbitenInput creates an input source with the given key bindings.
// A nil map selects DefaultBindings.
func NewEbitenInput(bindings map[Control][]ebiten.Key) *EbitenInput {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	in := &EbitenInput{}
	for c, keys := range bindings {
		if c < numControls {
			in.bindings[c] = append([]ebiten.Key(nil), keys...)
		}
	}
	return in
}

// Held implements InputSource.
func (in *EbitenInput) Held(c Control) bool {
	if c >= numControls {
		return false
	}
	for _, k := range in.bindings[c] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// MouseDelta implements InputSource.
func (in *EbitenInput) MouseDelta() (dx, dy float64) {
	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		in.captured = !in.captured
		if in.captured {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
		in.lastX, in.lastY = mx, my
		return 0, 0
	}
	if !in.captured {
		return 0, 0
	}
	dx, dy = float64(mx-in.lastX), float64(my-in.lastY)
	in.lastX, in.lastY = mx, my
	return dx, dy
}

// Wheel implements InputSource.
func (in *EbitenInput) Wheel() float64 {
	_, wy := ebiten.Wheel()
	return wy
}
