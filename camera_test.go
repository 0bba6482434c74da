package qraft

import (
	"errors"
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(Q(7, 1, 2, 3), 0)
	assertQuat(t, "position", cam.Position, Vec(1, 2, 3))
	assertFrame(t, "orientation", cam.Orientation, IdentityFrame())
	assertNear(t, "fov", cam.FieldOfView, DefaultFieldOfView)
	if cam.Zooming() {
		t.Error("new camera should not be zooming")
	}
}

func TestCameraFocalLength(t *testing.T) {
	tests := []struct {
		fov  float64
		want float64
	}{
		{60, math.Sqrt(3)},
		{90, 1},
		{120, 1 / math.Sqrt(3)},
	}
	for _, tt := range tests {
		cam := NewCamera(Vec(0, 0, 0), tt.fov)
		assertNear(t, "focal length", cam.FocalLength(), tt.want)
	}
	cam := NewCamera(Vec(0, 0, 0), 90)
	cam.Orientation = IdentityFrame().Rotated(Vec(0, 1, 0), math.Pi/2)
	assertQuat(t, "focal offset", cam.FocalOffset(), Vec(1, 0, 0))
}

func TestCameraSetFieldOfViewClamps(t *testing.T) {
	cam := NewCamera(Vec(0, 0, 0), 60)
	cam.SetFieldOfView(500)
	assertNear(t, "max", cam.FieldOfView, MaxFieldOfView)
	cam.SetFieldOfView(-10)
	assertNear(t, "min", cam.FieldOfView, MinFieldOfView)
}

func TestCameraZoomTo(t *testing.T) {
	cam := NewCamera(Vec(0, 0, 0), 60)
	cam.ZoomTo(90, 1, ease.Linear)
	if !cam.Zooming() {
		t.Fatal("expected Zooming after ZoomTo")
	}
	cam.Update(0.5)
	if math.Abs(cam.FieldOfView-75) > 0.01 {
		t.Errorf("halfway fov = %v, want ~75", cam.FieldOfView)
	}
	cam.Update(0.5)
	if cam.Zooming() {
		t.Error("zoom should be finished")
	}
	if math.Abs(cam.FieldOfView-90) > 0.01 {
		t.Errorf("final fov = %v, want ~90", cam.FieldOfView)
	}
}

func TestCameraSetFieldOfViewCancelsZoom(t *testing.T) {
	cam := NewCamera(Vec(0, 0, 0), 60)
	cam.ZoomTo(120, 1, ease.Linear)
	cam.SetFieldOfView(45)
	cam.Update(0.5)
	assertNear(t, "fov", cam.FieldOfView, 45)
}

func TestCameraYawPitchRoll(t *testing.T) {
	cam := NewCamera(Vec(0, 0, 0), 60)
	cam.Yaw(math.Pi / 2)
	assertQuat(t, "yaw: forward", cam.Orientation.Z(), Vec(1, 0, 0))

	cam = NewCamera(Vec(0, 0, 0), 60)
	cam.Pitch(math.Pi / 2)
	assertQuat(t, "pitch: forward", cam.Orientation.Z(), Vec(0, -1, 0))

	cam = NewCamera(Vec(0, 0, 0), 60)
	cam.Roll(math.Pi / 2)
	assertQuat(t, "roll: right", cam.Orientation.X(), Vec(0, 1, 0))
	assertQuat(t, "roll: forward", cam.Orientation.Z(), Vec(0, 0, 1))
}

func TestCameraTranslate(t *testing.T) {
	cam := NewCamera(Vec(0, 0, 0), 60)
	cam.Yaw(math.Pi / 2)
	cam.TranslateRelative(Vec(0, 0, 2))
	assertQuat(t, "relative", cam.Position, Vec(2, 0, 0))
	cam.Translate(Vec(0, 1, 0))
	assertQuat(t, "absolute", cam.Position, Vec(2, 1, 0))
}

func TestCameraLookAt(t *testing.T) {
	tests := []struct {
		name string
		pos  Quaternion
		want Frame
	}{
		{"from -z", Vec(0, 0, -5), IdentityFrame()},
		{"from +x", Vec(5, 0, 0), Frame{Vec(0, 0, 1), Vec(0, 1, 0), Vec(-1, 0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.pos, 60)
			if err := cam.LookAt(Vec(0, 0, 0), Vec(0, -1, 0)); err != nil {
				t.Fatal(err)
			}
			assertFrame(t, "orientation", cam.Orientation, tt.want)
			assertNear(t, "det", cam.Orientation.Determinant(), 1)
		})
	}
}

func TestCameraLookAtDegenerate(t *testing.T) {
	cam := NewCamera(Vec(1, 2, 3), 60)
	if err := cam.LookAt(Vec(1, 2, 3), Vec(0, -1, 0)); !errors.Is(err, ErrSingularFrame) {
		t.Errorf("same point: err = %v", err)
	}
	if err := cam.LookAt(Vec(1, 5, 3), Vec(0, -1, 0)); !errors.Is(err, ErrSingularFrame) {
		t.Errorf("parallel up: err = %v", err)
	}
	assertFrame(t, "unchanged", cam.Orientation, IdentityFrame())
}

func TestCameraRotateRenormalizes(t *testing.T) {
	cam := NewCamera(Vec(0, 0, 0), 60)
	for i := 0; i < 5*RenormalizeEvery; i++ {
		cam.Rotate(Vec(1, -1, 2), 0.013)
	}
	assertNear(t, "det", cam.Orientation.Determinant(), 1)
}
