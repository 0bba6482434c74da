package qraft

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/tanema/gween/ease"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Z      float64 `json:"z,omitempty"`
	Yaw    float64 `json:"yaw,omitempty"`   // degrees
	Pitch  float64 `json:"pitch,omitempty"` // degrees
	Roll   float64 `json:"roll,omitempty"`  // degrees
	FOV    float64 `json:"fov,omitempty"`   // degrees
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences camera moves and screenshots across frames for
// automated visual testing. Attach to a Scene via SetTestRunner.
//
// Supported actions:
//
//	screenshot {label}         queue a screenshot of the next Draw
//	wait       {frames}        idle for a number of frames
//	move       {x, y, z}       translate the camera along its own axes
//	turn       {yaw, pitch, roll}
//	lookat     {x, y, z}       aim the camera at a world point, +y down
//	fov        {fov, frames}   zoom to a field of view, instantly when frames is 0
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "wait", "move", "turn", "lookat", "fov":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called at the start of Scene.Update each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	cam := s.Camera
	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "move":
		cam.TranslateRelative(Vec(st.X, st.Y, st.Z))
	case "turn":
		cam.Yaw(radians(st.Yaw))
		cam.Pitch(radians(st.Pitch))
		cam.Roll(radians(st.Roll))
	case "lookat":
		if err := cam.LookAt(Vec(st.X, st.Y, st.Z), Vec(0, -1, 0)); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[qraft] test runner: lookat: %v\n", err)
		}
	case "fov":
		if st.Frames > 0 {
			cam.ZoomTo(st.FOV, float32(st.Frames)/60, ease.Linear)
			r.waitCount = st.Frames - 1
		} else {
			cam.SetFieldOfView(st.FOV)
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
