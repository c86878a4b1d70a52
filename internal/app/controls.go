package app

import (
	"github.com/Faultbox/tubescene/internal/config"
	"github.com/Faultbox/tubescene/internal/engine/camera"
	"github.com/Faultbox/tubescene/internal/engine/loop"
	"github.com/Faultbox/tubescene/internal/engine/ui"
	"github.com/Faultbox/tubescene/internal/sketch"
)

// action is a host-independent control request.
type action int

const (
	actionNone action = iota
	actionTogglePlay
	actionNudgeXUp
	actionNudgeXDown
	actionNudgeYUp
	actionNudgeYDown
	actionToggleWireframe
	actionFrame
	actionResetCamera
	actionScreenshot
	actionQuit
)

// controller applies actions to a scene. Both hosts share it.
type controller struct {
	settings *sketch.Settings
	fit      func()
	camera   *camera.OrbitCamera
	loop     *loop.Loop
	controls config.ControlsConfig
	setTitle func(string) // optional; called when play state changes

	screenshotPending bool
}

func windowTitle(s loop.State) string {
	if s == loop.Playing {
		return Title
	}
	return Title + " (" + s.String() + ")"
}

// apply handles one action and reports whether the host should quit.
func (c *controller) apply(a action) (quit bool) {
	st := c.settings
	switch a {
	case actionTogglePlay:
		c.loop.Toggle()
		if c.setTitle != nil {
			c.setTitle(windowTitle(c.loop.State()))
		}
	case actionNudgeXUp:
		st.X = c.nudge(st.X, 1)
	case actionNudgeXDown:
		st.X = c.nudge(st.X, -1)
	case actionNudgeYUp:
		st.Y = c.nudge(st.Y, 1)
	case actionNudgeYDown:
		st.Y = c.nudge(st.Y, -1)
	case actionToggleWireframe:
		st.Wireframe = !st.Wireframe
	case actionFrame:
		c.fit()
	case actionResetCamera:
		c.camera.Reset()
	case actionScreenshot:
		c.screenshotPending = true
	case actionQuit:
		return true
	}
	return false
}

// nudge moves v one step in dir, snapped to the slider grid.
func (c *controller) nudge(v, dir float32) float32 {
	return ui.Snap(v+dir*c.controls.Step, c.controls.Min, c.controls.Max, c.controls.Step)
}

// takeScreenshot reports and clears a pending screenshot request.
func (c *controller) takeScreenshot() bool {
	p := c.screenshotPending
	c.screenshotPending = false
	return p
}

func newController(s *sketch.Sketch, l *loop.Loop, controls config.ControlsConfig, setTitle func(string)) *controller {
	return &controller{
		settings: &s.Settings,
		fit:      s.FitCamera,
		camera:   s.Camera(),
		loop:     l,
		controls: controls,
		setTitle: setTitle,
	}
}
