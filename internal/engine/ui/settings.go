package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
)

// SettingsValues is what the settings window edits in place.
type SettingsValues struct {
	X, Y      *float32
	Progress  *float32 // [0, 1]
	Min, Max  float32
	Step      float32
	Playing   bool
	Wireframe *bool
	Clock     float32
	Frames    uint64
	HeightMap string
}

// SettingsActions are the buttons pressed this frame.
type SettingsActions struct {
	TogglePlay    bool
	ResetCamera   bool
	FrameTube     bool
	Screenshot    bool
	OpenHeightMap bool
	SaveControls  bool
}

// Snap rounds v to the nearest multiple of step within [lo, hi].
func Snap(v, lo, hi, step float32) float32 {
	if step > 0 {
		n := (v - lo) / step
		if n >= 0 {
			n = float32(int64(n + 0.5))
		} else {
			n = float32(int64(n - 0.5))
		}
		v = lo + n*step
	}
	return min(max(v, lo), hi)
}

// DrawSettings draws the floating settings window.
func DrawSettings(v SettingsValues) SettingsActions {
	var act SettingsActions

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("Settings", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.Text("Displacement")
		if imgui.SliderFloatV("x", v.X, v.Min, v.Max, "%.2f", imgui.SliderFlagsNone) {
			*v.X = Snap(*v.X, v.Min, v.Max, v.Step)
		}
		if imgui.SliderFloatV("y", v.Y, v.Min, v.Max, "%.2f", imgui.SliderFlagsNone) {
			*v.Y = Snap(*v.Y, v.Min, v.Max, v.Step)
		}
		imgui.SliderFloatV("progress", v.Progress, 0, 1, "%.2f", imgui.SliderFlagsNone)
		imgui.Checkbox("Wireframe overlay", v.Wireframe)

		imgui.Separator()
		label := "Stop"
		if !v.Playing {
			label = "Play"
		}
		act.TogglePlay = imgui.Button(label)
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("clock %.2f  frame %d", v.Clock, v.Frames))

		imgui.Separator()
		act.ResetCamera = imgui.Button("Reset View")
		imgui.SameLine()
		act.FrameTube = imgui.Button("Frame")
		imgui.SameLine()
		act.Screenshot = imgui.Button("Screenshot")

		imgui.Separator()
		imgui.Text("Height map:")
		imgui.SameLine()
		imgui.TextDisabled(v.HeightMap)
		act.OpenHeightMap = imgui.Button("Open...")
		imgui.SameLine()
		act.SaveControls = imgui.Button("Save settings")
	}
	imgui.End()
	return act
}
