package libui

import (
	"fmt"

	"stereo-gl/libvr"

	"github.com/inkyblackness/imgui-go/v4"
)

// PanelStatus is what the control panel shows.
type PanelStatus struct {
	State         libvr.State
	Err           error
	DisplayName   string
	Available     bool
	Emulated      bool
	Connected     bool
	SurfaceWidth  int
	SurfaceHeight int
	Ticks         uint64
	Renderer      string
	LastCapture   string
	ToggleKey     string
	CaptureKey    string
}

// PanelActions are the requests made through the panel during one frame.
type PanelActions struct {
	Toggle     bool
	Capture    bool
	Disconnect bool
	Reconnect  bool
}

// ToggleLabel is the caption of the presentation toggle, empty while it is disabled.
func ToggleLabel(state libvr.State) string {
	switch state {
	case libvr.StateFlat:
		return "Enter VR"
	case libvr.StateStereo:
		return "Exit VR"
	}
	return ""
}

// StatusLine summarizes the session for the overlay.
func StatusLine(status PanelStatus) string {
	if !status.Available {
		return "Stereo display unavailable"
	}
	switch status.State {
	case libvr.StateRequesting:
		return fmt.Sprintf("Waiting for %v ...", status.DisplayName)
	case libvr.StateStereo:
		return fmt.Sprintf("Presenting to %v (%dx%d, frame %d)", status.DisplayName, status.SurfaceWidth, status.SurfaceHeight, status.Ticks)
	}
	return fmt.Sprintf("Flat view, %v ready", status.DisplayName)
}

var errorColor = imgui.Vec4{X: 1, Y: 0.4, Z: 0.35, W: 1}

// DrawPanel builds the control window. Must be called between imgui.NewFrame and ImGui.Draw.
func DrawPanel(status PanelStatus) PanelActions {
	var actions PanelActions

	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("Stereo", nil, imgui.WindowFlagsAlwaysAutoResize)
	defer imgui.End()

	imgui.Text(StatusLine(status))

	if status.Available {
		if label := ToggleLabel(status.State); label != "" {
			actions.Toggle = imgui.Button(fmt.Sprintf("%v [%v]", label, status.ToggleKey))
		} else {
			imgui.Text("Request pending")
		}
	}

	if status.Err != nil {
		imgui.PushStyleColor(imgui.StyleColorText, errorColor)
		imgui.Text(status.Err.Error())
		imgui.PopStyleColor()
	}

	imgui.Separator()
	actions.Capture = imgui.Button(fmt.Sprintf("Capture [%v]", status.CaptureKey))
	if status.LastCapture != "" {
		imgui.SameLine()
		imgui.Text(status.LastCapture)
	}

	if status.Emulated && imgui.CollapsingHeader("Emulator") {
		if status.Connected {
			actions.Disconnect = imgui.Button("Simulate disconnect")
		} else {
			actions.Reconnect = imgui.Button("Reconnect")
		}
	}

	if status.Renderer != "" {
		imgui.Separator()
		imgui.Text(status.Renderer)
	}

	return actions
}
