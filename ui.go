package main

import (
	"fmt"

	"depth-precision/camera"
	"depth-precision/depth"
	"depth-precision/libutil"
	"depth-precision/render"
	"depth-precision/scene"

	"github.com/inkyblackness/imgui-go/v4"
)

// Overlay is the operator window. It only mutates the settings it is given.
type Overlay struct {
	frameTime float32
	dumpLine  string
}

// SetDumpResult shows the outcome of the last dump.
func (o *Overlay) SetDumpResult(path string, err error) {
	if err != nil {
		o.dumpLine = "dump failed: " + err.Error()
		return
	}
	o.dumpLine = "dumped " + path
}

// Draw builds the overlay for this frame and reports whether the dump button was pressed.
func (o *Overlay) Draw(settings *scene.Settings, live camera.Pose, probe render.ProbeReading, dt float32) (dump bool) {
	// exponential moving average
	o.frameTime += (dt - o.frameTime) * 0.1

	imgui.NewFrame()
	imgui.Begin("Depth")
	defer imgui.End()

	if i, ok := combo("Depth Mode", int(settings.DepthMode()), depth.ModeNames); ok {
		settings.SetDepthMode(depth.Mode(i))
	}
	if i, ok := combo("Render Mode", int(settings.RenderMode()), scene.RenderModeNames); ok {
		settings.SetRenderMode(scene.RenderMode(i))
	}
	if i, ok := combo("Layout Mode", int(settings.Layout()), scene.LayoutModeNames); ok {
		settings.SetLayout(scene.LayoutMode(i))
	}

	near, far := settings.Near(), settings.Far()
	if imgui.SliderFloat("Near Plane", &near, scene.NearMin, scene.NearMax) {
		settings.SetNear(near)
	}
	if imgui.SliderFloat("Far Plane", &far, scene.FarMin, scene.FarMax) {
		settings.SetFar(far)
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("frame %.2f ms", o.frameTime*1000))
	pos := live.Position()
	imgui.Text(fmt.Sprintf("camera %.2f %.2f %.2f", pos[0], pos[1], pos[2]))
	imgui.Text(fmt.Sprintf("yaw %.1f pitch %.1f", live.Yaw*libutil.Rad2Deg, live.Pitch*libutil.Rad2Deg))

	imgui.Separator()
	if probe.Valid {
		imgui.Text(fmt.Sprintf("probe %d, %d", probe.X, probe.Y))
		imgui.Text(fmt.Sprintf("stored %.9g", probe.Stored))
		imgui.Text(fmt.Sprintf("distance %.4f", probe.Distance))
	} else {
		imgui.Text("probe outside the window")
	}

	imgui.Separator()
	dump = imgui.Button("Dump")
	if o.dumpLine != "" {
		imgui.Text(o.dumpLine)
	}
	return dump
}

func combo(label string, current int, names []string) (int, bool) {
	selected, changed := current, false
	if imgui.BeginCombo(label, names[current]) {
		for i, name := range names {
			if imgui.SelectableV(name, i == current, 0, imgui.Vec2{}) && i != current {
				selected, changed = i, true
			}
		}
		imgui.EndCombo()
	}
	return selected, changed
}
