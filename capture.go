package main

import (
	"time"

	"depth-precision/camera"
	"depth-precision/dump"
	"depth-precision/libutil"
	"depth-precision/render"
	"depth-precision/scene"
)

const dumpDir = "dump"

// captureDump writes both attachments of target as they were rendered for frame.
func captureDump(target *render.Target, frame scene.Frame, live camera.Pose) (string, error) {
	meta := dump.Meta{
		Time:       time.Now(),
		DepthMode:  frame.DepthMode().String(),
		RenderMode: frame.RenderMode.String(),
		Layout:     frame.Layout.String(),
		Near:       frame.Near(),
		Far:        frame.Far(),
		Fov:        frame.Projection.Frustum.FovY * libutil.Rad2Deg,
		Camera: dump.Camera{
			Pivot:  live.Pivot,
			Offset: live.Offset,
			Yaw:    live.Yaw,
			Pitch:  live.Pitch,
		},
	}
	return dump.Write(dumpDir, meta, target.ReadColorImage(), target.ReadDepthImage())
}
