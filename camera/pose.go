// Package camera turns pointer and keyboard events into a smoothed camera pose.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose places the camera at Pivot, rotated by Yaw around Y then Pitch around X,
// and moved by Offset in its own rotated frame. Angles are in radians.
type Pose struct {
	Pivot  mgl32.Vec3
	Offset mgl32.Vec3
	Yaw    float32
	Pitch  float32
}

func NewPose(pivot mgl32.Vec3) Pose {
	return Pose{Pivot: pivot}
}

func (p Pose) Rotation() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(p.Yaw).Mul4(mgl32.HomogRotate3DX(p.Pitch))
}

// Transform is the camera to world matrix.
func (p Pose) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(p.Pivot[0], p.Pivot[1], p.Pivot[2]).
		Mul4(p.Rotation()).
		Mul4(mgl32.Translate3D(p.Offset[0], p.Offset[1], p.Offset[2]))
}

// View is the world to camera matrix, the inverse of Transform.
func (p Pose) View() mgl32.Mat4 {
	return mgl32.Translate3D(-p.Offset[0], -p.Offset[1], -p.Offset[2]).
		Mul4(p.Rotation().Transpose()).
		Mul4(mgl32.Translate3D(-p.Pivot[0], -p.Pivot[1], -p.Pivot[2]))
}

func (p Pose) Position() mgl32.Vec3 {
	return p.Pivot.Add(p.rotate(p.Offset))
}

func (p Pose) Forward() mgl32.Vec3 {
	return p.rotate(mgl32.Vec3{0, 0, -1})
}

func (p Pose) Right() mgl32.Vec3 {
	return p.rotate(mgl32.Vec3{1, 0, 0})
}

func (p Pose) Up() mgl32.Vec3 {
	return p.rotate(mgl32.Vec3{0, 1, 0})
}

func (p Pose) rotate(v mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation().Mul4x1(v.Vec4(0)).Vec3()
}

// WrapAngle maps a to [-pi, pi).
func WrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}

const maxPitch = math32.Pi / 2

func clampPitch(pitch float32) float32 {
	return mgl32.Clamp(pitch, -maxPitch, maxPitch)
}
