package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SmoothProps holds half-lives in seconds. Zero snaps to the target.
// Pivot and offset share a half-life so an orbit hand-over keeps the camera position in place.
type SmoothProps struct {
	PositionHalfLife float32
	RotationHalfLife float32
}

func DefaultSmoothProps() SmoothProps {
	return SmoothProps{PositionHalfLife: 0.04, RotationHalfLife: 0.025}
}

// decay is the fraction of the remaining distance covered in dt.
func decay(halfLife, dt float32) float32 {
	if halfLife <= 0 {
		return 1
	}
	return 1 - math32.Exp2(-dt/halfLife)
}

func lerp(a, b, t float32) float32 {
	if t >= 1 {
		return b
	}
	return a + (b-a)*t
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	if t >= 1 {
		return b
	}
	return a.Add(b.Sub(a).Mul(t))
}

// Smooth moves live towards target. Splitting dt into smaller steps gives the same result.
func Smooth(live, target Pose, props SmoothProps, dt float32) Pose {
	tp := decay(props.PositionHalfLife, dt)
	tr := decay(props.RotationHalfLife, dt)

	live.Pivot = lerpVec3(live.Pivot, target.Pivot, tp)
	live.Offset = lerpVec3(live.Offset, target.Offset, tp)
	if tr >= 1 {
		live.Yaw = target.Yaw
	} else {
		live.Yaw = WrapAngle(live.Yaw + WrapAngle(target.Yaw-live.Yaw)*tr)
	}
	live.Pitch = lerp(live.Pitch, target.Pitch, tr)
	return live
}
