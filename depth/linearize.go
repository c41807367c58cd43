package depth

import "fmt"

// These mirror the depth visualization shader and must produce the same values.

// LinearizeNormal converts a depth buffer value d in [0, 1] written with a [-1, 1] clip range
// back into a view distance.
func LinearizeNormal(d, near, far float32) float32 {
	ndc := 2*d - 1
	return 2 * near * far / (far + near - ndc*(far-near))
}

// LinearizeReversed converts a reversed depth buffer value back into a view distance.
// d is un-reversed to 1-d before applying the [0, 1] inverse nf/(f - d(f-n)), which
// simplifies to nf/(n + d(f-n)).
func LinearizeReversed(d, near, far float32) float32 {
	return near * far / (near + d*(far-near))
}

func Linearize(mode Mode, d, near, far float32) float32 {
	switch mode {
	case Normal:
		return LinearizeNormal(d, near, far)
	case Reversed:
		return LinearizeReversed(d, near, far)
	}
	panic(fmt.Sprintf("unknown depth mode %d", int(mode)))
}

// Visualize maps a view distance onto [0, 1] with near black and far white.
func Visualize(distance, near, far float32) float32 {
	return (distance - near) / (far - near)
}
