package depth

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrDegenerateFrustum = errors.New("degenerate frustum")

// Frustum describes a symmetric perspective frustum. FovY is the vertical field of view in radians.
type Frustum struct {
	FovY, Aspect float32
	Near, Far    float32
}

func (f Frustum) validate() error {
	for _, v := range []float32{f.FovY, f.Aspect, f.Near, f.Far} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return fmt.Errorf("%w: non finite value in %+v", ErrDegenerateFrustum, f)
		}
	}
	if f.Near <= 0 {
		return fmt.Errorf("%w: near %v must be positive", ErrDegenerateFrustum, f.Near)
	}
	if f.Far <= f.Near {
		return fmt.Errorf("%w: far %v must be greater than near %v", ErrDegenerateFrustum, f.Far, f.Near)
	}
	if f.FovY <= 0 || f.FovY >= math32.Pi {
		return fmt.Errorf("%w: fov %v outside (0, pi)", ErrDegenerateFrustum, f.FovY)
	}
	if f.Aspect <= 0 {
		return fmt.Errorf("%w: aspect %v must be positive", ErrDegenerateFrustum, f.Aspect)
	}
	return nil
}

// Projection pairs a projection matrix with the depth state it was built for.
type Projection struct {
	Mode    Mode
	Frustum Frustum
	Matrix  mgl32.Mat4
	State   State
}

// reverseZ maps clip depth z to w - (0.5z + 0.5w): [-w, w] becomes [w, 0].
var reverseZ = mgl64.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, -0.5, 0,
	0, 0, 0.5, 1,
}

// Build creates the projection matrix for mode.
// The matrix is composed in double precision, the reversed depth coefficient n/(f-n) does not survive a single precision remap.
func Build(f Frustum, mode Mode) (Projection, error) {
	if err := f.validate(); err != nil {
		return Projection{}, err
	}
	state := mode.State()

	m := mgl64.Perspective(float64(f.FovY), float64(f.Aspect), float64(f.Near), float64(f.Far))
	if mode == Reversed {
		m = reverseZ.Mul4(m)
	}

	var m32 mgl32.Mat4
	for i := range m {
		m32[i] = float32(m[i])
	}
	return Projection{Mode: mode, Frustum: f, Matrix: m32, State: state}, nil
}

// MustBuild is Build for frustums known to be valid.
func MustBuild(f Frustum, mode Mode) Projection {
	p, err := Build(f, mode)
	if err != nil {
		panic(err)
	}
	return p
}

// BuildBoth returns the projections of both modes, indexed by Mode.
func BuildBoth(f Frustum) ([2]Projection, error) {
	var result [2]Projection
	for _, mode := range []Mode{Normal, Reversed} {
		p, err := Build(f, mode)
		if err != nil {
			return result, err
		}
		result[mode] = p
	}
	return result, nil
}

// StoredDepth is the value the depth buffer receives for a point at view space position v,
// computed in single precision like the rasterizer does.
func (p Projection) StoredDepth(v mgl32.Vec3) float32 {
	clip := p.Matrix.Mul4x1(v.Vec4(1))
	ndc := clip.Z() / clip.W()
	if p.State.Clip == ClipNegativeOneToOne {
		return 0.5*ndc + 0.5
	}
	return ndc
}
