// Package config reads the optional startup configuration of the explorer.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"depth-precision/camera"
	"depth-precision/depth"
	"depth-precision/libutil"
	"depth-precision/scene"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
)

var ErrInvalid = errors.New("invalid configuration")

type Window struct {
	Width  int  `toml:"width"`
	Height int  `toml:"height"`
	VSync  bool `toml:"vsync"`
}

type Camera struct {
	// vertical field of view in degrees
	Fov   float32    `toml:"fov"`
	Pivot [3]float32 `toml:"pivot"`
	// units per second
	MoveSpeed float32 `toml:"move_speed"`
	Boost     float32 `toml:"boost"`
	// radians per pixel
	RotateSensitivity float32 `toml:"rotate_sensitivity"`
	// units per pixel
	PanSpeed float32 `toml:"pan_speed"`
	// units per scroll step
	ScrollSpeed      float32 `toml:"scroll_speed"`
	OrbitDistance    float32 `toml:"orbit_distance"`
	PositionHalfLife float32 `toml:"position_half_life"`
	RotationHalfLife float32 `toml:"rotation_half_life"`
}

type Scene struct {
	DepthMode  string `toml:"depth_mode"`
	RenderMode string `toml:"render_mode"`
	Layout     string `toml:"layout"`
}

type Config struct {
	Window Window `toml:"window"`
	Camera Camera `toml:"camera"`
	Scene  Scene  `toml:"scene"`
}

func Default() Config {
	return Config{
		Window: Window{Width: 1024, Height: 768, VSync: true},
		Camera: Camera{
			Fov:               60,
			Pivot:             [3]float32{0, 0, 4},
			MoveSpeed:         5,
			Boost:             10,
			RotateSensitivity: 0.005,
			PanSpeed:          0.01,
			ScrollSpeed:       0.5,
			OrbitDistance:     4,
			PositionHalfLife:  0.04,
			RotationHalfLife:  0.025,
		},
		Scene: Scene{
			DepthMode:  depth.Normal.String(),
			RenderMode: scene.RenderDepth.String(),
			Layout:     scene.LayoutNear.String(),
		},
	}
}

// Load decodes r over the defaults. Unknown keys are an error.
func Load(r io.Reader) (Config, error) {
	c := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return c, fmt.Errorf("%w: %v", ErrInvalid, strict.String())
		}
		return c, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return c, c.Validate()
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), err
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return c, fmt.Errorf("%v: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalid, c.Camera.Fov)
	}
	for name, v := range map[string]float32{
		"move_speed":         c.Camera.MoveSpeed,
		"boost":              c.Camera.Boost,
		"rotate_sensitivity": c.Camera.RotateSensitivity,
		"pan_speed":          c.Camera.PanSpeed,
		"scroll_speed":       c.Camera.ScrollSpeed,
		"orbit_distance":     c.Camera.OrbitDistance,
		"position_half_life": c.Camera.PositionHalfLife,
		"rotation_half_life": c.Camera.RotationHalfLife,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %v must not be negative", ErrInvalid, name)
		}
	}
	if _, err := c.DepthMode(); err != nil {
		return err
	}
	if _, err := c.RenderMode(); err != nil {
		return err
	}
	if _, err := c.Layout(); err != nil {
		return err
	}
	return nil
}

func (c Config) DepthMode() (depth.Mode, error) {
	i, err := lookup("depth_mode", c.Scene.DepthMode, depth.ModeNames)
	return depth.Mode(i), err
}

func (c Config) RenderMode() (scene.RenderMode, error) {
	i, err := lookup("render_mode", c.Scene.RenderMode, scene.RenderModeNames)
	return scene.RenderMode(i), err
}

func (c Config) Layout() (scene.LayoutMode, error) {
	i, err := lookup("layout", c.Scene.Layout, scene.LayoutModeNames)
	return scene.LayoutMode(i), err
}

// lookup matches value case insensitively against names.
func lookup(key, value string, names []string) (int, error) {
	i := slices.IndexFunc(names, func(n string) bool {
		return strings.EqualFold(n, value)
	})
	if i < 0 {
		return 0, fmt.Errorf("%w: %v %q is not one of %v", ErrInvalid, key, value, strings.Join(names, ", "))
	}
	return i, nil
}

// Settings creates the demo settings described by c. c must be valid.
func (c Config) Settings() *scene.Settings {
	s := scene.DefaultSettings()
	if m, err := c.DepthMode(); err == nil {
		s.SetDepthMode(m)
	}
	if m, err := c.RenderMode(); err == nil {
		s.SetRenderMode(m)
	}
	if m, err := c.Layout(); err == nil {
		s.SetLayout(m)
	}
	s.SetFovY(c.Camera.Fov * libutil.Deg2Rad)
	return s
}

func (c Config) Pose() camera.Pose {
	return camera.NewPose(c.Camera.Pivot)
}

func (c Config) SmoothProps() camera.SmoothProps {
	return camera.SmoothProps{
		PositionHalfLife: c.Camera.PositionHalfLife,
		RotationHalfLife: c.Camera.RotationHalfLife,
	}
}

// CameraSystem creates the gesture inputs. Orbit comes first so its pivot hand-over happens before the other inputs move the pivot.
func (c Config) CameraSystem() *camera.System {
	cam := c.Camera
	return camera.NewSystem(
		camera.NewOrbitInput(camera.ButtonLeft, camera.ModAlt, cam.OrbitDistance, cam.RotateSensitivity),
		camera.NewRotateInput(camera.ButtonRight, cam.RotateSensitivity),
		camera.NewPanInput(camera.ButtonMiddle, cam.PanSpeed),
		camera.NewScrollInput(cam.ScrollSpeed),
		camera.NewTranslateInput(cam.MoveSpeed, cam.Boost),
	)
}
