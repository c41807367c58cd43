// Package dump writes and reads framebuffer dumps: a color and a depth float image plus
// a TOML file describing how the depth was produced.
package dump

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"depth-precision/depth"
	"depth-precision/libio"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
)

const timestampLayout = "20060102_150405.000"

var ErrMeta = errors.New("invalid dump metadata")

type Camera struct {
	Pivot  [3]float32 `toml:"pivot"`
	Offset [3]float32 `toml:"offset"`
	Yaw    float32    `toml:"yaw"`
	Pitch  float32    `toml:"pitch"`
}

// Meta describes a dump. File names are relative to the metadata file.
type Meta struct {
	Time       time.Time `toml:"time"`
	DepthMode  string    `toml:"depth_mode"`
	RenderMode string    `toml:"render_mode"`
	Layout     string    `toml:"layout"`
	Near       float32   `toml:"near"`
	Far        float32   `toml:"far"`
	// degrees
	Fov       float32 `toml:"fov"`
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Camera    Camera  `toml:"camera"`
	ColorFile string  `toml:"color_file"`
	DepthFile string  `toml:"depth_file"`
}

func (m Meta) Mode() (depth.Mode, error) {
	i := slices.Index(depth.ModeNames, m.DepthMode)
	if i < 0 {
		return 0, fmt.Errorf("%w: depth mode %q", ErrMeta, m.DepthMode)
	}
	return depth.Mode(i), nil
}

func (m Meta) Validate() error {
	if _, err := m.Mode(); err != nil {
		return err
	}
	if !(m.Near > 0 && m.Far > m.Near) {
		return fmt.Errorf("%w: clip planes %v, %v", ErrMeta, m.Near, m.Far)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrMeta, m.Width, m.Height)
	}
	if m.DepthFile == "" {
		return fmt.Errorf("%w: no depth file", ErrMeta)
	}
	return nil
}

// Write stores color (4 channels, fixed point) and depth (1 channel, lossless) next to the
// metadata in dir. The file names are derived from m.Time and never replace an earlier dump.
// It returns the path of the metadata file.
func Write(dir string, m Meta, color, depthImg *libio.FloatImage) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	base, metaFile, err := reserve(dir, m.Time.Format(timestampLayout))
	if err != nil {
		return "", err
	}
	metaPath := metaFile.Name()
	written := false
	defer func() {
		metaFile.Close()
		if !written {
			os.Remove(metaPath)
		}
	}()

	m.ColorFile = base + "_color.f32"
	m.DepthFile = base + "_depth.f32"
	m.Width, m.Height = depthImg.Width, depthImg.Height

	if err := writeImage(filepath.Join(dir, m.ColorFile), color, libio.FloatImageCompressionFixedPoint16Lz4); err != nil {
		return "", err
	}
	if err := writeImage(filepath.Join(dir, m.DepthFile), depthImg, libio.FloatImageCompressionLz4); err != nil {
		return "", err
	}

	data, err := toml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode dump metadata: %w", err)
	}
	if _, err := metaFile.Write(data); err != nil {
		return "", err
	}
	if err := metaFile.Close(); err != nil {
		return "", err
	}
	written = true
	return metaPath, nil
}

// reserve creates the metadata file exclusively, appending a counter to stem while the name is taken.
func reserve(dir, stem string) (string, *os.File, error) {
	base := stem
	for i := 1; ; i++ {
		f, err := os.OpenFile(filepath.Join(dir, base+".toml"), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return base, f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", nil, err
		}
		base = fmt.Sprintf("%v_%d", stem, i)
	}
}

func writeImage(path string, img *libio.FloatImage, compression libio.FloatImageCompression) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := libio.EncodeFloatImage(f, img, compression); err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}

// ReadMeta loads and validates a metadata file.
func ReadMeta(path string) (Meta, error) {
	var m Meta
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("%v: %w: %v", path, ErrMeta, err)
	}
	if err := m.Validate(); err != nil {
		return m, fmt.Errorf("%v: %w", path, err)
	}
	return m, nil
}

// ReadDepth loads the depth image referenced by the metadata file at metaPath.
func ReadDepth(metaPath string, m Meta) (*libio.FloatImage, error) {
	img, err := readImage(filepath.Join(filepath.Dir(metaPath), m.DepthFile))
	if err != nil {
		return nil, err
	}
	if img.Channels != 1 || img.Width != m.Width || img.Height != m.Height {
		return nil, fmt.Errorf("%w: depth image is %dx%dx%d, expected %dx%dx1", ErrMeta, img.Width, img.Height, img.Channels, m.Width, m.Height)
	}
	return img, nil
}

func readImage(path string) (*libio.FloatImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := libio.DecodeFloatImage(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return img, nil
}
