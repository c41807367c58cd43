package libio

import (
	goimg "image"
	"image/color"

	"github.com/chewxy/math32"
)

const MagicNumberF32 = 0x6d16837d

type FloatImageVersion uint32

const (
	F32Version1_001_000 = FloatImageVersion(1_001_000)
	// adds FloatImageCompressionLz4
	F32Version1_002_000 = FloatImageVersion(1_002_000)
)

type FloatImageCompression uint32

const (
	FloatImageCompressionNone = FloatImageCompression(iota)
	FloatImageCompressionFixedPoint16Lz4
	FloatImageCompressionLz4
)

func (c FloatImageCompression) String() string {
	switch c {
	case FloatImageCompressionNone:
		return "none"
	case FloatImageCompressionFixedPoint16Lz4:
		return "fixed16+lz4"
	case FloatImageCompressionLz4:
		return "lz4"
	}
	return "unknown"
}

type FloatImageHeader struct {
	Check         uint32
	Version       FloatImageVersion
	Width, Height uint32
	Channels      uint8
	Compression   FloatImageCompression
	Unused        [14]uint8
}

// FloatImage holds interleaved float32 channels.
//
// Note that the origin (0,0) is in the bottom left, as read back from the graphics library,
// as opposed to Go's top left origin.
type FloatImage struct {
	Channels      int
	Width, Height int
	Pix           []float32
}

func NewFloatImage(pix []float32, channels int, width, height int) *FloatImage {
	return &FloatImage{
		Pix:      pix,
		Channels: channels,
		Width:    width,
		Height:   height,
	}
}

// Index calculates the tuple index into the image data.
func (img *FloatImage) Index(x, y int) int {
	return x*img.Channels + y*img.Channels*img.Width
}

func (img *FloatImage) Count() int {
	return img.Width * img.Height
}

func (img *FloatImage) Bytes() int {
	return img.Width * img.Height * img.Channels * 4
}

func (img *FloatImage) At(x, y, ch int) float32 {
	return img.Pix[img.Index(x, y)+ch]
}

// Channel extracts a single channel as a new one channel image.
func (img *FloatImage) Channel(ch int) *FloatImage {
	if img.Channels == 1 && ch == 0 {
		return img
	}
	dst := make([]float32, img.Count())
	for i := range dst {
		dst[i] = img.Pix[i*img.Channels+ch]
	}
	return NewFloatImage(dst, 1, img.Width, img.Height)
}

type ChannelStats struct {
	Min, Max, Mean float32
	// number of distinct values, useful to spot depth collapsing onto few representable values
	Distinct int
	// non finite values are excluded from the other fields
	NonFinite int
}

func (img *FloatImage) Stats(ch int) ChannelStats {
	stats := ChannelStats{Min: math32.Inf(1), Max: math32.Inf(-1)}
	seen := map[uint32]struct{}{}
	var sum float64
	var n int
	for i := 0; i < img.Count(); i++ {
		v := img.Pix[i*img.Channels+ch]
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			stats.NonFinite++
			continue
		}
		stats.Min = math32.Min(stats.Min, v)
		stats.Max = math32.Max(stats.Max, v)
		seen[math32.Float32bits(v)] = struct{}{}
		sum += float64(v)
		n++
	}
	if n > 0 {
		stats.Mean = float32(sum / float64(n))
	} else {
		stats.Min, stats.Max = 0, 0
	}
	stats.Distinct = len(seen)
	return stats
}

// ToGray16 maps channel ch from [lo, hi] onto the full 16 bit range, flipped to a top left origin.
// Values outside the range are clamped. A degenerate range maps everything to black.
func (img *FloatImage) ToGray16(ch int, lo, hi float32) *goimg.Gray16 {
	gray := goimg.NewGray16(goimg.Rect(0, 0, img.Width, img.Height))
	r := hi - lo
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			var v float32
			if r > 0 {
				v = clamp01((img.At(x, y, ch) - lo) / r)
			}
			gray.SetGray16(x, img.Height-y-1, color.Gray16{Y: uint16(v*0xffff + 0.5)})
		}
	}
	return gray
}

// ToGray is the 8 bit variant of ToGray16 with a gamma curve applied after normalizing.
func (img *FloatImage) ToGray(ch int, lo, hi, gamma float32) *goimg.Gray {
	gray := goimg.NewGray(goimg.Rect(0, 0, img.Width, img.Height))
	r := hi - lo
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			var v float32
			if r > 0 {
				v = tonemap((img.At(x, y, ch)-lo)/r, 1/gamma)
			}
			gray.SetGray(x, img.Height-y-1, color.Gray{Y: uint8(v*0xff + 0.5)})
		}
	}
	return gray
}

func clamp01(v float32) float32 {
	return math32.Min(math32.Max(0, v), 1)
}

func tonemap(value, gamma float32) float32 {
	return clamp01(math32.Pow(clamp01(value), gamma))
}
