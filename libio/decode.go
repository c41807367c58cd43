package libio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/pierrec/lz4/v4"
)

var ErrNotF32 = errors.New("not an f32 image")

func DecodeFloatImage(r io.Reader) (*FloatImage, error) {
	br := &BinaryReader{Src: r, Order: byteOrder}

	var header FloatImageHeader
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("%w: truncated header: %v", ErrNotF32, br.Err)
	}
	if err := header.validate(); err != nil {
		return nil, err
	}

	channels := int(header.Channels)
	count := int(header.Width) * int(header.Height)
	pix, err := decodePayload(br, header.Compression, channels, count)
	if err != nil {
		return nil, fmt.Errorf("decode f32 %v payload after byte 0x%08x: %w", header.Compression, br.Index, err)
	}
	return NewFloatImage(pix, channels, int(header.Width), int(header.Height)), nil
}

func (h FloatImageHeader) validate() error {
	if h.Check != MagicNumberF32 {
		return fmt.Errorf("%w: bad magic number 0x%08x", ErrNotF32, h.Check)
	}
	if h.Version != F32Version1_001_000 && h.Version != F32Version1_002_000 {
		return fmt.Errorf("f32 version %d unsupported", h.Version)
	}
	if h.Compression == FloatImageCompressionLz4 && h.Version < F32Version1_002_000 {
		return fmt.Errorf("f32 version %d predates %v compression", h.Version, h.Compression)
	}
	if h.Channels == 0 {
		return fmt.Errorf("%w: zero channels", ErrNotF32)
	}
	return nil
}

func decodePayload(src io.Reader, compression FloatImageCompression, channels, count int) ([]float32, error) {
	pix := make([]float32, channels*count)
	switch compression {
	case FloatImageCompressionNone:
		return pix, binary.Read(src, byteOrder, pix)
	case FloatImageCompressionLz4:
		return pix, binary.Read(lz4.NewReader(src), byteOrder, pix)
	case FloatImageCompressionFixedPoint16Lz4:
		buf := make([]byte, channels*(8+2*count))
		if _, err := io.ReadFull(lz4.NewReader(src), buf); err != nil {
			return nil, err
		}
		dequantize16(buf, pix, channels, count)
		return pix, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrCompression, compression)
}

func dequantize16(buf []byte, pix []float32, channels, count int) {
	for ch := 0; ch < channels; ch++ {
		lo := math32.Float32frombits(byteOrder.Uint32(buf))
		hi := math32.Float32frombits(byteOrder.Uint32(buf[4:]))
		buf = buf[8:]
		span := hi - lo
		for i := 0; i < count; i++ {
			pix[i*channels+ch] = float32(byteOrder.Uint16(buf[2*i:]))/0xffff*span + lo
		}
		buf = buf[2*count:]
	}
}
