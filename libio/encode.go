package libio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/pierrec/lz4/v4"
)

var ErrCompression = errors.New("unknown f32 compression")

var byteOrder = binary.LittleEndian

// EncodeFloatImage writes the header followed by the pixel payload.
// Only FloatImageCompressionNone and FloatImageCompressionLz4 are lossless.
func EncodeFloatImage(w io.Writer, img *FloatImage, compression FloatImageCompression) error {
	if len(img.Pix) != img.Count()*img.Channels {
		return fmt.Errorf("f32 image has %d values, expected %dx%dx%d", len(img.Pix), img.Width, img.Height, img.Channels)
	}

	payload, err := encodePayload(img, compression)
	if err != nil {
		return fmt.Errorf("encode f32 %v payload: %w", compression, err)
	}

	bw := &BinaryWriter{Dst: w, Order: byteOrder}
	bw.WriteRef(newHeader(img, compression))
	bw.WriteBytes(payload)
	return bw.Err
}

func newHeader(img *FloatImage, compression FloatImageCompression) FloatImageHeader {
	version := F32Version1_001_000
	if compression == FloatImageCompressionLz4 {
		version = F32Version1_002_000
	}
	return FloatImageHeader{
		Check:       MagicNumberF32,
		Version:     version,
		Width:       uint32(img.Width),
		Height:      uint32(img.Height),
		Channels:    uint8(img.Channels),
		Compression: compression,
	}
}

func encodePayload(img *FloatImage, compression FloatImageCompression) ([]byte, error) {
	switch compression {
	case FloatImageCompressionNone:
		return rawBytes(img.Pix), nil
	case FloatImageCompressionFixedPoint16Lz4:
		return compressLz4(quantize16(img))
	case FloatImageCompressionLz4:
		return compressLz4(rawBytes(img.Pix))
	}
	return nil, fmt.Errorf("%w: %d", ErrCompression, compression)
}

func rawBytes(pix []float32) []byte {
	out := make([]byte, 0, 4*len(pix))
	for _, v := range pix {
		out = byteOrder.AppendUint32(out, math32.Float32bits(v))
	}
	return out
}

// quantize16 stores every channel as its value range followed by the values mapped onto that range.
func quantize16(img *FloatImage) []byte {
	count := img.Count()
	out := make([]byte, 0, img.Channels*(8+2*count))
	for ch := 0; ch < img.Channels; ch++ {
		lo, hi := channelRange(img, ch)
		out = byteOrder.AppendUint32(out, math32.Float32bits(lo))
		out = byteOrder.AppendUint32(out, math32.Float32bits(hi))

		span := hi - lo
		for i := 0; i < count; i++ {
			var q uint16
			if span > 0 {
				q = uint16((img.Pix[i*img.Channels+ch]-lo)/span*0xffff + 0.5)
			}
			out = byteOrder.AppendUint16(out, q)
		}
	}
	return out
}

func channelRange(img *FloatImage, ch int) (lo, hi float32) {
	if img.Count() == 0 {
		return 0, 0
	}
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for i := 0; i < img.Count(); i++ {
		v := img.Pix[i*img.Channels+ch]
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
	}
	return lo, hi
}

func compressLz4(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4.Fast)); err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
