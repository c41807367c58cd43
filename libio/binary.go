package libio

import (
	"encoding/binary"
	"io"
)

// BinaryReader counts the bytes read from Src and keeps the first error.
type BinaryReader struct {
	Order binary.ByteOrder
	Src   io.Reader
	// offset of the next unread byte
	Index int
	Err   error
}

func (br *BinaryReader) Read(p []byte) (n int, err error) {
	n, err = br.Src.Read(p)
	br.Index += n
	return n, err
}

// ReadRef decodes a fixed size value into data. After the first failure it does nothing.
func (br *BinaryReader) ReadRef(data any) bool {
	if br.Err != nil {
		return false
	}
	br.Err = binary.Read(br, br.Order, data)
	return br.Err == nil
}

// BinaryWriter keeps the first error. After it, every write is skipped.
type BinaryWriter struct {
	Order binary.ByteOrder
	Dst   io.Writer
	Err   error
}

func (bw *BinaryWriter) WriteBytes(p []byte) bool {
	if bw.Err != nil {
		return false
	}
	_, bw.Err = bw.Dst.Write(p)
	return bw.Err == nil
}

func (bw *BinaryWriter) WriteRef(data any) bool {
	if bw.Err != nil {
		return false
	}
	bw.Err = binary.Write(bw.Dst, bw.Order, data)
	return bw.Err == nil
}
