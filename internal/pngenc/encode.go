// Package pngenc writes single-frame 8-bit truecolor PNG files without an
// image codec: the scanlines are built by hand, deflated by a Compressor
// and framed into IHDR, IDAT and IEND chunks.
package pngenc

import (
	"encoding/binary"
	"fmt"

	"github.com/Mavwarf/appicon/internal/pattern"
)

// Signature is the fixed 8-byte PNG file header.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// MaxSize bounds the side length so the in-memory scanline stream stays
// well under the 4-byte chunk length limit.
const MaxSize = 16384

// IHDR field values. Only this configuration is ever written.
const (
	bitDepth          = 8
	colorTypeRGB      = 2
	compressionMethod = 0
	filterMethod      = 0
	interlaceMethod   = 0

	filterNone    = 0
	bytesPerPixel = 3
	ihdrLength    = 13
)

// PixelSource supplies the colour of every pixel of a square raster.
// pattern.Generator satisfies it.
type PixelSource interface {
	Pixel(x, y int) pattern.RGB
}

// Encoder assembles PNG files. A nil Compressor means Zlib{}.
type Encoder struct {
	Compressor Compressor
}

// Encode encodes src with the default compressor.
func Encode(src PixelSource, size int) ([]byte, error) {
	var e Encoder
	return e.Encode(src, size)
}

// Encode returns the complete PNG file for a size×size raster drawn from
// src: signature, IHDR, IDAT and IEND, nothing else. The whole file is
// built in memory; on error nothing is returned.
func (e *Encoder) Encode(src PixelSource, size int) ([]byte, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, &EncodingError{Op: "encode", Err: fmt.Errorf("nil pixel source")}
	}

	comp := e.Compressor
	if comp == nil {
		comp = Zlib{}
	}
	idat, err := comp.Compress(Scanlines(src, size))
	if err != nil {
		return nil, &EncodingError{Op: "compress", Err: err}
	}

	out := make([]byte, 0, len(Signature)+3*chunkOverhead+ihdrLength+len(idat))
	out = append(out, Signature[:]...)
	if out, err = appendChunk(out, TagIHDR, header(size)); err != nil {
		return nil, err
	}
	if out, err = appendChunk(out, TagIDAT, idat); err != nil {
		return nil, err
	}
	if out, err = appendChunk(out, TagIEND, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckSize returns an *EncodingError unless 1 <= size <= MaxSize.
func CheckSize(size int) error {
	if size <= 0 || size > MaxSize {
		return &EncodingError{Op: "encode", Err: fmt.Errorf("size %d out of range [1, %d]", size, MaxSize)}
	}
	return nil
}

// Scanlines returns the unfiltered raw image stream: for each row top to
// bottom, a filter byte of 0 followed by R, G, B for each pixel left to
// right.
func Scanlines(src PixelSource, size int) []byte {
	stride := 1 + size*bytesPerPixel
	raw := make([]byte, 0, stride*size)
	for y := 0; y < size; y++ {
		raw = append(raw, filterNone)
		for x := 0; x < size; x++ {
			c := src.Pixel(x, y)
			raw = append(raw, c.R, c.G, c.B)
		}
	}
	return raw
}

func header(size int) []byte {
	h := make([]byte, 0, ihdrLength)
	h = binary.BigEndian.AppendUint32(h, uint32(size))
	h = binary.BigEndian.AppendUint32(h, uint32(size))
	return append(h, bitDepth, colorTypeRGB, compressionMethod, filterMethod, interlaceMethod)
}
