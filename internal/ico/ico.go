// Package ico wraps one PNG file in a single-entry ICO container. Windows
// Vista and later, and most desktop icon loaders, accept PNG frames.
package ico

import "encoding/binary"

const (
	HeaderSize  = 6
	EntrySize   = 16
	ImageOffset = HeaderSize + EntrySize // exactly one entry

	typeIcon   = 1
	colorCount = 0 // no palette
	planes     = 1
	bitCount   = 32
)

// Wrap returns an ICO file whose only image is raster, copied verbatim.
// raster is opaque here; only its length is read. size is the side
// length of the embedded image and is recorded as 0 when it does not fit
// in a byte (the ICO convention for 256).
func Wrap(raster []byte, size int) []byte {
	out := make([]byte, ImageOffset, ImageOffset+len(raster))

	// ICONDIR
	binary.LittleEndian.PutUint16(out[0:], 0) // reserved
	binary.LittleEndian.PutUint16(out[2:], typeIcon)
	binary.LittleEndian.PutUint16(out[4:], 1) // image count

	// ICONDIRENTRY
	dim := DimensionByte(size)
	out[6] = dim // width
	out[7] = dim // height
	out[8] = colorCount
	out[9] = 0 // reserved
	binary.LittleEndian.PutUint16(out[10:], planes)
	binary.LittleEndian.PutUint16(out[12:], bitCount)
	binary.LittleEndian.PutUint32(out[14:], uint32(len(raster)))
	binary.LittleEndian.PutUint32(out[18:], ImageOffset)

	return append(out, raster...)
}

// DimensionByte returns the directory-entry width/height byte for size.
func DimensionByte(size int) byte {
	if size > 0 && size < 256 {
		return byte(size)
	}
	return 0
}
