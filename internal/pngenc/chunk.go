package pngenc

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
)

// Tag is a 4-byte chunk type such as "IHDR".
type Tag [4]byte

func (t Tag) String() string { return string(t[:]) }

var (
	TagIHDR = Tag{'I', 'H', 'D', 'R'}
	TagIDAT = Tag{'I', 'D', 'A', 'T'}
	TagIEND = Tag{'I', 'E', 'N', 'D'}
)

// chunkOverhead is length + tag + CRC.
const chunkOverhead = 12

// EncodeChunk returns the length-prefixed, checksummed record for payload:
//
//	u32be(len) | tag | payload | u32be(crc32(tag | payload))
//
// The CRC is the IEEE polynomial and never covers the length field.
func EncodeChunk(tag Tag, payload []byte) ([]byte, error) {
	return appendChunk(make([]byte, 0, chunkOverhead+len(payload)), tag, payload)
}

// appendChunk appends the encoded record to dst.
func appendChunk(dst []byte, tag Tag, payload []byte) ([]byte, error) {
	if err := checkChunkLength(len(payload)); err != nil {
		return nil, &EncodingError{Op: "chunk " + tag.String(), Err: err}
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	dst = append(dst, tag[:]...)
	dst = append(dst, payload...)

	crc := crc32.NewIEEE()
	crc.Write(tag[:])
	crc.Write(payload)
	return binary.BigEndian.AppendUint32(dst, crc.Sum32()), nil
}

func checkChunkLength(n int) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("payload of %d bytes exceeds the 4-byte length field", n)
	}
	return nil
}
