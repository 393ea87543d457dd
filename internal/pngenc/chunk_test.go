package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"
	"testing"
)

func TestEncodeChunkIEND(t *testing.T) {
	got, err := EncodeChunk(TagIEND, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Every PNG ends with these 12 bytes.
	want := []byte{0, 0, 0, 0, 'I', 'E', 'N', 'D', 0xae, 0x42, 0x60, 0x82}
	if !bytes.Equal(got, want) {
		t.Errorf("IEND chunk = % x, want % x", got, want)
	}
}

func TestEncodeChunkIntegrity(t *testing.T) {
	tags := []Tag{TagIHDR, TagIDAT, TagIEND, {'t', 'E', 'X', 't'}}
	lengths := []int{0, 1, 13, 255, 256, 4096, 70000}
	for _, tag := range tags {
		for _, n := range lengths {
			payload := make([]byte, n)
			for i := range payload {
				payload[i] = byte(i*7 + n)
			}
			rec, err := EncodeChunk(tag, payload)
			if err != nil {
				t.Fatalf("EncodeChunk(%s, %d bytes): %v", tag, n, err)
			}
			if len(rec) != n+12 {
				t.Fatalf("%s/%d: record length %d, want %d", tag, n, len(rec), n+12)
			}
			if got := binary.BigEndian.Uint32(rec[0:4]); got != uint32(n) {
				t.Errorf("%s/%d: length field %d", tag, n, got)
			}
			if !bytes.Equal(rec[4:8], tag[:]) {
				t.Errorf("%s/%d: tag field %q", tag, n, rec[4:8])
			}
			if !bytes.Equal(rec[8:8+n], payload) {
				t.Errorf("%s/%d: payload mismatch", tag, n)
			}
			body := rec[4 : 8+n]
			if got, want := binary.BigEndian.Uint32(rec[8+n:]), crc32.ChecksumIEEE(body); got != want {
				t.Errorf("%s/%d: crc %08x, want %08x", tag, n, got, want)
			}
		}
	}
}

func TestEncodeChunkCRCExcludesLength(t *testing.T) {
	payload := []byte("abc")
	rec, err := EncodeChunk(TagIDAT, payload)
	if err != nil {
		t.Fatal(err)
	}
	withLength := crc32.ChecksumIEEE(rec[:len(rec)-4])
	if binary.BigEndian.Uint32(rec[len(rec)-4:]) == withLength {
		t.Error("crc must not cover the length field")
	}
}

func TestCheckChunkLength(t *testing.T) {
	if err := checkChunkLength(0); err != nil {
		t.Errorf("checkChunkLength(0) = %v", err)
	}
	big := uint64(math.MaxUint32) + 1
	if uint64(int(big)) != big {
		t.Skip("int is 32 bits")
	}
	if err := checkChunkLength(int(big)); err == nil {
		t.Error("expected error for payload over 4 GiB")
	}
}

func TestEncodingErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	var err error = &EncodingError{Op: "compress", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}
	if got := err.Error(); got != "pngenc: compress: boom" {
		t.Errorf("Error() = %q", got)
	}
}
