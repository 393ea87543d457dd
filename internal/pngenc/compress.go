package pngenc

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"
)

// Compressor turns the raw scanline stream into a zlib (RFC 1950) stream,
// which is what IDAT carries. Any conforming implementation works; the
// level only changes output size.
type Compressor interface {
	Compress(raw []byte) ([]byte, error)
}

// Zlib compresses with klauspost/compress at the given level.
// The zero value uses zlib.BestCompression.
type Zlib struct {
	Level int
}

func (z Zlib) Compress(raw []byte) ([]byte, error) {
	level := z.Level
	if level == 0 {
		level = zlib.BestCompression
	}
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("zlib level %d: %w", level, err)
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return nil, fmt.Errorf("zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}
	return buf.Bytes(), nil
}
