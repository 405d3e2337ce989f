// Package compress provides the zstd codec used for synced artifacts.
package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Codec compresses WAL artifacts for upload and decompresses them on read.
// The compression level is fixed at zstd's default (level 3).
type Codec struct {
	decoder *zstd.Decoder
}

// NewCodec creates a new codec.
func NewCodec() (*Codec, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Codec{decoder: dec}, nil
}

// Close releases codec resources.
func (c *Codec) Close() {
	if c.decoder != nil {
		c.decoder.Close()
	}
}

// Compress streams r through the encoder and returns the finished frame.
// The stream is finalized before returning; the result is always a complete,
// decodable zstd frame.
func (c *Codec) Compress(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer

	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := io.Copy(enc, r); err != nil {
		enc.Close()
		return nil, fmt.Errorf("compress: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finish zstd frame: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress returns the original bytes of a compressed artifact.
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	out, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}
