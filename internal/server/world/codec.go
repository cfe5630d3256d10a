package world

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Codec compresses chunk block arrays for persistence and transport.
// Block arrays are long runs of repeated materials, so zstd shrinks them
// by an order of magnitude at default speed.
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewCodec creates a Codec. The underlying encoder and decoder are safe for
// concurrent EncodeAll/DecodeAll use.
func NewCodec() (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Compress returns the zstd frame for blocks.
func (c *Codec) Compress(blocks []byte) []byte {
	return c.enc.EncodeAll(blocks, nil)
}

// Decompress reverses Compress.
func (c *Codec) Decompress(frame []byte) ([]byte, error) {
	out, err := c.dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress chunk: %w", err)
	}
	return out, nil
}

// Close releases the encoder and decoder.
func (c *Codec) Close() {
	c.enc.Close()
	c.dec.Close()
}
