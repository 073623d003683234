package snapshot

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
)

// DefaultObfuscationKey is used when no key is configured.
const DefaultObfuscationKey = "sprintlens_obfuscation_key"

// Codec XORs data with a repeating key and base64 encodes the result. It
// keeps snapshots from being casually readable on disk and offers no
// confidentiality.
type Codec struct {
	key []byte
}

// NewCodec returns a codec for key. An empty key falls back to
// DefaultObfuscationKey.
func NewCodec(key string) *Codec {
	if key == "" {
		key = DefaultObfuscationKey
	}
	return &Codec{key: []byte(key)}
}

// Encode obfuscates plain.
func (c *Codec) Encode(plain []byte) []byte {
	mixed := c.xor(plain)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(mixed)))
	base64.StdEncoding.Encode(out, mixed)
	return out
}

// Decode reverses Encode. Surrounding whitespace is ignored.
func (c *Codec) Decode(encoded []byte) ([]byte, error) {
	encoded = bytes.TrimSpace(encoded)
	if len(encoded) == 0 {
		return nil, errors.New("empty obfuscated payload")
	}
	mixed := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
	n, err := base64.StdEncoding.Decode(mixed, encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return c.xor(mixed[:n]), nil
}

func (c *Codec) xor(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ c.key[i%len(c.key)]
	}
	return out
}
