// Package codec compresses oversized setting values before they reach a
// backend. Values above the threshold are stored zstd-compressed and
// base64-url encoded behind a marker prefix; everything else is stored
// verbatim. Decoding is transparent either way.
package codec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const (
	// marker prefixes compressed values in the store. Plain values that
	// happen to start with it would be misread, so Encode compresses
	// those unconditionally.
	marker = "zs64:"

	// Threshold is the value size in bytes above which Encode compresses.
	Threshold = 1024
)

var enc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
var dec, _ = zstd.NewReader(nil)

// Encode returns the wire form of a setting value.
func Encode(v string) string {
	if len(v) <= Threshold && !strings.HasPrefix(v, marker) {
		return v
	}
	b := enc.EncodeAll([]byte(v), make([]byte, 0, len(v)))
	return marker + base64.RawURLEncoding.EncodeToString(b)
}

// Decode returns the original value from its wire form.
func Decode(v string) (string, error) {
	if !strings.HasPrefix(v, marker) {
		return v, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(v[len(marker):])
	if err != nil {
		return "", fmt.Errorf("setting value base64: %w", err)
	}
	out, err := dec.DecodeAll(b, nil)
	if err != nil {
		return "", fmt.Errorf("setting value zstd: %w", err)
	}
	return string(out), nil
}
