// Package compress handles the encoding of the vendored usb.ids snapshot.
//
// Snapshots are self-describing: a zstd or lz4 frame is recognized by its
// magic, anything else is treated as plain text. This lets the embedded file
// be checked in compressed or uncompressed without side metadata.
package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type selects the snapshot encoding.
type Type uint8

const (
	// None stores the snapshot as plain text.
	None Type = iota
	// ZSTD stores the snapshot as a zstd frame (better ratio).
	ZSTD
	// LZ4 stores the snapshot as an lz4 frame (faster decode).
	LZ4
)

// String returns the name used by tooling flags ("none", "zstd", "lz4").
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case ZSTD:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// TypeByName returns the Type for a tooling flag value.
func TypeByName(name string) (Type, bool) {
	switch name {
	case "none", "":
		return None, true
	case "zstd":
		return ZSTD, true
	case "lz4":
		return LZ4, true
	default:
		return None, false
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect sniffs the frame magic of an encoded snapshot.
func Detect(data []byte) Type {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return ZSTD
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// Compress encodes data with the given type.
func Compress(data []byte, t Type) ([]byte, error) {
	switch t {
	case None:
		return data, nil
	case ZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("compress: lz4: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("compress: lz4: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("compress: unknown type %d", t)
	}
}

// Decompress decodes an encoded snapshot, sniffing the frame type.
func Decompress(data []byte) ([]byte, error) {
	switch Detect(data) {
	case ZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
		return out, nil
	case LZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("compress: lz4: %w", err)
		}
		return out, nil
	default:
		return data, nil
	}
}
