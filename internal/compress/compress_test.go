package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("1d6b  Linux Foundation\n\t0002  2.0 root hub\n"), 200)

	for _, typ := range []Type{None, ZSTD, LZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			encoded, err := Compress(data, typ)
			require.NoError(t, err)
			assert.Equal(t, typ, Detect(encoded))

			decoded, err := Decompress(encoded)
			require.NoError(t, err)
			assert.Equal(t, data, decoded)
		})
	}
}

func TestCompressedSmaller(t *testing.T) {
	data := bytes.Repeat([]byte("0123  Some Vendor Name, Inc.\n"), 1000)

	for _, typ := range []Type{ZSTD, LZ4} {
		encoded, err := Compress(data, typ)
		require.NoError(t, err)
		assert.Less(t, len(encoded), len(data), typ.String())
	}
}

func TestDetectPlainText(t *testing.T) {
	assert.Equal(t, None, Detect([]byte("# usb.ids\n1d6b  Linux Foundation\n")))
	assert.Equal(t, None, Detect(nil))
}

func TestDecompressPlainPassthrough(t *testing.T) {
	data := []byte("1d6b  Linux Foundation\n")
	out, err := Decompress(data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestTypeByName(t *testing.T) {
	for name, want := range map[string]Type{"none": None, "": None, "zstd": ZSTD, "lz4": LZ4} {
		got, ok := TypeByName(name)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := TypeByName("gzip")
	assert.False(t, ok)
}

func TestDecompressCorruptFrame(t *testing.T) {
	// A valid magic followed by garbage must fail, not pass through.
	corrupt := append([]byte{0x28, 0xb5, 0x2f, 0xfd}, []byte("garbage")...)
	_, err := Decompress(corrupt)
	assert.Error(t, err)
}
