package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/hupe1980/usbids"
	"github.com/hupe1980/usbids/internal/compress"
)

const sampleDoc = "# Version: 2025.07.20\n" +
	"# Date:    2025-07-20 20:34:04\n" +
	"1d6b  Linux Foundation\n" +
	"\t0002  2.0 root hub\n" +
	"\t0003  3.0 root hub\n" +
	"C 03  Human Interface Device\n"

func TestValidate(t *testing.T) {
	snap, err := Validate([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "2025.07.20", snap.Version)
	assert.Equal(t, "2025-07-20 20:34:04", snap.Date)
	assert.Equal(t, 1, snap.Vendors)
	assert.Equal(t, 2, snap.Devices)
	assert.Equal(t, 1, snap.Classes)

	v, ok := snap.DB.FindVendor(0x1d6b)
	require.True(t, ok)
	assert.Equal(t, "Linux Foundation", v.Name())
}

func TestValidateRejectsMalformed(t *testing.T) {
	_, err := Validate([]byte("1d6b0  Five Digit Vendor\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, usbids.ErrMalformedID)
}

func TestValidateCompressedSnapshot(t *testing.T) {
	for _, typ := range []compress.Type{compress.ZSTD, compress.LZ4} {
		encoded, err := compress.Compress([]byte(sampleDoc), typ)
		require.NoError(t, err)

		snap, err := Validate(encoded)
		require.NoError(t, err)
		assert.Equal(t, []byte(sampleDoc), snap.Data)
		assert.Equal(t, 1, snap.Vendors)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usb.ids")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	src := NewFile(path)
	assert.Equal(t, "file://"+path, src.Name())

	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(sampleDoc), data)
}

func TestFileSourceMissing(t *testing.T) {
	src := NewFile(filepath.Join(t.TempDir(), "nope.ids"))
	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL, WithLimiter(rate.NewLimiter(rate.Inf, 1)))
	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(sampleDoc), data)
}

func TestHTTPSourceRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL, WithAttempts(3), WithLimiter(rate.NewLimiter(rate.Inf, 1)))
	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(sampleDoc), data)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSourceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	src := NewHTTP(srv.URL, WithAttempts(1), WithLimiter(rate.NewLimiter(rate.Inf, 1)))
	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchFirstValidWins(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a usb.ids file"))
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleDoc))
	}))
	defer good.Close()

	snap, err := Fetch(context.Background(),
		NewHTTP(bad.URL, WithAttempts(1), WithLimiter(rate.NewLimiter(rate.Inf, 1))),
		NewHTTP(good.URL, WithAttempts(1), WithLimiter(rate.NewLimiter(rate.Inf, 1))),
	)
	require.NoError(t, err)
	assert.Equal(t, good.URL, snap.Source)
	assert.Equal(t, 1, snap.Vendors)
}

func TestFetchAllFail(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := Fetch(context.Background(),
		NewHTTP(srv.URL, WithAttempts(1), WithLimiter(rate.NewLimiter(rate.Inf, 1))),
		NewFile(filepath.Join(t.TempDir(), "missing.ids")),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchNoSources(t *testing.T) {
	_, err := Fetch(context.Background())
	assert.Error(t, err)
}
