// Package feed fetches usb.ids snapshots from upstream mirrors.
//
// A snapshot is only accepted after it parses completely; a mirror serving a
// truncated or corrupt file is rejected rather than propagated into the
// vendored database. The package is offline tooling for cmd/usbidsgen and is
// never linked into runtime consumers of usbids.
package feed

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/usbids"
	"github.com/hupe1980/usbids/internal/compress"
)

// ErrNotFound is returned when a mirror does not have the snapshot object.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// Source provides a candidate usb.ids snapshot from one mirror.
type Source interface {
	// Name identifies the mirror in logs and error messages.
	Name() string

	// Fetch retrieves the raw snapshot bytes. The bytes may be a zstd or
	// lz4 frame; Validate handles decoding.
	Fetch(ctx context.Context) ([]byte, error)
}

// Snapshot is a validated usb.ids revision.
type Snapshot struct {
	// Data is the plain-text snapshot, decoded if the mirror stored it
	// compressed.
	Data []byte

	// Source names the mirror the snapshot came from.
	Source string

	// Version and Date are taken from the "# Version:" and "# Date:"
	// header comments upstream maintains; empty if absent.
	Version string
	Date    string

	// DB is the parsed database, proof that the snapshot is well-formed.
	DB *usbids.Database

	// Record counts, for logging and sanity checks during regeneration.
	Vendors int
	Devices int
	Classes int
}

// Validate decodes and fully parses a candidate snapshot.
func Validate(data []byte) (*Snapshot, error) {
	raw, err := compress.Decompress(data)
	if err != nil {
		return nil, err
	}
	db, err := usbids.ParseBytes(raw)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Data: raw, DB: db}
	snap.Version, snap.Date = headerRevision(raw)
	for v := range db.Vendors() {
		snap.Vendors++
		for range v.Devices() {
			snap.Devices++
		}
	}
	for range db.Classes() {
		snap.Classes++
	}
	return snap, nil
}

// Fetch races the given mirrors and returns the first snapshot that
// validates. Remaining fetches are cancelled once a winner is in. If every
// mirror fails, the per-mirror errors are joined.
func Fetch(ctx context.Context, sources ...Source) (*Snapshot, error) {
	if len(sources) == 0 {
		return nil, errors.New("feed: no sources")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	wins := make(chan *Snapshot, len(sources))
	errs := make([]error, len(sources))

	for i, src := range sources {
		g.Go(func() error {
			data, err := src.Fetch(ctx)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", src.Name(), err)
				return nil
			}
			snap, err := Validate(data)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", src.Name(), err)
				return nil
			}
			snap.Source = src.Name()
			wins <- snap
			cancel()
			return nil
		})
	}
	_ = g.Wait()

	select {
	case snap := <-wins:
		return snap, nil
	default:
		return nil, fmt.Errorf("feed: all sources failed: %w", errors.Join(errs...))
	}
}

// headerRevision scans the leading comment block for the upstream version
// and date headers.
func headerRevision(data []byte) (version, date string) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if line != "" && !strings.HasPrefix(line, "#") {
			// Headers only appear before the first record.
			return version, date
		}
		if v, ok := strings.CutPrefix(line, "# Version:"); ok {
			version = strings.TrimSpace(v)
		}
		if d, ok := strings.CutPrefix(line, "# Date:"); ok {
			date = strings.TrimSpace(d)
		}
	}
	return version, date
}
