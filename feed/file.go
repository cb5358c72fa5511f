package feed

import (
	"context"
	"fmt"
	"os"
)

// File reads a snapshot from the local filesystem. Used by cmd/usbidsgen for
// pre-downloaded files and by tests.
type File struct {
	path string
}

// NewFile creates a File source for the given path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Name implements Source.
func (f *File) Name() string { return "file://" + f.path }

// Fetch implements Source.
func (f *File) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, f.path)
	}
	return data, err
}
