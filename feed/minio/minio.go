// Package minio provides a feed.Source backed by MinIO or any S3-compatible
// object store holding a mirror of the USB ID Repository.
package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/usbids/feed"
)

// Source fetches a usb.ids snapshot object from an S3-compatible store.
type Source struct {
	client *minio.Client
	bucket string
	object string
}

// New creates a source reading the given object.
func New(client *minio.Client, bucket, object string) *Source {
	return &Source{client: client, bucket: bucket, object: object}
}

// Name implements feed.Source.
func (s *Source) Name() string {
	return fmt.Sprintf("minio://%s/%s", s.bucket, s.object)
}

// Fetch implements feed.Source.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.mapErr(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return data, nil
}

func (s *Source) mapErr(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NotFound" || resp.Code == "NoSuchBucket" {
		return fmt.Errorf("%w: %v", feed.ErrNotFound, err)
	}
	return err
}
