// Package s3 provides a feed.Source backed by an S3 mirror of the USB ID
// Repository, for organizations that mirror upstream into a bucket instead
// of fetching it over the public internet.
package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/usbids/feed"
)

// Source fetches a usb.ids snapshot object from S3.
type Source struct {
	downloader *manager.Downloader
	bucket     string
	key        string
}

// New creates an S3 source using the default AWS configuration chain
// (environment, shared config, instance role).
func New(ctx context.Context, bucket, key string, optFns ...func(*config.LoadOptions) error) (*Source, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}
	return NewFromClient(s3.NewFromConfig(cfg), bucket, key), nil
}

// NewFromClient creates an S3 source from an existing client.
func NewFromClient(client *s3.Client, bucket, key string) *Source {
	return &Source{
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
		key:        key,
	}
}

// Name implements feed.Source.
func (s *Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Fetch implements feed.Source.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)
	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nf *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return nil, fmt.Errorf("%w: %v", feed.ErrNotFound, err)
		}
		return nil, err
	}
	return buf.Bytes(), nil
}
