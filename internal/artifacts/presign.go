// Package artifacts turns the registry's internal s3:// artifact locations
// into browser-usable links. Stage artifacts live in private buckets; the
// presigner hands out time-limited GET URLs so the dashboard can link them
// without making the buckets public.
package artifacts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultExpiry bounds how long a presigned artifact link stays valid.
const DefaultExpiry = 15 * time.Minute

// Presigner signs GET requests for s3:// artifact URIs.
type Presigner struct {
	presign *s3.PresignClient
	expiry  time.Duration
}

// NewPresigner wraps an S3 client. A non-positive expiry falls back to
// DefaultExpiry.
func NewPresigner(client *s3.Client, expiry time.Duration) *Presigner {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Presigner{presign: s3.NewPresignClient(client), expiry: expiry}
}

// Open constructs a presigner from the default AWS configuration chain.
func Open(ctx context.Context, region string) (*Presigner, error) {
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewPresigner(s3.NewFromConfig(awsCfg), 0), nil
}

// PresignGet returns a time-limited GET URL for an s3:// artifact location.
func (p *Presigner) PresignGet(ctx context.Context, uri string) (string, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return "", err
	}
	out, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key},
		func(po *s3.PresignOptions) { po.Expires = p.expiry })
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", uri, err)
	}
	return out.URL, nil
}

// ParseS3URI splits an s3://bucket/key location into bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 uri: %q", uri)
	}
	return bucket, key, nil
}
