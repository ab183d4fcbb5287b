package input

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3iface is the minimal subset of s3 client methods we use; allows test fakes.
type s3iface interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// newS3Client constructs an s3 client; overridden in tests.
var newS3Client = func(ctx context.Context) (s3iface, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg), nil
}

// IsRemote reports whether uri names an S3 object rather than a local file.
func IsRemote(uri string) bool {
	return strings.HasPrefix(uri, "s3://")
}

// Open returns a reader for the CSV input: a plain path, file://path, or
// s3://bucket/key.
func Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if !IsRemote(uri) {
		return os.Open(strings.TrimPrefix(uri, "file://"))
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	cl, err := newS3Client(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := cl.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.Host),
		Key:    aws.String(strings.TrimPrefix(u.Path, "/")),
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
