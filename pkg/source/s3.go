package source

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/domkit/internal/errors"
)

// ObjectGetter is the subset of *s3.Client used for s3:// URIs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client builds an unsigned S3 client for public buckets. endpoint
// overrides the AWS endpoint (for S3-compatible stores) and switches to
// path-style addressing; leave it empty for AWS.
func NewS3Client(region, endpoint string) *s3.Client {
	return s3.New(s3.Options{
		Region:       region,
		Credentials:  aws.AnonymousCredentials{},
		BaseEndpoint: optional(endpoint),
		UsePathStyle: endpoint != "",
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

// parseS3 splits s3://bucket/key.
func parseS3(u *url.URL) (bucket, key string, ok bool) {
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	return bucket, key, bucket != "" && key != ""
}

func (l *Loader) openS3(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	if l.s3 == nil {
		return nil, errors.New("E040").
			WithSubject(u.String()).
			WithDetail("s3:// URIs need a Loader created with WithS3Client.")
	}
	bucket, key, ok := parseS3(u)
	if !ok {
		return nil, errors.New("E041").
			WithSubject(u.String()).
			WithDetail("S3 URIs have the form s3://bucket/key.")
	}

	out, err := l.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("E041").WithSubject(u.String()).Wrap(err)
	}
	if ct := aws.ToString(out.ContentType); ct != "" && !strings.Contains(ct, "html") && !strings.HasPrefix(ct, "text/") {
		l.logger.Warn("s3 object is not html", "uri", u.String(), "content_type", ct)
	}
	return out.Body, nil
}
