package table

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Scheme prefixes sources stored in a bucket: s3://<bucket>/<key>.
const S3Scheme = "s3://"

// ErrNoObjectStore is returned when an s3:// source is requested but no
// object store is configured.
var ErrNoObjectStore = errors.New("s3 source not configured")

// ObjectGetter is the part of the S3 client the loader needs. *s3.S3
// satisfies it.
type ObjectGetter interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// S3Loader streams a delimited object through a CSVLoader.
type S3Loader struct {
	client ObjectGetter
	csv    *CSVLoader
}

// NewS3Loader returns a loader that fetches objects with client and parses
// them with csv. A nil client rejects every source with ErrNoObjectStore.
func NewS3Loader(client ObjectGetter, csv *CSVLoader) *S3Loader {
	return &S3Loader{client: client, csv: csv}
}

// Load fetches and parses "s3://<bucket>/<key>".
func (l *S3Loader) Load(ctx context.Context, source string) (*Table, error) {
	if l == nil || l.client == nil {
		return nil, ErrNoObjectStore
	}

	bucket, key, err := parseS3Location(source)
	if err != nil {
		return nil, err
	}

	out, err := l.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && (aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == s3.ErrCodeNoSuchBucket) {
			return nil, fmt.Errorf("%s: %w", source, os.ErrNotExist)
		}
		return nil, fmt.Errorf("get %s: %w", source, err)
	}
	defer out.Body.Close()

	limit := l.csv.maxSize()
	if size := aws.Int64Value(out.ContentLength); size > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, size, limit)
	}

	return l.csv.Read(ctx, path.Base(key), out.Body)
}

// parseS3Location splits "s3://bucket/key" into its bucket and key.
func parseS3Location(source string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(source, S3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("invalid s3 location %q: want s3://<bucket>/<key>", source)
	}
	return bucket, key, nil
}
