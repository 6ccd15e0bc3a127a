package table

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string]string
	err     error
	gotKey  string
}

func (f *fakeObjects) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	f.gotKey = aws.StringValue(in.Bucket) + "/" + aws.StringValue(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[f.gotKey]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil)
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
	}, nil
}

func TestS3Loader_Load(t *testing.T) {
	objects := &fakeObjects{objects: map[string]string{"exports/2024/a.csv": "id;name\n1;alice\n"}}
	l := NewS3Loader(objects, NewCSVLoader(DelimiterAuto, 0))

	tbl, err := l.Load(context.Background(), "s3://exports/2024/a.csv")
	require.NoError(t, err)

	assert.Equal(t, "exports/2024/a.csv", objects.gotKey)
	assert.Equal(t, "a.csv", tbl.Name())
	assert.Equal(t, []string{"id", "name"}, tbl.Columns())
	assert.Equal(t, "alice", tbl.CellAt(0, 1))
}

func TestS3Loader_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		_, err := NewS3Loader(nil, NewCSVLoader(DelimiterAuto, 0)).Load(ctx, "s3://b/k.csv")
		assert.ErrorIs(t, err, ErrNoObjectStore)

		var nilLoader *S3Loader
		_, err = nilLoader.Load(ctx, "s3://b/k.csv")
		assert.ErrorIs(t, err, ErrNoObjectStore)
	})

	t.Run("missing key", func(t *testing.T) {
		l := NewS3Loader(&fakeObjects{}, NewCSVLoader(DelimiterAuto, 0))
		_, err := l.Load(ctx, "s3://b/missing.csv")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("transport failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		l := NewS3Loader(&fakeObjects{err: boom}, NewCSVLoader(DelimiterAuto, 0))
		_, err := l.Load(ctx, "s3://b/k.csv")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("too large", func(t *testing.T) {
		objects := &fakeObjects{objects: map[string]string{"b/k.csv": "id\n" + strings.Repeat("1\n", 100)}}
		l := NewS3Loader(objects, NewCSVLoader(DelimiterAuto, 16))
		_, err := l.Load(ctx, "s3://b/k.csv")
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("empty object", func(t *testing.T) {
		objects := &fakeObjects{objects: map[string]string{"b/k.csv": ""}}
		l := NewS3Loader(objects, NewCSVLoader(DelimiterAuto, 0))
		_, err := l.Load(ctx, "s3://b/k.csv")
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
}

func TestParseS3Location(t *testing.T) {
	tests := []struct {
		input   string
		bucket  string
		key     string
		wantErr bool
	}{
		{input: "s3://bucket/a.csv", bucket: "bucket", key: "a.csv"},
		{input: "s3://bucket/dir/a.csv", bucket: "bucket", key: "dir/a.csv"},
		{input: "s3://bucket", wantErr: true},
		{input: "s3://bucket/", wantErr: true},
		{input: "s3:///a.csv", wantErr: true},
		{input: "s3://bucket/dir/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			bucket, key, err := parseS3Location(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestResolver_Dispatch(t *testing.T) {
	objects := &fakeObjects{objects: map[string]string{"b/k.csv": "x\n1\n"}}
	r := NewResolver(NewCSVLoader(DelimiterAuto, 0), nil)

	_, err := r.Load(context.Background(), "s3://b/k.csv")
	assert.ErrorIs(t, err, ErrNoObjectStore)

	r.S3 = NewS3Loader(objects, r.CSV)
	tbl, err := r.Load(context.Background(), "s3://b/k.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, tbl.Columns())
}
