// Package sink persists the array produced by a run, either as a local file
// or as an object in a gocloud blob bucket.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets
)

const contentType = "application/json"

// Sink writes the final document somewhere and releases what it holds on Close.
type Sink interface {
	Write(ctx context.Context, data []byte) error
	Location() string
	Close() error
}

// Open returns a BucketSink when bucketURI is set, otherwise a FileSink for dir/name.
func Open(ctx context.Context, dir, name, bucketURI string) (Sink, error) {
	if name == "" {
		return nil, errors.New("output name cannot be empty")
	}
	if bucketURI != "" {
		return OpenBucket(ctx, bucketURI, name)
	}
	return NewFileSink(dir, name), nil
}

// FileSink writes the document to a file on the local filesystem.
type FileSink struct {
	path string
}

// NewFileSink creates a FileSink for dir/name. An empty dir means the working directory.
func NewFileSink(dir, name string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{path: filepath.Join(dir, name)}
}

// Write creates or truncates the file and writes data to it. The file handle
// is closed on every path; a failed close is reported as a write failure.
func (s *FileSink) Write(ctx context.Context, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create '%s': %w", s.path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close '%s': %w", s.path, closeErr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write '%s': %w", s.path, err)
	}
	return nil
}

// Location implements Sink.
func (s *FileSink) Location() string { return s.path }

// Close implements Sink. A FileSink holds nothing between writes.
func (s *FileSink) Close() error { return nil }

// BucketSink writes the document as a single object in a blob bucket.
type BucketSink struct {
	uri    string
	key    string
	bucket *blob.Bucket
}

// OpenBucket opens the bucket at uri (file://, s3:// or mem://) for writing key.
func OpenBucket(ctx context.Context, uri, key string) (*BucketSink, error) {
	bucket, err := blob.OpenBucket(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("open bucket '%s': %w", uri, err)
	}
	return &BucketSink{uri: uri, key: key, bucket: bucket}, nil
}

// Write implements Sink.
func (s *BucketSink) Write(ctx context.Context, data []byte) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, s.key, data, opts); err != nil {
		return fmt.Errorf("write '%s' to bucket '%s': %w", s.key, s.uri, err)
	}
	return nil
}

// Location implements Sink.
func (s *BucketSink) Location() string { return fmt.Sprintf("%s (key %s)", s.uri, s.key) }

// Bucket exposes the underlying bucket, mainly for reading the object back.
func (s *BucketSink) Bucket() *blob.Bucket { return s.bucket }

// Close implements Sink.
func (s *BucketSink) Close() error { return s.bucket.Close() }
