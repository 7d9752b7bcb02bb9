// Package source opens draw history datasets from local paths or bucket URLs.
//
// A location is either a plain file path or a URL understood by gocloud.dev:
//
//	draws.tsv
//	file:///var/lib/lotto/draws.tsv
//	s3://my-bucket/history/draws.tsv?region=eu-west-1
//	gs://my-bucket/draws.tsv
//
// Every failure wraps tally.ErrFileAccess.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"

	"github.com/ccollicutt/lottostat/pkg/tally"
)

// ErrNotRegular is returned for paths that are directories, devices, etc.
var ErrNotRegular = errors.New("not a regular file")

// Dataset is an open draw history stream with a known size.
type Dataset struct {
	// Name identifies the dataset (path or URL) for reporting.
	Name string

	// Size is the total size in bytes.
	Size int64

	reader io.ReadCloser
	bucket *blob.Bucket // non-nil only when the bucket is owned by the Dataset
}

// Read implements io.Reader.
func (d *Dataset) Read(p []byte) (int, error) {
	return d.reader.Read(p)
}

// Close releases the stream and any bucket opened for it.
func (d *Dataset) Close() error {
	err := d.reader.Close()
	if d.bucket != nil {
		if berr := d.bucket.Close(); err == nil {
			err = berr
		}
		d.bucket = nil
	}
	return err
}

// IsURL reports whether location should be opened through a bucket.
func IsURL(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	// single letters are Windows drive letters, not schemes
	return len(u.Scheme) > 1
}

// Open opens the dataset at location.
func Open(ctx context.Context, location string) (*Dataset, error) {
	if !IsURL(location) {
		return OpenFile(location)
	}

	bucketURL, key, err := splitLocation(location)
	if err != nil {
		return nil, err
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("%w: opening bucket %s: %w", tally.ErrFileAccess, bucketURL, err)
	}

	ds, err := OpenFromBucket(ctx, bucket, key)
	if err != nil {
		_ = bucket.Close()
		return nil, err
	}
	ds.Name = location
	ds.bucket = bucket

	return ds, nil
}

// OpenFile opens a local file. It must exist and be a regular file.
func OpenFile(filePath string) (*Dataset, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tally.ErrFileAccess, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s: %w", tally.ErrFileAccess, filePath, ErrNotRegular)
	}

	f, err := os.Open(filePath) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tally.ErrFileAccess, err)
	}

	return &Dataset{
		Name:   filePath,
		Size:   info.Size(),
		reader: f,
	}, nil
}

// OpenFromBucket opens key from an existing bucket handle.
// The bucket stays owned by the caller.
func OpenFromBucket(ctx context.Context, bucket *blob.Bucket, key string) (*Dataset, error) {
	attrs, err := bucket.Attributes(ctx, key)
	if err != nil {
		return nil, bucketError(key, err)
	}

	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, bucketError(key, err)
	}

	return &Dataset{
		Name:   key,
		Size:   attrs.Size,
		reader: r,
	}, nil
}

func bucketError(key string, err error) error {
	if gcerrors.Code(err) == gcerrors.NotFound {
		return fmt.Errorf("%w: %s: object not found", tally.ErrFileAccess, key)
	}
	return fmt.Errorf("%w: %s: %w", tally.ErrFileAccess, key, err)
}

// splitLocation separates a dataset URL into a bucket URL and an object key.
// For file:// URLs the bucket is the containing directory.
func splitLocation(location string) (string, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid location %q: %w", tally.ErrFileAccess, location, err)
	}

	var key string
	if u.Scheme == "file" {
		dir, base := path.Split(u.Path)
		key = base
		u.Path = path.Clean(dir)
	} else {
		key = strings.TrimPrefix(u.Path, "/")
		u.Path = ""
	}
	u.RawPath = ""

	if key == "" {
		return "", "", fmt.Errorf("%w: location %q does not name an object", tally.ErrFileAccess, location)
	}

	return u.String(), key, nil
}
