package source

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	"github.com/ccollicutt/lottostat/pkg/tally"
)

const content = "header\n2024-01-15\t1\t1\t2\t3\t4\t5\t6\t7\t8\t9\t10\n"

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draws.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpenFile(t *testing.T) {
	path := writeDataset(t)

	ds, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, path, ds.Name)
	assert.Equal(t, int64(len(content)), ds.Size)

	data, err := io.ReadAll(ds)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.tsv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, tally.ErrFileAccess)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenFile_Directory(t *testing.T) {
	_, err := OpenFile(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, tally.ErrFileAccess)
	assert.ErrorIs(t, err, ErrNotRegular)
}

func TestOpenFile_EmptyFileHasZeroSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.tsv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	ds, err := OpenFile(path)
	require.NoError(t, err)
	defer ds.Close()
	assert.Zero(t, ds.Size)
}

func TestOpen_FileURL(t *testing.T) {
	path := writeDataset(t)
	location := (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()

	ds, err := Open(context.Background(), location)
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, location, ds.Name)
	assert.Equal(t, int64(len(content)), ds.Size)

	data, err := io.ReadAll(ds)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestOpen_FileURLMissingObject(t *testing.T) {
	location := (&url.URL{Scheme: "file", Path: filepath.ToSlash(t.TempDir()) + "/nope.tsv"}).String()

	_, err := Open(context.Background(), location)
	require.Error(t, err)
	assert.ErrorIs(t, err, tally.ErrFileAccess)
}

func TestOpen_UnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), "bogus://bucket/draws.tsv")
	require.Error(t, err)
	assert.ErrorIs(t, err, tally.ErrFileAccess)
}

func TestOpenFromBucket(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	require.NoError(t, bucket.WriteAll(ctx, "history/draws.tsv", []byte(content), nil))

	ds, err := OpenFromBucket(ctx, bucket, "history/draws.tsv")
	require.NoError(t, err)

	assert.Equal(t, int64(len(content)), ds.Size)
	data, err := io.ReadAll(ds)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	require.NoError(t, ds.Close())

	// bucket is still usable: the dataset did not own it
	_, err = bucket.Attributes(ctx, "history/draws.tsv")
	assert.NoError(t, err)
}

func TestOpenFromBucket_NotFound(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	_, err := OpenFromBucket(context.Background(), bucket, "missing.tsv")
	require.Error(t, err)
	assert.ErrorIs(t, err, tally.ErrFileAccess)
	assert.Contains(t, err.Error(), "not found")
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		location string
		want     bool
	}{
		{"draws.tsv", false},
		{"/var/lib/draws.tsv", false},
		{`C:\data\draws.tsv`, false},
		{"file:///tmp/draws.tsv", true},
		{"s3://bucket/draws.tsv", true},
		{"gs://bucket/draws.tsv", true},
		{"mem://draws.tsv", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsURL(tt.location), tt.location)
	}
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		location   string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{
			location:   "s3://lotto/history/draws.tsv?region=eu-west-1",
			wantBucket: "s3://lotto?region=eu-west-1",
			wantKey:    "history/draws.tsv",
		},
		{
			location:   "gs://lotto/draws.tsv",
			wantBucket: "gs://lotto",
			wantKey:    "draws.tsv",
		},
		{
			location:   "file:///var/lib/lotto/draws.tsv",
			wantBucket: "file:///var/lib/lotto",
			wantKey:    "draws.tsv",
		},
		{
			location: "s3://lotto",
			wantErr:  true,
		},
		{
			location: "file:///var/lib/lotto/",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			bucket, key, err := splitLocation(tt.location)
			if tt.wantErr {
				assert.ErrorIs(t, err, tally.ErrFileAccess)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
