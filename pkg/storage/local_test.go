package storage

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awsConfigForTest() aws.Config {
	return aws.Config{Region: "us-east-1"}
}

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "cache/entry.json", []byte(`{"a":1}`)))

	data, err := store.Get(ctx, "cache/entry.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)

	keys, err := store.List(ctx, "cache")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache/entry.json"}, keys)
}

func TestLocalStoreGetMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, "k"))
}

func TestLocalStoreListEmptyPrefix(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	keys, err := store.List(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFromURL(t *testing.T) {
	local := FromURL("/tmp/artifacts", awsConfigForTest())
	_, ok := local.(*LocalStore)
	assert.True(t, ok, "plain path should pick the local backend")

	remote := FromURL("s3://bucket/prefix/x", awsConfigForTest())
	s3store, ok := remote.(*S3Store)
	require.True(t, ok, "s3 URL should pick the S3 backend")
	assert.Equal(t, "bucket", s3store.Bucket)
	assert.Equal(t, "prefix/x", s3store.Prefix)
}
