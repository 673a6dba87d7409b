package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Open(ctx, "missing.csv")
	require.ErrorIs(t, err, ErrNotFound)

	data := []byte("title,category\nAtom,\"['Physics']\"\n")
	require.NoError(t, store.Put(ctx, "b/title_with_category.csv", data))
	data[0] = 'X'

	got, err := ReadAll(ctx, store, "b/title_with_category.csv")
	require.NoError(t, err)
	assert.Equal(t, "title", string(got[:5]))

	w, err := store.Create(ctx, "a/final.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("title\n"))
	require.NoError(t, err)
	_, err = store.Open(ctx, "a/final.csv")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/final.csv", "b/title_with_category.csv"}, names)
	names, err = store.List(ctx, "b/")
	require.NoError(t, err)
	assert.Equal(t, []string{"b/title_with_category.csv"}, names)

	blob, err := store.Open(ctx, "a/final.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(6), blob.Size())
	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 4)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)
	rc, err := blob.(Ranger).ReadRange(ctx, 0, 5)
	require.NoError(t, err)
	head, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "title", string(head))
	require.NoError(t, blob.Close())

	require.NoError(t, store.Delete(ctx, "a/final.csv"))
	require.NoError(t, store.Delete(ctx, "a/final.csv"))
	_, err = store.Open(ctx, "a/final.csv")
	assert.ErrorIs(t, err, ErrNotFound)
}
