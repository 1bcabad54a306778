package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlobStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewBlobStore(NewTestDB(t))

	data := []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0xff}
	require.NoError(t, store.Put(ctx, "proj-1", data))

	got, err := store.Get(ctx, "proj-1")
	require.NoError(t, err)
	require.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "proj-1"))
	got, err = store.Get(ctx, "proj-1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestBlobStore_MissingKeyYieldsNil(t *testing.T) {
	ctx := context.Background()
	store := NewBlobStore(NewTestDB(t))

	got, err := store.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestBlobStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewBlobStore(NewTestDB(t))

	require.NoError(t, store.Put(ctx, "proj-1", []byte("first")))
	require.NoError(t, store.Put(ctx, "proj-1", []byte("second")))

	got, err := store.Get(ctx, "proj-1")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}

func TestBlobStore_DeleteUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewBlobStore(NewTestDB(t))
	require.NoError(t, store.Delete(ctx, "nope"))
}
