package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypeFor(t *testing.T) {
	contentType, err := ContentTypeFor("labs.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)

	contentType, err = ContentTypeFor("scan.JPG")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	_, err = ContentTypeFor("malware.exe")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")

	key := objectKey(id, "blood work 2026.pdf")
	assert.Equal(t, "a1/a1b2c3d4-0000-0000-0000-000000000000_blood_work_2026.pdf", key)

	// path separators in the filename never escape the object prefix
	key = objectKey(id, "../escape/attempt.txt")
	assert.NotContains(t, key[3:], "/")
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	recordID := uuid.New()
	content := []byte("systolic 120, diastolic 80")

	path, err := store.Upload(ctx, recordID, "vitals.txt", bytes.NewReader(content))
	require.NoError(t, err)
	require.NotEmpty(t, path)

	reader, err := store.Download(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, store.Delete(ctx, path))
	_, err = store.Download(ctx, path)
	assert.Error(t, err)

	// deleting again is a no-op
	assert.NoError(t, store.Delete(ctx, path))
}
