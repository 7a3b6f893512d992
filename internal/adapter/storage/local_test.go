package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	name, err := FileName("Pão Francês.JPG", now)
	require.NoError(t, err)
	assert.Equal(t, "1700000000123.jpg", name)

	_, err = FileName("script.sh", now)
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := l.Upload(context.Background(), BucketProducts, "1.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/produtos/1.png", url)

	data, err := os.ReadFile(filepath.Join(dir, BucketProducts, "1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	_, err = l.Upload(context.Background(), "outros", "1.png", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnknownBucket)
	_, err = l.Upload(context.Background(), BucketCombos, "../1.png", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidFile)
}
