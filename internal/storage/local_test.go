package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumenstore.com/app/internal/config"
)

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/")
	ctx := context.Background()

	res, err := l.Put(ctx, strings.NewReader("png-bytes"), PutInput{Filename: "Swatch.PNG"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	raw, err := os.ReadFile(filepath.Join(dir, res.Key))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(raw))

	require.NoError(t, l.Delete(ctx, "../../"+res.Key))
	_, err = os.Stat(filepath.Join(dir, res.Key))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, l.Delete(ctx, res.Key), "deleting twice is not an error")
}

func TestLocalRejectsNonImages(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	_, err := l.Put(context.Background(), strings.NewReader("#!/bin/sh"), PutInput{Filename: "run.sh"})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestFromConfig(t *testing.T) {
	s, err := FromConfig(context.Background(), config.StorageConfig{Driver: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = FromConfig(context.Background(), config.StorageConfig{Driver: "s3"})
	assert.Error(t, err)

	_, err = FromConfig(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
