package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	payload := []byte("binary image content")
	encoded := base64.StdEncoding.EncodeToString(payload)

	t.Run("decodes png", func(t *testing.T) {
		img, err := DecodeBase64Image("data:image/png;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, "photo.png", img.Name)
		assert.Equal(t, "image/png", img.ContentType)
		assert.Equal(t, payload, img.Data)
	})

	t.Run("jpg reported as jpeg content type", func(t *testing.T) {
		img, err := DecodeBase64Image("data:image/jpg;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, "photo.jpg", img.Name)
		assert.Equal(t, "image/jpeg", img.ContentType)
	})

	t.Run("rejects missing data uri prefix", func(t *testing.T) {
		_, err := DecodeBase64Image("image/png;base64," + encoded)
		assert.ErrorIs(t, err, ErrInvalidImageEncoding)
	})

	t.Run("rejects missing separator", func(t *testing.T) {
		_, err := DecodeBase64Image("data:image/png," + encoded)
		assert.ErrorIs(t, err, ErrInvalidImageEncoding)
	})

	t.Run("rejects repeated separator", func(t *testing.T) {
		_, err := DecodeBase64Image("data:image/png;base64,;base64," + encoded)
		assert.ErrorIs(t, err, ErrInvalidImageEncoding)
	})

	t.Run("rejects unsupported format", func(t *testing.T) {
		_, err := DecodeBase64Image("data:image/webp;base64," + encoded)
		assert.ErrorIs(t, err, ErrUnsupportedImageFormat)
	})

	t.Run("rejects invalid base64 payload", func(t *testing.T) {
		_, err := DecodeBase64Image("data:image/png;base64,not!!valid##base64")
		assert.ErrorIs(t, err, ErrInvalidImageData)
	})
}

func TestLocalImageStoreSave(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	img, err := DecodeBase64Image(testImageData())
	require.NoError(t, err)

	url, err := store.Save(context.Background(), img)
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:8080/media/")
	assert.Contains(t, url, "photo.png")
}
