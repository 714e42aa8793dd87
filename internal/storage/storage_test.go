package storage

import (
	"bytes"
	"io"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallGIF is a 2x1 gif.
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestSniffImage(t *testing.T) {
	t.Run("GIF принимается", func(t *testing.T) {
		reader, size, contentType, err := SniffImage(bytes.NewReader(smallGIF))

		require.NoError(t, err)
		assert.Equal(t, "image/gif", contentType)
		assert.Equal(t, int64(len(smallGIF)), size)

		replay, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, smallGIF, replay)
	})

	t.Run("Текстовый файл отклоняется", func(t *testing.T) {
		_, _, _, err := SniffImage(strings.NewReader("просто текст"))

		assert.ErrorContains(t, err, "не является изображением")
	})
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		expectedExt string
	}{
		{"GIF", "image/gif", ".gif"},
		{"PNG", "image/png", ".png"},
		{"JPEG", "image/jpeg", ".jpg"},
		{"Неизвестный тип", "application/x-unknown-type", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := ObjectName(tt.contentType)

			assert.True(t, strings.HasPrefix(name, ImagePrefix))
			assert.Equal(t, tt.expectedExt, path.Ext(name))
			assert.NotEqual(t, name, ObjectName(tt.contentType))
		})
	}
}

func TestObjectName_IgnoresClientFileName(t *testing.T) {
	// a GIF uploaded as page.html
	_, _, contentType, err := SniffImage(bytes.NewReader(smallGIF))
	require.NoError(t, err)

	name := ObjectName(contentType)

	assert.Equal(t, ".gif", path.Ext(name))
	assert.NotContains(t, name, ".html")
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name       string
		base       string
		objectName string
		expected   string
	}{
		{"Обычный адрес", "http://localhost:9000", "posts/a.gif", "http://localhost:9000/media/posts/a.gif"},
		{"Слэш в конце", "https://cdn.example.com/", "posts/a.gif", "https://cdn.example.com/media/posts/a.gif"},
		{"Пост без картинки", "http://localhost:9000", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PublicURL(tt.base, "media", tt.objectName))
		})
	}
}
