package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaPart(t *testing.T) {
	t.Run("plain text is not media", func(t *testing.T) {
		part, ok, err := MediaPart("a todo app for students")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, part)
	})

	t.Run("decodes image data uri", func(t *testing.T) {
		part, ok, err := MediaPart("data:image/png;base64,aGVsbG8=")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "image/png", part.InlineData.MIMEType)
		assert.Equal(t, []byte("hello"), part.InlineData.Data)
	})

	t.Run("decodes pdf data uri", func(t *testing.T) {
		part, ok, err := MediaPart("data:application/pdf;base64,cGRm")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "application/pdf", part.InlineData.MIMEType)
	})

	t.Run("data uri without base64 payload fails", func(t *testing.T) {
		_, _, err := MediaPart("data:image/png,rawbytes")
		assert.Error(t, err)
	})

	t.Run("bad base64 fails", func(t *testing.T) {
		_, _, err := MediaPart("data:image/png;base64,%%%")
		assert.Error(t, err)
	})
}
