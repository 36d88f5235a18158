package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-key-for-pagination-12345678")

func TestCursorEncoder(t *testing.T) {
	encoder, err := NewCursorEncoder(testKey)
	require.NoError(t, err)

	t.Run("encode and decode offset cursor", func(t *testing.T) {
		original := CreateOffsetCursor(100)

		encoded, err := encoder.EncodeCursor(original)
		require.NoError(t, err)
		assert.NotEmpty(t, encoded)

		decoded, err := encoder.DecodeCursor(encoded)
		require.NoError(t, err)
		assert.Equal(t, original.Offset, decoded.Offset)
		assert.WithinDuration(t, original.Timestamp, decoded.Timestamp, time.Second)
	})

	t.Run("invalid key length", func(t *testing.T) {
		_, err := NewCursorEncoder([]byte("short-key"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 bytes")
	})

	t.Run("invalid encoded cursor", func(t *testing.T) {
		_, err := encoder.DecodeCursor("invalid-base64")
		require.Error(t, err)
	})

	t.Run("tampered cursor", func(t *testing.T) {
		other, err := NewCursorEncoder([]byte("another-key-for-pagination-00000"))
		require.NoError(t, err)
		token, err := other.EncodeCursor(CreateOffsetCursor(5))
		require.NoError(t, err)

		_, err = encoder.DecodeCursor(token)
		require.Error(t, err)
	})

	t.Run("cursor expiration", func(t *testing.T) {
		cursor := &Cursor{
			Offset:    10,
			Timestamp: time.Now().Add(-25 * time.Hour),
		}

		assert.True(t, cursor.IsExpired(24*time.Hour))
		assert.False(t, cursor.IsExpired(48*time.Hour))
	})
}

func TestCalculateOffset(t *testing.T) {
	encoder, err := NewCursorEncoder(testKey)
	require.NoError(t, err)

	t.Run("from token", func(t *testing.T) {
		token, err := encoder.EncodeCursor(CreateOffsetCursor(50))
		require.NoError(t, err)

		offset, err := CalculateOffset(encoder, token, 0, DefaultMaxAge)
		require.NoError(t, err)
		assert.Equal(t, 50, offset)
	})

	t.Run("empty token", func(t *testing.T) {
		offset, err := CalculateOffset(encoder, "", 10, DefaultMaxAge)
		require.NoError(t, err)
		assert.Equal(t, 10, offset)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := encoder.EncodeCursor(&Cursor{
			Offset:    50,
			Timestamp: time.Now().Add(-25 * time.Hour),
		})
		require.NoError(t, err)

		_, err = CalculateOffset(encoder, token, 0, DefaultMaxAge)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})
}
