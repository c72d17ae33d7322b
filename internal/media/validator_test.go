package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxFileSize = int64(10 << 20)

func TestValidator_SizeBoundary(t *testing.T) {
	v := NewValidator(testMaxFileSize)

	t.Run("exactly at limit is valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(testMaxFileSize, "image/png"))
	})

	t.Run("one byte over limit is invalid", func(t *testing.T) {
		err := v.Validate(testMaxFileSize+1, "image/png")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.Contains(t, err.Error(), "10 MiB limit")
	})

	t.Run("11 MB file is invalid", func(t *testing.T) {
		err := v.Validate(11<<20, "image/png")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.Contains(t, err.Error(), "10 MiB limit")
	})
}

func TestValidator_ContentTypes(t *testing.T) {
	v := NewValidator(testMaxFileSize)

	allowed := []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif"}
	for _, ct := range allowed {
		t.Run("allows "+ct, func(t *testing.T) {
			assert.NoError(t, v.Validate(1024, ct))
		})
	}

	rejected := []string{"image/bmp", "image/tiff", "video/mp4", "text/html", "application/octet-stream"}
	for _, ct := range rejected {
		t.Run("rejects "+ct, func(t *testing.T) {
			err := v.Validate(1024, ct)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedType)
			assert.Contains(t, err.Error(), "allowed")
		})
	}

	t.Run("strips media type parameters", func(t *testing.T) {
		assert.NoError(t, v.Validate(1024, "image/jpeg; charset=utf-8"))
	})

	t.Run("rejects garbage content type", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(1024, ";;"), ErrUnsupportedType)
	})
}
