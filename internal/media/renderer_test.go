package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeJPEG encodes a width×height gradient as JPEG bytes.
func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func decodeVariant(t *testing.T, v Variant) image.Image {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(v.Bytes))
	require.NoError(t, err, "variant %s should decode", v.Profile)
	require.Equal(t, "webp", format)
	return img
}

func TestRenderer_ProducesFullVariantSet(t *testing.T) {
	r := NewRenderer(DefaultSpecs())
	src := makeJPEG(t, 2000, 1000)

	variants, err := r.Render(src, "1700000000-abc123")
	require.NoError(t, err)
	require.Len(t, variants, 5)

	specs := DefaultSpecs()
	for _, v := range variants {
		assert.Equal(t, OutputContentType, v.ContentType)
		assert.Equal(t, VariantKey(v.Profile, "1700000000-abc123"), v.Key)
		assert.NotEmpty(t, v.Bytes)

		img := decodeVariant(t, v)
		spec := specs[v.Profile]
		if spec.MaxWidth > 0 {
			assert.LessOrEqual(t, img.Bounds().Dx(), spec.MaxWidth, "%s width", v.Profile)
			assert.LessOrEqual(t, img.Bounds().Dy(), spec.MaxHeight, "%s height", v.Profile)
		} else {
			// original keeps the source dimensions
			assert.Equal(t, 2000, img.Bounds().Dx())
			assert.Equal(t, 1000, img.Bounds().Dy())
		}
	}
}

func TestRenderer_PreservesAspectRatio(t *testing.T) {
	r := NewRenderer(DefaultSpecs())
	src := makeJPEG(t, 2000, 1000)

	variants, err := r.Render(src, "1700000000-wide")
	require.NoError(t, err)

	for _, v := range variants {
		if v.Profile == ProfileOriginal {
			continue
		}
		img := decodeVariant(t, v)
		ratio := float64(img.Bounds().Dx()) / float64(img.Bounds().Dy())
		assert.InDelta(t, 2.0, ratio, 0.05, "%s aspect ratio", v.Profile)
	}
}

func TestRenderer_NeverUpscales(t *testing.T) {
	r := NewRenderer(DefaultSpecs())
	src := makeJPEG(t, 100, 100)

	variants, err := r.Render(src, "1700000000-tiny")
	require.NoError(t, err)

	for _, v := range variants {
		img := decodeVariant(t, v)
		assert.LessOrEqual(t, img.Bounds().Dx(), 100, "%s must not upscale", v.Profile)
		assert.LessOrEqual(t, img.Bounds().Dy(), 100, "%s must not upscale", v.Profile)
	}
}

func TestRenderer_UndecodableFailsWhole(t *testing.T) {
	r := NewRenderer(DefaultSpecs())

	variants, err := r.Render([]byte("definitely not an image"), "1700000000-junk")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImageDecode)
	assert.Nil(t, variants, "no partial variant set on decode failure")
}
