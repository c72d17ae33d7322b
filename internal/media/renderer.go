package media

import (
	"bytes"
	"fmt"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// Register the WebP decoder so WebP sources round-trip through the pipeline.
	_ "golang.org/x/image/webp"
)

// Variant is one rendered rendition of a source image, ready for upload.
type Variant struct {
	Profile     Profile
	Key         string
	Bytes       []byte
	ContentType string
}

// Renderer produces the full rendition set for a source image.
type Renderer struct {
	specs map[Profile]ProfileSpec
}

// NewRenderer returns a Renderer using the given size/quality table.
func NewRenderer(specs map[Profile]ProfileSpec) *Renderer {
	return &Renderer{specs: specs}
}

// Render decodes src once and produces one WebP rendition per profile, keyed
// under products/<profile>/<stem>.webp. Resizes preserve aspect ratio and
// never upscale beyond the source's native dimensions; the original profile
// only re-encodes at its quality setting.
//
// If src cannot be decoded, Render fails as a whole: no partial variant set
// is ever returned.
func (r *Renderer) Render(src []byte, stem string) ([]Variant, error) {
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	variants := make([]Variant, 0, len(Profiles()))
	for _, p := range Profiles() {
		spec := r.specs[p]
		out := img
		if spec.MaxWidth > 0 && spec.MaxHeight > 0 {
			out = imaging.Fit(img, spec.MaxWidth, spec.MaxHeight, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := webp.Encode(&buf, out, &webp.Options{Quality: spec.Quality}); err != nil {
			return nil, fmt.Errorf("encode %s rendition: %w", p, err)
		}

		variants = append(variants, Variant{
			Profile:     p,
			Key:         VariantKey(p, stem),
			Bytes:       buf.Bytes(),
			ContentType: OutputContentType,
		})
	}
	return variants, nil
}
