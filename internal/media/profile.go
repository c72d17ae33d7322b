// Package media implements the product image pipeline: validation, variant
// rendering, and upload to object storage.
package media

import "fmt"

// Profile names one rendition size/quality configuration. The set of
// profiles is closed: every upload produces exactly one rendition per
// profile listed by Profiles.
type Profile string

const (
	ProfileThumbnail Profile = "thumbnail"
	ProfileSmall     Profile = "small"
	ProfileMedium    Profile = "medium"
	ProfileLarge     Profile = "large"
	ProfileOriginal  Profile = "original"
)

// Profiles returns every rendition profile in rendering order.
func Profiles() []Profile {
	return []Profile{ProfileThumbnail, ProfileSmall, ProfileMedium, ProfileLarge, ProfileOriginal}
}

// ProfileSpec holds the bounding box and encode quality for one profile.
// A zero bounding box means "no resize" (used by the original profile).
type ProfileSpec struct {
	MaxWidth  int
	MaxHeight int
	Quality   float32
}

// DefaultSpecs returns the built-in size/quality table.
func DefaultSpecs() map[Profile]ProfileSpec {
	return map[Profile]ProfileSpec{
		ProfileThumbnail: {MaxWidth: 150, MaxHeight: 150, Quality: 60},
		ProfileSmall:     {MaxWidth: 300, MaxHeight: 300, Quality: 70},
		ProfileMedium:    {MaxWidth: 600, MaxHeight: 600, Quality: 80},
		ProfileLarge:     {MaxWidth: 1200, MaxHeight: 1200, Quality: 85},
		ProfileOriginal:  {Quality: 90},
	}
}

// All renditions are encoded to WebP regardless of the source format.
const (
	OutputContentType = "image/webp"
	outputExt         = ".webp"
	keyPrefix         = "products"
)

// VariantKey builds the storage key for one rendition:
// products/<profile>/<stem><ext>, where stem is "<unix-ts>-<baseKey>".
func VariantKey(p Profile, stem string) string {
	return fmt.Sprintf("%s/%s/%s%s", keyPrefix, p, stem, outputExt)
}

// VariantURLs holds one public URL per rendition profile. The fixed shape
// (rather than an open map) guarantees a complete set in every response.
type VariantURLs struct {
	Thumbnail string `json:"thumbnail"`
	Small     string `json:"small"`
	Medium    string `json:"medium"`
	Large     string `json:"large"`
	Original  string `json:"original"`
}

func (v *VariantURLs) set(p Profile, url string) {
	switch p {
	case ProfileThumbnail:
		v.Thumbnail = url
	case ProfileSmall:
		v.Small = url
	case ProfileMedium:
		v.Medium = url
	case ProfileLarge:
		v.Large = url
	case ProfileOriginal:
		v.Original = url
	}
}
