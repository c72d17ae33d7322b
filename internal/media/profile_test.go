package media

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles_ClosedSet(t *testing.T) {
	profiles := Profiles()
	require.Len(t, profiles, 5)
	assert.Equal(t, []Profile{ProfileThumbnail, ProfileSmall, ProfileMedium, ProfileLarge, ProfileOriginal}, profiles)

	specs := DefaultSpecs()
	for _, p := range profiles {
		_, ok := specs[p]
		assert.True(t, ok, "missing spec for profile %s", p)
	}
}

func TestVariantKey_Convention(t *testing.T) {
	pattern := regexp.MustCompile(`^products/(thumbnail|small|medium|large|original)/\d+-abc123\.webp$`)
	for _, p := range Profiles() {
		key := VariantKey(p, "1700000000-abc123")
		assert.Regexp(t, pattern, key)
	}
}

func TestVariantURLs_Set(t *testing.T) {
	var urls VariantURLs
	for _, p := range Profiles() {
		urls.set(p, "https://cdn.test/"+string(p))
	}

	assert.Equal(t, "https://cdn.test/thumbnail", urls.Thumbnail)
	assert.Equal(t, "https://cdn.test/small", urls.Small)
	assert.Equal(t, "https://cdn.test/medium", urls.Medium)
	assert.Equal(t, "https://cdn.test/large", urls.Large)
	assert.Equal(t, "https://cdn.test/original", urls.Original)
}
