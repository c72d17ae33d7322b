package media

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shoply/service/internal/config"
	"github.com/shoply/service/internal/storage"
)

var testUploadCfg = config.UploadConfig{
	MaxFileSize:       10 << 20,
	RenderConcurrency: 2,
	SignedURLTTL:      time.Hour,
}

func newTestService(store storage.ObjectStore) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, testUploadCfg, logger)
}

// expectPublicURLs wires one PublicURL stub per profile so each rendition
// gets a distinct URL.
func expectPublicURLs(store *storage.MockStore) {
	for _, p := range Profiles() {
		prefix := "products/" + string(p) + "/"
		store.On("PublicURL", mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, prefix)
		})).Return("https://cdn.test/" + string(p) + ".webp")
	}
}

func TestService_UploadImage_RoundTrip(t *testing.T) {
	mockStore := storage.NewMockStore()
	svc := newTestService(mockStore)

	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		"image/webp", mock.Anything).Return(nil)
	expectPublicURLs(mockStore)

	src := makeJPEG(t, 500, 500)
	up := Upload{Data: src, ContentType: "image/jpeg", Size: int64(len(src))}

	result, err := svc.UploadImage(context.Background(), up, "abc123")
	require.NoError(t, err)

	assert.Contains(t, result.Key, "products/original/")
	assert.Contains(t, result.Key, "abc123")
	assert.Equal(t, "image/webp", result.ContentType)
	assert.Positive(t, result.SizeBytes)
	assert.Equal(t, "https://cdn.test/original.webp", result.URL)

	assert.Equal(t, "https://cdn.test/thumbnail.webp", result.Variants.Thumbnail)
	assert.Equal(t, "https://cdn.test/small.webp", result.Variants.Small)
	assert.Equal(t, "https://cdn.test/medium.webp", result.Variants.Medium)
	assert.Equal(t, "https://cdn.test/large.webp", result.Variants.Large)
	assert.Equal(t, "https://cdn.test/original.webp", result.Variants.Original)

	mockStore.AssertNumberOfCalls(t, "Put", 5)
}

func TestService_UploadImage_RejectsOversized(t *testing.T) {
	mockStore := storage.NewMockStore()
	svc := newTestService(mockStore)

	up := Upload{Data: nil, ContentType: "image/png", Size: 11 << 20}

	_, err := svc.UploadImage(context.Background(), up, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Contains(t, err.Error(), "10 MiB limit")
	mockStore.AssertNumberOfCalls(t, "Put", 0)
}

func TestService_UploadImage_RejectsDisallowedType(t *testing.T) {
	mockStore := storage.NewMockStore()
	svc := newTestService(mockStore)

	up := Upload{Data: []byte{0x42, 0x4d}, ContentType: "image/bmp", Size: 2}

	_, err := svc.UploadImage(context.Background(), up, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	mockStore.AssertNumberOfCalls(t, "Put", 0)
}

func TestService_UploadImage_CompensatesOnPartialFailure(t *testing.T) {
	mockStore := storage.NewMockStore()
	svc := newTestService(mockStore)

	// The large rendition fails; its four siblings land and must be removed.
	mockStore.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "products/large/")
	}), mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset"))
	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil)
	mockStore.On("Delete", mock.Anything, mock.Anything).Return(nil)

	src := makeJPEG(t, 500, 500)
	up := Upload{Data: src, ContentType: "image/jpeg", Size: int64(len(src))}

	_, err := svc.UploadImage(context.Background(), up, "abc123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)

	mockStore.AssertNumberOfCalls(t, "Put", 5)
	mockStore.AssertNumberOfCalls(t, "Delete", 4)
	for _, call := range mockStore.Calls {
		if call.Method == "Delete" {
			key := call.Arguments.String(1)
			assert.False(t, strings.HasPrefix(key, "products/large/"),
				"the failed rendition must not be deleted")
		}
	}
}

func TestService_UploadImages_PreservesInputOrder(t *testing.T) {
	mockStore := storage.NewMockStore()
	svc := newTestService(mockStore)

	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil)
	expectPublicURLs(mockStore)

	small := makeJPEG(t, 100, 100)
	big := makeJPEG(t, 900, 400)
	ups := []Upload{
		{Data: small, ContentType: "image/jpeg", Size: int64(len(small))},
		{Data: big, ContentType: "image/jpeg", Size: int64(len(big))},
	}

	results, err := svc.UploadImages(context.Background(), ups, "order42")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Contains(t, results[0].Key, "order42-1")
	assert.Contains(t, results[1].Key, "order42-2")
	mockStore.AssertNumberOfCalls(t, "Put", 10)
}

func TestService_UploadImages_FailsWhole(t *testing.T) {
	mockStore := storage.NewMockStore()
	svc := newTestService(mockStore)

	src := makeJPEG(t, 100, 100)
	ups := []Upload{
		{Data: src, ContentType: "image/jpeg", Size: int64(len(src))},
		{Data: []byte("junk"), ContentType: "image/jpeg", Size: 4},
	}
	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil)
	mockStore.On("Delete", mock.Anything, mock.Anything).Return(nil)

	results, err := svc.UploadImages(context.Background(), ups, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImageDecode)
	assert.Nil(t, results)
}

func TestService_DeleteAllVariants(t *testing.T) {
	mockStore := storage.NewMockStore()
	svc := newTestService(mockStore)

	mockStore.On("Delete", mock.Anything, mock.Anything).Return(nil)

	err := svc.DeleteAllVariants(context.Background(), "1700000000-abc123")
	require.NoError(t, err)

	deleted := make(map[string]bool)
	for _, call := range mockStore.Calls {
		if call.Method == "Delete" {
			deleted[call.Arguments.String(1)] = true
		}
	}
	require.Len(t, deleted, 5)
	for _, p := range Profiles() {
		assert.True(t, deleted[VariantKey(p, "1700000000-abc123")])
	}
}

func TestService_DeleteImage_Idempotent(t *testing.T) {
	mockStore := storage.NewMockStore()
	svc := newTestService(mockStore)

	mockStore.On("Delete", mock.Anything, "products/original/1-x.webp").Return(nil)

	require.NoError(t, svc.DeleteImage(context.Background(), "products/original/1-x.webp"))
	require.NoError(t, svc.DeleteImage(context.Background(), "products/original/1-x.webp"))
	mockStore.AssertNumberOfCalls(t, "Delete", 2)
}

func TestService_SignedURL(t *testing.T) {
	mockStore := storage.NewMockStore()
	svc := newTestService(mockStore)

	mockStore.On("SignedURL", mock.Anything, "products/original/1-x.webp", time.Hour).
		Return("https://cdn.test/signed", nil)

	url, err := svc.SignedURL(context.Background(), "products/original/1-x.webp", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/signed", url)
}
