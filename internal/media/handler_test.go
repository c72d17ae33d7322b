package media

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shoply/service/internal/storage"
)

func newTestRouter(store storage.ObjectStore) *chi.Mux {
	h := NewHandler(newTestService(store))
	r := chi.NewRouter()
	r.Route("/media", func(r chi.Router) {
		r.Post("/upload", h.Upload)
		r.Post("/upload/batch", h.UploadBatch)
		r.Delete("/variants/{stem}", h.DeleteVariants)
		r.Get("/signed-url/*", h.SignedURL)
		r.Delete("/*", h.Delete)
	})
	return r
}

type filePart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

// multipartBody builds a multipart request body with explicit per-part
// content types, which mime/multipart's CreateFormFile cannot set.
func multipartBody(t *testing.T, parts []filePart, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		header.Set("Content-Type", p.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(p.data)
		require.NoError(t, err)
	}
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandler_Upload(t *testing.T) {
	mockStore := storage.NewMockStore()
	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil)
	expectPublicURLs(mockStore)
	router := newTestRouter(mockStore)

	body, contentType := multipartBody(t,
		[]filePart{{field: "image", filename: "photo.jpg", contentType: "image/jpeg", data: makeJPEG(t, 400, 300)}},
		map[string]string{"ownerId": "sku-42"},
	)
	req := httptest.NewRequest(http.MethodPost, "/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var result UploadResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Contains(t, result.Key, "products/original/")
	assert.Contains(t, result.Key, "sku-42")
	assert.Equal(t, "image/webp", result.ContentType)
	assert.NotEmpty(t, result.Variants.Thumbnail)
	assert.NotEmpty(t, result.Variants.Small)
	assert.NotEmpty(t, result.Variants.Medium)
	assert.NotEmpty(t, result.Variants.Large)
	assert.NotEmpty(t, result.Variants.Original)
}

func TestHandler_Upload_MissingFile(t *testing.T) {
	router := newTestRouter(storage.NewMockStore())

	body, contentType := multipartBody(t, nil, map[string]string{"ownerId": "sku-42"})
	req := httptest.NewRequest(http.MethodPost, "/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "image")
}

func TestHandler_Upload_DisallowedType(t *testing.T) {
	mockStore := storage.NewMockStore()
	router := newTestRouter(mockStore)

	body, contentType := multipartBody(t,
		[]filePart{{field: "image", filename: "clip.mp4", contentType: "video/mp4", data: []byte("mp4 bytes")}},
		nil,
	)
	req := httptest.NewRequest(http.MethodPost, "/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	mockStore.AssertNumberOfCalls(t, "Put", 0)
}

func TestHandler_Upload_UndecodableBody(t *testing.T) {
	router := newTestRouter(storage.NewMockStore())

	body, contentType := multipartBody(t,
		[]filePart{{field: "image", filename: "broken.jpg", contentType: "image/jpeg", data: []byte("not a jpeg")}},
		nil,
	)
	req := httptest.NewRequest(http.MethodPost, "/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}

func TestHandler_Upload_StorageDown(t *testing.T) {
	mockStore := storage.NewMockStore()
	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(errors.New("dial tcp: refused"))
	mockStore.On("Delete", mock.Anything, mock.Anything).Return(nil)
	router := newTestRouter(mockStore)

	body, contentType := multipartBody(t,
		[]filePart{{field: "image", filename: "photo.jpg", contentType: "image/jpeg", data: makeJPEG(t, 200, 200)}},
		nil,
	)
	req := httptest.NewRequest(http.MethodPost, "/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandler_UploadBatch(t *testing.T) {
	mockStore := storage.NewMockStore()
	mockStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil)
	expectPublicURLs(mockStore)
	router := newTestRouter(mockStore)

	body, contentType := multipartBody(t,
		[]filePart{
			{field: "images", filename: "a.jpg", contentType: "image/jpeg", data: makeJPEG(t, 300, 300)},
			{field: "images", filename: "b.jpg", contentType: "image/jpeg", data: makeJPEG(t, 640, 480)},
		},
		nil,
	)
	req := httptest.NewRequest(http.MethodPost, "/media/upload/batch", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	var results []UploadResult
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 2)
	mockStore.AssertNumberOfCalls(t, "Put", 10)
}

func TestHandler_UploadBatch_NoFiles(t *testing.T) {
	router := newTestRouter(storage.NewMockStore())

	body, contentType := multipartBody(t, nil, map[string]string{"ownerId": "x"})
	req := httptest.NewRequest(http.MethodPost, "/media/upload/batch", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	mockStore := storage.NewMockStore()
	mockStore.On("Delete", mock.Anything, "products/original/1700000000-abc.webp").Return(nil)
	router := newTestRouter(mockStore)

	req := httptest.NewRequest(http.MethodDelete, "/media/products/original/1700000000-abc.webp", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	mockStore.AssertExpectations(t)
}

func TestHandler_DeleteVariants(t *testing.T) {
	mockStore := storage.NewMockStore()
	mockStore.On("Delete", mock.Anything, mock.Anything).Return(nil)
	router := newTestRouter(mockStore)

	req := httptest.NewRequest(http.MethodDelete, "/media/variants/1700000000-abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	mockStore.AssertNumberOfCalls(t, "Delete", 5)
}

func TestHandler_SignedURL(t *testing.T) {
	mockStore := storage.NewMockStore()
	mockStore.On("SignedURL", mock.Anything, "products/original/1-x.webp", 600*time.Second).
		Return("https://cdn.test/signed?sig=abc", nil)
	router := newTestRouter(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/media/signed-url/products/original/1-x.webp?expiry=600", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "https://cdn.test/signed?sig=abc", data["url"])
}

func TestHandler_SignedURL_BadExpiry(t *testing.T) {
	router := newTestRouter(storage.NewMockStore())

	req := httptest.NewRequest(http.MethodGet, "/media/signed-url/products/original/1-x.webp?expiry=-5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
