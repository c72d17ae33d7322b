package media

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shoply/service/internal/response"
)

// maxMultipartMemory caps the in-memory portion of multipart parsing;
// larger bodies spill to temp files.
const maxMultipartMemory = 32 << 20

const defaultSignedURLExpiry = 3600 * time.Second

// Handler holds HTTP handlers for media endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new media Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Upload godoc
//
//	@Summary		Upload a product image
//	@Description	Accepts one image, renders all renditions, and stores them.
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			image	formData	file	true	"image file"
//	@Param			ownerId	formData	string	false	"identifier mixed into the storage key"
//	@Success		201	{object}	response.Envelope{data=UploadResult}
//	@Failure		400	{object}	response.Envelope
//	@Failure		422	{object}	response.Envelope
//	@Failure		502	{object}	response.Envelope
//	@Router			/media/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "multipart field 'image' is required")
		return
	}
	defer file.Close()

	up, err := readUpload(file, header)
	if err != nil {
		response.BadRequest(w, "cannot read uploaded file")
		return
	}

	result, err := h.svc.UploadImage(r.Context(), up, r.FormValue("ownerId"))
	if err != nil {
		writeUploadError(w, err)
		return
	}
	response.Created(w, result)
}

// UploadBatch godoc
//
//	@Summary		Upload multiple product images
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			images	formData	file	true	"image files"
//	@Param			ownerId	formData	string	false	"identifier mixed into the storage keys"
//	@Success		201	{object}	response.Envelope{data=[]UploadResult}
//	@Failure		400	{object}	response.Envelope
//	@Failure		422	{object}	response.Envelope
//	@Failure		502	{object}	response.Envelope
//	@Router			/media/upload/batch [post]
func (h *Handler) UploadBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.BadRequest(w, "invalid multipart body")
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		response.BadRequest(w, "multipart field 'images' is required")
		return
	}

	ups := make([]Upload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			response.BadRequest(w, "cannot read uploaded file")
			return
		}
		up, err := readUpload(file, header)
		file.Close()
		if err != nil {
			response.BadRequest(w, "cannot read uploaded file")
			return
		}
		ups = append(ups, up)
	}

	results, err := h.svc.UploadImages(r.Context(), ups, r.FormValue("ownerId"))
	if err != nil {
		writeUploadError(w, err)
		return
	}
	response.Created(w, results)
}

// Delete godoc
//
//	@Summary	Delete a stored object by key
//	@Tags		media
//	@Produce	json
//	@Security	BearerAuth
//	@Param		key	path		string	true	"storage key"
//	@Success	200	{object}	response.Envelope
//	@Failure	502	{object}	response.Envelope
//	@Router		/media/{key} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		response.BadRequest(w, "storage key required")
		return
	}

	if err := h.svc.DeleteImage(r.Context(), key); err != nil {
		writeUploadError(w, err)
		return
	}
	response.OK(w, map[string]string{"key": key})
}

// DeleteVariants godoc
//
//	@Summary	Delete every rendition derived from a base key
//	@Tags		media
//	@Produce	json
//	@Security	BearerAuth
//	@Param		stem	path		string	true	"timestamp-baseKey stem shared by the renditions"
//	@Success	200	{object}	response.Envelope
//	@Failure	502	{object}	response.Envelope
//	@Router		/media/variants/{stem} [delete]
func (h *Handler) DeleteVariants(w http.ResponseWriter, r *http.Request) {
	stem := chi.URLParam(r, "stem")
	if stem == "" {
		response.BadRequest(w, "variant stem required")
		return
	}

	if err := h.svc.DeleteAllVariants(r.Context(), stem); err != nil {
		writeUploadError(w, err)
		return
	}
	response.OK(w, map[string]string{"stem": stem})
}

// SignedURL godoc
//
//	@Summary	Get a time-limited access URL for a stored object
//	@Tags		media
//	@Produce	json
//	@Security	BearerAuth
//	@Param		key		path		string	true	"storage key"
//	@Param		expiry	query		int		false	"expiry in seconds (default 3600)"
//	@Success	200	{object}	response.Envelope
//	@Failure	502	{object}	response.Envelope
//	@Router		/media/signed-url/{key} [get]
func (h *Handler) SignedURL(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		response.BadRequest(w, "storage key required")
		return
	}

	ttl := defaultSignedURLExpiry
	if raw := r.URL.Query().Get("expiry"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			response.BadRequest(w, "expiry must be a positive number of seconds")
			return
		}
		ttl = time.Duration(seconds) * time.Second
	}

	url, err := h.svc.SignedURL(r.Context(), key, ttl)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	response.OK(w, map[string]string{"key": key, "url": url})
}

// readUpload buffers one multipart file into an Upload value.
func readUpload(file multipart.File, header *multipart.FileHeader) (Upload, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return Upload{}, err
	}
	return Upload{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, nil
}

// writeUploadError maps pipeline errors onto the response envelope.
func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrFileTooLarge), errors.Is(err, ErrUnsupportedType):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrImageDecode):
		response.UnprocessableEntity(w, err.Error())
	case errors.Is(err, ErrStorage):
		response.BadGateway(w, err.Error())
	default:
		response.InternalError(w)
	}
}
