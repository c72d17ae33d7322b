package page

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shoply/service/internal/response"
)

// Handler holds HTTP handlers for blog/CMS page endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new page Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
//
//	@Summary	Create a page
//	@Tags		pages
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		Input	true	"page fields"
//	@Success	201	{object}	response.Envelope{data=Page}
//	@Failure	400	{object}	response.Envelope
//	@Failure	409	{object}	response.Envelope
//	@Router		/pages [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writePageError(w, err)
		return
	}
	response.Created(w, p)
}

// Get godoc
//
//	@Summary	Get a page by slug
//	@Tags		pages
//	@Produce	json
//	@Security	BearerAuth
//	@Param		slug	path		string	true	"page slug"
//	@Success	200	{object}	response.Envelope{data=Page}
//	@Failure	404	{object}	response.Envelope
//	@Router		/pages/{slug} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writePageError(w, err)
		return
	}
	response.OK(w, p)
}

// List godoc
//
//	@Summary	List pages
//	@Tags		pages
//	@Produce	json
//	@Security	BearerAuth
//	@Param		published	query		bool	false	"only published pages"
//	@Success	200	{object}	response.Envelope{data=[]Page}
//	@Router		/pages [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("published") == "true"

	pages, err := h.svc.List(r.Context(), publishedOnly)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, pages)
}

// Update godoc
//
//	@Summary	Update a page
//	@Tags		pages
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		slug	path		string	true	"page slug"
//	@Param		body	body		Input	true	"page fields"
//	@Success	200	{object}	response.Envelope{data=Page}
//	@Failure	400	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/pages/{slug} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "slug"), in)
	if err != nil {
		writePageError(w, err)
		return
	}
	response.OK(w, p)
}

// Delete godoc
//
//	@Summary	Delete a page
//	@Tags		pages
//	@Produce	json
//	@Security	BearerAuth
//	@Param		slug	path		string	true	"page slug"
//	@Success	200	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/pages/{slug} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := h.svc.Delete(r.Context(), slug); err != nil {
		writePageError(w, err)
		return
	}
	response.OK(w, map[string]string{"slug": slug})
}

func writePageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrAlreadyExists):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w)
	}
}
