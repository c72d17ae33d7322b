package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shoply/service/internal/response"
)

// Handler holds HTTP handlers for catalog endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new product Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
//
//	@Summary	Create a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		Input	true	"product fields"
//	@Success	201	{object}	response.Envelope{data=Product}
//	@Failure	400	{object}	response.Envelope
//	@Failure	409	{object}	response.Envelope
//	@Router		/products [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeProductError(w, err)
		return
	}
	response.Created(w, p)
}

// Get godoc
//
//	@Summary	Get a product by ID
//	@Tags		products
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"product UUID"
//	@Success	200	{object}	response.Envelope{data=Product}
//	@Failure	404	{object}	response.Envelope
//	@Router		/products/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProductError(w, err)
		return
	}
	response.OK(w, p)
}

// List godoc
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page		query		int		false	"page number (default 1)"
//	@Param		pageSize	query		int		false	"page size (default 20, max 100)"
//	@Param		search		query		string	false	"name search"
//	@Param		categoryId	query		string	false	"filter by category UUID"
//	@Param		published	query		bool	false	"filter by published flag"
//	@Success	200	{object}	response.Envelope{data=ListPage}
//	@Router		/products [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := ListFilter{
		Search:     q.Get("search"),
		CategoryID: q.Get("categoryId"),
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.PageSize, _ = strconv.Atoi(q.Get("pageSize"))
	if raw := q.Get("published"); raw != "" {
		published := raw == "true"
		f.Published = &published
	}

	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, page)
}

// Update godoc
//
//	@Summary	Update a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"product UUID"
//	@Param		body	body		Input	true	"product fields"
//	@Success	200	{object}	response.Envelope{data=Product}
//	@Failure	400	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/products/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeProductError(w, err)
		return
	}
	response.OK(w, p)
}

type stockRequest struct {
	Delta int `json:"delta"`
}

// AdjustStock godoc
//
//	@Summary	Adjust a product's stock level
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"product UUID"
//	@Param		body	body		stockRequest	true	"signed stock delta"
//	@Success	200	{object}	response.Envelope{data=Product}
//	@Failure	400	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Failure	409	{object}	response.Envelope
//	@Router		/products/{id}/stock [patch]
func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	p, err := h.svc.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		writeProductError(w, err)
		return
	}
	response.OK(w, p)
}

// Delete godoc
//
//	@Summary	Delete a product
//	@Tags		products
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"product UUID"
//	@Success	200	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/products/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeProductError(w, err)
		return
	}
	response.OK(w, map[string]string{"id": id})
}

func writeProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrAlreadyExists):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrInsufficientStock):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w)
	}
}
