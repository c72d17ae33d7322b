package customer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shoply/service/internal/response"
)

// Handler holds HTTP handlers for customer endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new customer Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
//
//	@Summary	Create a customer
//	@Tags		customers
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		Input	true	"customer fields"
//	@Success	201	{object}	response.Envelope{data=Customer}
//	@Failure	400	{object}	response.Envelope
//	@Failure	409	{object}	response.Envelope
//	@Router		/customers [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeCustomerError(w, err)
		return
	}
	response.Created(w, c)
}

// Get godoc
//
//	@Summary	Get a customer by ID
//	@Tags		customers
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"customer UUID"
//	@Success	200	{object}	response.Envelope{data=Customer}
//	@Failure	404	{object}	response.Envelope
//	@Router		/customers/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCustomerError(w, err)
		return
	}
	response.OK(w, c)
}

// List godoc
//
//	@Summary	List customers
//	@Tags		customers
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page		query		int		false	"page number (default 1)"
//	@Param		pageSize	query		int		false	"page size (default 20, max 100)"
//	@Param		search		query		string	false	"name or email search"
//	@Success	200	{object}	response.Envelope{data=ListPage}
//	@Router		/customers [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	result, err := h.svc.List(r.Context(), q.Get("search"), page, pageSize)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, result)
}

// Update godoc
//
//	@Summary	Update a customer
//	@Tags		customers
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"customer UUID"
//	@Param		body	body		Input	true	"customer fields"
//	@Success	200	{object}	response.Envelope{data=Customer}
//	@Failure	400	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/customers/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeCustomerError(w, err)
		return
	}
	response.OK(w, c)
}

// Delete godoc
//
//	@Summary	Delete a customer
//	@Tags		customers
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"customer UUID"
//	@Success	200	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/customers/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeCustomerError(w, err)
		return
	}
	response.OK(w, map[string]string{"id": id})
}

func writeCustomerError(w http.ResponseWriter, err error) {
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
