package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shoply/service/internal/response"
)

// Handler holds HTTP handlers for order endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new order Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
//
//	@Summary		Place an order
//	@Description	Reserves stock for every line and computes the total server-side.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		CreateInput	true	"order lines"
//	@Success		201	{object}	response.Envelope{data=Order}
//	@Failure		400	{object}	response.Envelope
//	@Failure		409	{object}	response.Envelope
//	@Router			/orders [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	o, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	response.Created(w, o)
}

// Get godoc
//
//	@Summary	Get an order with its lines
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"order UUID"
//	@Success	200	{object}	response.Envelope{data=Order}
//	@Failure	404	{object}	response.Envelope
//	@Router		/orders/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeOrderError(w, err)
		return
	}
	response.OK(w, o)
}

// List godoc
//
//	@Summary	List orders
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page		query		int		false	"page number (default 1)"
//	@Param		pageSize	query		int		false	"page size (default 20, max 100)"
//	@Param		status		query		string	false	"filter by status"
//	@Param		customerId	query		string	false	"filter by customer UUID"
//	@Success	200	{object}	response.Envelope{data=ListPage}
//	@Failure	400	{object}	response.Envelope
//	@Router		/orders [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := ListFilter{
		Status:     Status(q.Get("status")),
		CustomerID: q.Get("customerId"),
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.PageSize, _ = strconv.Atoi(q.Get("pageSize"))

	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	response.OK(w, page)
}

type statusRequest struct {
	Status Status `json:"status"`
}

// UpdateStatus godoc
//
//	@Summary		Update an order's status
//	@Description	Allowed moves: pending→paid→shipped→completed; any non-terminal state may be cancelled. Cancelling restocks the order's lines.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"order UUID"
//	@Param			body	body		statusRequest	true	"target status"
//	@Success		200	{object}	response.Envelope{data=Order}
//	@Failure		400	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		409	{object}	response.Envelope
//	@Router			/orders/{id}/status [patch]
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	o, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	response.OK(w, o)
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrProductNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrInvalidTransition):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w)
	}
}
