package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shoply/service/internal/response"
)

// Handler holds HTTP handlers for category endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new category Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
//
//	@Summary	Create a category
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		Input	true	"category fields"
//	@Success	201	{object}	response.Envelope{data=Category}
//	@Failure	400	{object}	response.Envelope
//	@Failure	409	{object}	response.Envelope
//	@Router		/categories [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeCategoryError(w, err)
		return
	}
	response.Created(w, c)
}

// Get godoc
//
//	@Summary	Get a category by ID
//	@Tags		categories
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"category UUID"
//	@Success	200	{object}	response.Envelope{data=Category}
//	@Failure	404	{object}	response.Envelope
//	@Router		/categories/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCategoryError(w, err)
		return
	}
	response.OK(w, c)
}

// Tree godoc
//
//	@Summary	Get the full category tree
//	@Tags		categories
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	response.Envelope{data=[]Category}
//	@Router		/categories [get]
func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.Tree(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	if tree == nil {
		tree = []*Category{}
	}
	response.OK(w, tree)
}

// Update godoc
//
//	@Summary	Update a category
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"category UUID"
//	@Param		body	body		Input	true	"category fields"
//	@Success	200	{object}	response.Envelope{data=Category}
//	@Failure	400	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/categories/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeCategoryError(w, err)
		return
	}
	response.OK(w, c)
}

// Reorder godoc
//
//	@Summary		Reorder the category tree
//	@Description	Applies a bulk drag-and-drop rearrangement in one transaction.
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		[]Placement	true	"new placements"
//	@Success		200	{object}	response.Envelope
//	@Failure		400	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Router			/categories/reorder [put]
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var placements []Placement
	if err := json.NewDecoder(r.Body).Decode(&placements); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.svc.Reorder(r.Context(), placements); err != nil {
		writeCategoryError(w, err)
		return
	}
	response.OK(w, map[string]int{"updated": len(placements)})
}

// Delete godoc
//
//	@Summary	Delete a category
//	@Tags		categories
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"category UUID"
//	@Success	200	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/categories/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeCategoryError(w, err)
		return
	}
	response.OK(w, map[string]string{"id": id})
}

func writeCategoryError(w http.ResponseWriter, err error) {
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
