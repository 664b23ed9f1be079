package trainer

import (
	"encoding/json"
	"net/http"

	"github.com/clmarcel/pokedex-api/internal/auth"
	"github.com/clmarcel/pokedex-api/internal/httpx"
	"github.com/clmarcel/pokedex-api/internal/models"
	"github.com/clmarcel/pokedex-api/internal/validation"
)

// Handler holds trainer HTTP handlers. All routes are self-scoped: the
// target trainer is always the authenticated caller's.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create serves POST /trainer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	var req models.TrainerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.Create(r.Context(), id.UserID, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.DataMessage(w, http.StatusCreated, t, "trainer created successfully")
}

// Get serves GET /trainer.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	t, err := h.svc.Get(r.Context(), id.UserID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if t == nil {
		httpx.Fail(w, http.StatusNotFound, "no trainer found for this user")
		return
	}
	httpx.Data(w, http.StatusOK, t)
}

// Update serves PUT /trainer.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	var patch models.TrainerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.Update(r.Context(), id.UserID, patch)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if t == nil {
		httpx.Fail(w, http.StatusNotFound, "no trainer found for this user")
		return
	}
	httpx.DataMessage(w, http.StatusOK, t, "trainer updated successfully")
}

// Delete serves DELETE /trainer.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	if err := h.svc.Delete(r.Context(), id.UserID); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Mark serves POST /trainer/mark.
func (h *Handler) Mark(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	var req models.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		httpx.Error(w, err)
		return
	}

	t, err := h.svc.Mark(r.Context(), id.UserID, req.PokemonID, *req.IsCaptured)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.DataMessage(w, http.StatusOK, t, "pokemon marked successfully")
}
