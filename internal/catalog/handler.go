package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clmarcel/pokedex-api/internal/domain"
	"github.com/clmarcel/pokedex-api/internal/httpx"
	"github.com/clmarcel/pokedex-api/internal/models"
)

// Handler holds catalog HTTP handlers.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Types returns the type enumeration.
func (h *Handler) Types(w http.ResponseWriter, r *http.Request) {
	types := h.svc.Types()
	httpx.DataCount(w, http.StatusOK, types, int64(len(types)))
}

// List serves GET /api/pkmn. With ?id= or ?name= it returns the single
// matching record; otherwise the whole catalog with a count.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	name := r.URL.Query().Get("name")

	if id != "" || name != "" {
		p, err := h.svc.Get(r.Context(), id, name)
		if err != nil {
			httpx.Error(w, err)
			return
		}
		if p == nil {
			httpx.Fail(w, http.StatusNotFound, "pokemon not found")
			return
		}
		httpx.Data(w, http.StatusOK, p)
		return
	}

	pkmn, err := h.svc.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if pkmn == nil {
		pkmn = []models.Pokemon{}
	}
	httpx.DataCount(w, http.StatusOK, pkmn, int64(len(pkmn)))
}

// Pagination bounds. The skip passed to the store is (page-1)*size, so
// both values must stay small enough that the product cannot overflow.
const (
	maxPage = 1_000_000
	maxSize = 250
)

// Search serves GET /api/pkmn/search with filtering and pagination.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.SearchFilter{
		PartialName: q.Get("partialName"),
		TypeOne:     q.Get("typeOne"),
		TypeTwo:     q.Get("typeTwo"),
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPage {
			httpx.Fail(w, http.StatusBadRequest, "page must be an integer between 1 and 1000000")
			return
		}
		filter.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSize {
			httpx.Fail(w, http.StatusBadRequest, "size must be an integer between 1 and 250")
			return
		}
		filter.Size = n
	}

	pkmn, count, err := h.svc.Search(r.Context(), filter)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if pkmn == nil {
		pkmn = []models.Pokemon{}
	}
	httpx.DataCount(w, http.StatusOK, pkmn, count)
}

// Create serves POST /api/pkmn.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Pokemon
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), &p)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.DataMessage(w, http.StatusCreated, created, "pokemon created successfully")
}

// Update serves PUT /api/pkmn?id=.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Fail(w, http.StatusBadRequest, "the pokemon id is required")
		return
	}

	var patch models.PokemonPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.DataMessage(w, http.StatusOK, updated, "pokemon updated successfully")
}

// Delete serves DELETE /api/pkmn?id=.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.Fail(w, http.StatusBadRequest, "the pokemon id is required")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "pokemon deleted successfully")
}

type regionRequest struct {
	PokemonID           string `json:"pokemonId"`
	RegionName          string `json:"regionName"`
	RegionPokedexNumber int    `json:"regionPokedexNumber"`
}

// AddRegion serves POST /api/pkmn/region with upsert semantics.
func (h *Handler) AddRegion(w http.ResponseWriter, r *http.Request) {
	var req regionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PokemonID == "" || req.RegionName == "" || req.RegionPokedexNumber == 0 {
		httpx.Error(w, domain.Validation("pokemonId, regionName and regionPokedexNumber are required"))
		return
	}

	p, err := h.svc.AddRegion(r.Context(), req.PokemonID, req.RegionName, req.RegionPokedexNumber)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.DataMessage(w, http.StatusOK, p, "region added or updated successfully")
}

// RemoveRegion serves DELETE /api/pkmn/region. Parameters come from the
// query string or the body, either way.
func (h *Handler) RemoveRegion(w http.ResponseWriter, r *http.Request) {
	pokemonID := r.URL.Query().Get("pkmnId")
	regionName := r.URL.Query().Get("regionName")
	if pokemonID == "" || regionName == "" {
		var req struct {
			PokemonID  string `json:"pkmnId"`
			RegionName string `json:"regionName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			if pokemonID == "" {
				pokemonID = req.PokemonID
			}
			if regionName == "" {
				regionName = req.RegionName
			}
		}
	}
	if pokemonID == "" || regionName == "" {
		httpx.Error(w, domain.Validation("pkmnId and regionName are required"))
		return
	}

	if _, err := h.svc.RemoveRegion(r.Context(), pokemonID, regionName); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "region removed successfully")
}
