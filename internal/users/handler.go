// Package users implements account management endpoints. Reads and updates
// of a single account are self-scoped; listing and deletion are
// admin-only.
package users

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/clmarcel/pokedex-api/internal/auth"
	"github.com/clmarcel/pokedex-api/internal/domain"
	"github.com/clmarcel/pokedex-api/internal/httpx"
	"github.com/clmarcel/pokedex-api/internal/models"
	"github.com/clmarcel/pokedex-api/internal/validation"
)

// Store defines the interface for account persistence.
type Store interface {
	Insert(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
}

// Handler holds account management HTTP handlers.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

var objectIDRe = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Create serves POST /users. Like registration, the role is forced to
// "user".
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		httpx.Error(w, err)
		return
	}
	if !models.ValidEmail(req.Email) {
		httpx.Error(w, domain.Validation("invalid email address"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	user := &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      models.RoleUser,
	}
	user.FormatNames()

	created, err := h.store.Insert(r.Context(), user)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Data(w, http.StatusCreated, map[string]string{"id": created.ID.Hex()})
}

// List serves GET /users (admin).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	httpx.DataCount(w, http.StatusOK, users, int64(len(users)))
}

// Get serves GET /users/{idOrEmail}. A 24-hex path value is treated as an
// id, anything else as an email. Callers may only read their own account.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	idOrEmail := chi.URLParam(r, "idOrEmail")

	var (
		user *models.User
		err  error
	)
	if objectIDRe.MatchString(idOrEmail) {
		user, err = h.store.GetByID(r.Context(), idOrEmail)
	} else {
		user, err = h.store.GetByEmail(r.Context(), idOrEmail)
	}
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if user == nil {
		httpx.Fail(w, http.StatusNotFound, "user not found")
		return
	}

	identity, _ := auth.IdentityFrom(r.Context())
	if identity.UserID != user.ID.Hex() {
		httpx.Fail(w, http.StatusForbidden, "you are not allowed to access this user")
		return
	}

	httpx.Data(w, http.StatusOK, user)
}

// Update serves PUT /users/{id}. Callers may only update their own
// account; a supplied password is re-hashed before storage.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	identity, _ := auth.IdentityFrom(r.Context())
	if identity.UserID != id {
		httpx.Fail(w, http.StatusForbidden, "you are not allowed to access this user")
		return
	}

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Email != nil && !models.ValidEmail(*patch.Email) {
		httpx.Error(w, domain.Validation("invalid email address"))
		return
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			httpx.Error(w, domain.Validation("password cannot be empty"))
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			httpx.Error(w, err)
			return
		}
		hash := string(hashed)
		patch.Password = &hash
	}
	formatPatchNames(&patch)

	user, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if user == nil {
		httpx.Fail(w, http.StatusNotFound, "user not found")
		return
	}
	httpx.Data(w, http.StatusOK, user)
}

// Delete serves DELETE /users/{id} (admin). The user's trainer, if any, is
// intentionally left in place.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.store.Delete(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if user == nil {
		httpx.Fail(w, http.StatusNotFound, "user not found")
		return
	}
	httpx.DataMessage(w, http.StatusOK, user, "user deleted successfully")
}

// formatPatchNames mirrors User.FormatNames for partial updates.
func formatPatchNames(patch *models.UserPatch) {
	u := models.User{}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	u.FormatNames()
	if patch.FirstName != nil {
		patch.FirstName = &u.FirstName
	}
	if patch.LastName != nil {
		patch.LastName = &u.LastName
	}
}
