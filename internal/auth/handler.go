package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/clmarcel/pokedex-api/internal/domain"
	"github.com/clmarcel/pokedex-api/internal/httpx"
	"github.com/clmarcel/pokedex-api/internal/models"
	"github.com/clmarcel/pokedex-api/internal/validation"
)

// UserStore defines the interface for user account persistence.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	tokens *TokenManager
}

func NewHandler(users UserStore, tokens *TokenManager) *Handler {
	return &Handler{users: users, tokens: tokens}
}

// Register creates a new user account. The role is always "user": any role
// supplied by the client is discarded.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.users.Insert(r.Context(), user); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.Message(w, http.StatusCreated, "user created successfully")
}

// Login authenticates by email or username and returns a signed bearer
// token. An identifier containing "@" is looked up as an email.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" {
		httpx.Error(w, domain.Validation("email or username is required"))
		return
	}

	var (
		user *models.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = h.users.GetByEmail(r.Context(), identifier)
	} else {
		user, err = h.users.GetByUsername(r.Context(), identifier)
	}
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if user == nil {
		httpx.Error(w, domain.NotFound("user not found"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httpx.Error(w, domain.Unauthorized("incorrect password"))
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.DataMessage(w, http.StatusOK, map[string]any{
		"userId":    user.ID.Hex(),
		"username":  user.Username,
		"role":      user.Role,
		"token":     token,
		"expiresIn": "24h",
	}, "login successful")
}

// CheckUser is an authenticated no-op used by the front end to validate a
// cached token.
func (h *Handler) CheckUser(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
