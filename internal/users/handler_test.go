package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clmarcel/pokedex-api/internal/auth"
	"github.com/clmarcel/pokedex-api/internal/domain"
	"github.com/clmarcel/pokedex-api/internal/models"
)

type fakeStore struct {
	users []*models.User
}

func (s *fakeStore) Insert(_ context.Context, u *models.User) (*models.User, error) {
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.Conflict("username or email already taken")
		}
	}
	u.ID = primitive.NewObjectID()
	s.users = append(s.users, u)
	return u, nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.Validation("invalid user id")
	}
	for _, u := range s.users {
		if u.ID == oid {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeStore) Update(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	u, err := s.GetByID(context.Background(), id)
	if err != nil || u == nil {
		return u, err
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	return u, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) (*models.User, error) {
	u, err := s.GetByID(context.Background(), id)
	if err != nil || u == nil {
		return u, err
	}
	for i, existing := range s.users {
		if existing == u {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	return u, nil
}

func router(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/users/{idOrEmail}", h.Get)
	r.Put("/users/{id}", h.Update)
	r.Delete("/users/{id}", h.Delete)
	return r
}

func asUser(req *http.Request, userID, role string) *http.Request {
	ctx := auth.WithIdentity(req.Context(), auth.Identity{UserID: userID, Role: role})
	return req.WithContext(ctx)
}

func seed(store *fakeStore, username, email string) *models.User {
	u, _ := store.Insert(context.Background(), &models.User{
		Username: username,
		Email:    email,
		Password: "hash",
		Role:     models.RoleUser,
	})
	return u
}

func TestGetSelfAccessOnly(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store)
	alice := seed(store, "alice", "alice@example.com")
	bob := seed(store, "bob", "bob@example.com")

	// Valid token, wrong owner: 403 for lookup by id and by email.
	for _, target := range []string{bob.ID.Hex(), bob.Email} {
		req := asUser(httptest.NewRequest(http.MethodGet, "/users/"+target, nil),
			alice.ID.Hex(), models.RoleUser)
		rec := httptest.NewRecorder()
		router(h).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
	}

	// Owner reads their own record.
	req := asUser(httptest.NewRequest(http.MethodGet, "/users/"+alice.ID.Hex(), nil),
		alice.ID.Hex(), models.RoleUser)
	rec := httptest.NewRecorder()
	router(h).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), "hash", "password hash must never be serialized")
}

func TestGetUnknownUser(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store)
	alice := seed(store, "alice", "alice@example.com")

	req := asUser(httptest.NewRequest(http.MethodGet, "/users/"+primitive.NewObjectID().Hex(), nil),
		alice.ID.Hex(), models.RoleUser)
	rec := httptest.NewRecorder()
	router(h).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSelfAccessOnly(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store)
	alice := seed(store, "alice", "alice@example.com")
	bob := seed(store, "bob", "bob@example.com")

	body := `{"firstName":"alice"}`
	req := asUser(httptest.NewRequest(http.MethodPut, "/users/"+bob.ID.Hex(), strings.NewReader(body)),
		alice.ID.Hex(), models.RoleUser)
	rec := httptest.NewRecorder()
	router(h).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = asUser(httptest.NewRequest(http.MethodPut, "/users/"+alice.ID.Hex(), strings.NewReader(body)),
		alice.ID.Hex(), models.RoleUser)
	rec = httptest.NewRecorder()
	router(h).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice", alice.FirstName, "first name is title-cased on update")
}

func TestUpdateRehashesPassword(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store)
	alice := seed(store, "alice", "alice@example.com")

	body := `{"password":"new-password"}`
	req := asUser(httptest.NewRequest(http.MethodPut, "/users/"+alice.ID.Hex(), strings.NewReader(body)),
		alice.ID.Hex(), models.RoleUser)
	rec := httptest.NewRecorder()
	router(h).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, "new-password", alice.Password)
	assert.True(t, strings.HasPrefix(alice.Password, "$2a$"), "password must be bcrypt-hashed")
}

func TestDelete(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store)
	alice := seed(store, "alice", "alice@example.com")

	req := httptest.NewRequest(http.MethodDelete, "/users/"+alice.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	router(h).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.users)

	rec = httptest.NewRecorder()
	router(h).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/"+alice.ID.Hex(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
