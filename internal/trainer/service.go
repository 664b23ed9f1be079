// Package trainer implements per-user collection tracking: one trainer
// profile per user holding two disjoint sets of Pokémon references, seen
// and caught.
package trainer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clmarcel/pokedex-api/internal/domain"
	"github.com/clmarcel/pokedex-api/internal/models"
)

// Store defines the interface for trainer persistence.
type Store interface {
	Insert(ctx context.Context, t *models.Trainer) (*models.Trainer, error)
	GetByUsername(ctx context.Context, username string) (*models.Trainer, error)
	Update(ctx context.Context, username string, patch models.TrainerPatch) (*models.Trainer, error)
	Save(ctx context.Context, t *models.Trainer) error
	Delete(ctx context.Context, username string) (*models.Trainer, error)
}

// UserDirectory resolves user ids to accounts.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Catalog is the subset of the Pokémon store the trainer service needs:
// existence checks before marking, and reference expansion on reads.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*models.Pokemon, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Pokemon, error)
}

// Service holds trainer business logic.
type Service struct {
	store   Store
	users   UserDirectory
	catalog Catalog
}

func NewService(store Store, users UserDirectory, catalog Catalog) *Service {
	return &Service{store: store, users: users, catalog: catalog}
}

// resolveUsername maps the authenticated user id to its username. Trainers
// are keyed by username, not user id.
func (s *Service) resolveUsername(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.NotFound("user not found")
	}
	return user.Username, nil
}

// Create makes the trainer profile for a user. Each user has at most one;
// a second create fails with Conflict. TrainerName defaults to the
// username.
func (s *Service) Create(ctx context.Context, userID string, req models.TrainerCreateRequest) (*models.Trainer, error) {
	username, err := s.resolveUsername(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("this user already has a trainer")
	}

	t := &models.Trainer{
		Username:    username,
		ImgURL:      req.ImgURL,
		TrainerName: req.TrainerName,
		PkmnSeen:    []primitive.ObjectID{},
		PkmnCatch:   []primitive.ObjectID{},
	}
	if t.TrainerName == "" {
		t.TrainerName = username
	}
	return s.store.Insert(ctx, t)
}

// Get returns the user's trainer with seen/caught references expanded to
// full Pokémon records, or (nil, nil) when the user has no trainer yet.
func (s *Service) Get(ctx context.Context, userID string) (*models.TrainerProfile, error) {
	username, err := s.resolveUsername(ctx, userID)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return s.expand(ctx, t)
}

// Update applies profile edits. The username mirror cannot be renamed
// through this path; TrainerPatch carries no username field by
// construction.
func (s *Service) Update(ctx context.Context, userID string, patch models.TrainerPatch) (*models.TrainerProfile, error) {
	username, err := s.resolveUsername(ctx, userID)
	if err != nil {
		return nil, err
	}
	t, err := s.store.Update(ctx, username, patch)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return s.expand(ctx, t)
}

// Delete removes the user's trainer. User deletion does not cascade here;
// this is the only removal path.
func (s *Service) Delete(ctx context.Context, userID string) error {
	username, err := s.resolveUsername(ctx, userID)
	if err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, username)
	if err != nil {
		return err
	}
	if deleted == nil {
		return domain.NotFound("no trainer found for this user")
	}
	return nil
}

// Mark records a Pokémon as seen or caught. The reference is removed from
// both sets unconditionally and then inserted into exactly one, so
// seen ∩ caught = ∅ holds after every call regardless of prior membership.
// The Pokémon must exist in the catalog; the check runs before any state
// is touched. Concurrent marks on the same trainer are last-write-wins.
func (s *Service) Mark(ctx context.Context, userID, pokemonID string, isCaptured bool) (*models.TrainerProfile, error) {
	username, err := s.resolveUsername(ctx, userID)
	if err != nil {
		return nil, err
	}

	t, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("no trainer found for this user")
	}

	pkmn, err := s.catalog.GetByID(ctx, pokemonID)
	if err != nil {
		return nil, err
	}
	if pkmn == nil {
		return nil, domain.Validation("invalid or unknown pokemon")
	}

	t.PkmnSeen = remove(t.PkmnSeen, pkmn.ID)
	t.PkmnCatch = remove(t.PkmnCatch, pkmn.ID)
	if isCaptured {
		t.PkmnCatch = append(t.PkmnCatch, pkmn.ID)
	} else {
		t.PkmnSeen = append(t.PkmnSeen, pkmn.ID)
	}

	if err := s.store.Save(ctx, t); err != nil {
		return nil, err
	}
	return s.expand(ctx, t)
}

// expand joins the reference sets to full Pokémon records. References to
// deleted Pokémon drop out of the expansion.
func (s *Service) expand(ctx context.Context, t *models.Trainer) (*models.TrainerProfile, error) {
	seen, err := s.catalog.GetByIDs(ctx, t.PkmnSeen)
	if err != nil {
		return nil, err
	}
	caught, err := s.catalog.GetByIDs(ctx, t.PkmnCatch)
	if err != nil {
		return nil, err
	}
	return &models.TrainerProfile{
		ID:           t.ID,
		Username:     t.Username,
		ImgURL:       t.ImgURL,
		TrainerName:  t.TrainerName,
		CreationDate: t.CreationDate,
		PkmnSeen:     seen,
		PkmnCatch:    caught,
	}, nil
}

func remove(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
