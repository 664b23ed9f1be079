// Package catalog implements the Pokémon catalog: CRUD, search with
// pagination, and per-Pokémon region entries.
package catalog

import (
	"context"
	"strings"

	"github.com/clmarcel/pokedex-api/internal/domain"
	"github.com/clmarcel/pokedex-api/internal/models"
)

// Store defines the interface for catalog persistence.
type Store interface {
	Insert(ctx context.Context, p *models.Pokemon) (*models.Pokemon, error)
	GetByID(ctx context.Context, id string) (*models.Pokemon, error)
	GetByName(ctx context.Context, name string) (*models.Pokemon, error)
	List(ctx context.Context) ([]models.Pokemon, error)
	Search(ctx context.Context, f models.SearchFilter) ([]models.Pokemon, int64, error)
	Replace(ctx context.Context, p *models.Pokemon) (*models.Pokemon, error)
	Delete(ctx context.Context, id string) (*models.Pokemon, error)
}

// Service holds catalog business logic on top of a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Types returns the closed enumeration of valid type tags.
func (s *Service) Types() []string {
	types := make([]string, len(models.PkmnTypes))
	copy(types, models.PkmnTypes)
	return types
}

// List returns the whole catalog in stable order.
func (s *Service) List(ctx context.Context) ([]models.Pokemon, error) {
	return s.store.List(ctx)
}

// Get looks a Pokémon up by id or by exact, case-insensitive name. Absence
// is reported as (nil, nil); only a malformed id is an error.
func (s *Service) Get(ctx context.Context, id, name string) (*models.Pokemon, error) {
	if id != "" {
		return s.store.GetByID(ctx, id)
	}
	return s.store.GetByName(ctx, name)
}

// Search returns one window of matches and the total match count across
// the unpaginated result set.
func (s *Service) Search(ctx context.Context, f models.SearchFilter) ([]models.Pokemon, int64, error) {
	return s.store.Search(ctx, f)
}

// Create validates and inserts a new Pokémon. The name must not collide
// with an existing record (case-insensitive).
func (s *Service) Create(ctx context.Context, p *models.Pokemon) (*models.Pokemon, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, domain.Validation("name is required")
	}
	if err := models.ValidateTypes(p.Types); err != nil {
		return nil, domain.Validation(err.Error())
	}
	normalize(p)

	existing, err := s.store.GetByName(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("a pokemon with this name already exists")
	}

	return s.store.Insert(ctx, p)
}

// Update applies a partial update and re-validates the merged record.
func (s *Service) Update(ctx context.Context, id string, patch models.PokemonPatch) (*models.Pokemon, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("pokemon not found")
	}

	applyPatch(p, patch)

	if strings.TrimSpace(p.Name) == "" {
		return nil, domain.Validation("name is required")
	}
	if err := models.ValidateTypes(p.Types); err != nil {
		return nil, domain.Validation(err.Error())
	}
	normalize(p)

	updated, err := s.store.Replace(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NotFound("pokemon not found")
	}
	return updated, nil
}

// Delete removes a Pokémon. Trainer references to the deleted id are left
// as-is and simply no longer resolve.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == nil {
		return domain.NotFound("pokemon not found")
	}
	return nil
}

// AddRegion upserts a region entry: an existing entry with the same name
// gets its number overwritten, otherwise the entry is appended.
func (s *Service) AddRegion(ctx context.Context, pokemonID, regionName string, regionNumber int) (*models.Pokemon, error) {
	p, err := s.store.GetByID(ctx, pokemonID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("pokemon not found")
	}

	found := false
	for i := range p.Regions {
		if p.Regions[i].RegionName == regionName {
			p.Regions[i].RegionPokedexNumber = regionNumber
			found = true
			break
		}
	}
	if !found {
		p.Regions = append(p.Regions, models.Region{
			RegionName:          regionName,
			RegionPokedexNumber: regionNumber,
		})
	}

	updated, err := s.store.Replace(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NotFound("pokemon not found")
	}
	return updated, nil
}

// RemoveRegion removes the first region whose name matches
// case-insensitively. A non-matching name is a no-op, not an error.
func (s *Service) RemoveRegion(ctx context.Context, pokemonID, regionName string) (*models.Pokemon, error) {
	p, err := s.store.GetByID(ctx, pokemonID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("pokemon not found")
	}

	idx := -1
	for i := range p.Regions {
		if strings.EqualFold(p.Regions[i].RegionName, regionName) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return p, nil
	}

	p.Regions = append(p.Regions[:idx], p.Regions[idx+1:]...)

	updated, err := s.store.Replace(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NotFound("pokemon not found")
	}
	return updated, nil
}

// normalize upper-cases type tags so stored values match the enumeration
// and search's $all filter.
func normalize(p *models.Pokemon) {
	for i := range p.Types {
		p.Types[i] = strings.ToUpper(p.Types[i])
	}
	if p.Regions == nil {
		p.Regions = []models.Region{}
	}
	if p.Abilities == nil {
		p.Abilities = []string{}
	}
	if p.Weaknesses == nil {
		p.Weaknesses = []string{}
	}
	if p.Evolutions == nil {
		p.Evolutions = []models.Evolution{}
	}
}

func applyPatch(p *models.Pokemon, patch models.PokemonPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Types != nil {
		p.Types = *patch.Types
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Regions != nil {
		p.Regions = *patch.Regions
	}
	if patch.ImgURL != nil {
		p.ImgURL = *patch.ImgURL
	}
	if patch.ShinyImgURL != nil {
		p.ShinyImgURL = *patch.ShinyImgURL
	}
	if patch.Height != nil {
		p.Height = *patch.Height
	}
	if patch.Weight != nil {
		p.Weight = *patch.Weight
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Abilities != nil {
		p.Abilities = *patch.Abilities
	}
	if patch.Weaknesses != nil {
		p.Weaknesses = *patch.Weaknesses
	}
	if patch.Stats != nil {
		p.Stats = *patch.Stats
	}
	if patch.Evolutions != nil {
		p.Evolutions = *patch.Evolutions
	}
}
