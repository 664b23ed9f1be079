package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clmarcel/pokedex-api/internal/domain"
	"github.com/clmarcel/pokedex-api/internal/models"
)

type fakeStore struct {
	pokemon map[primitive.ObjectID]models.Pokemon
}

func newFakeStore() *fakeStore {
	return &fakeStore{pokemon: map[primitive.ObjectID]models.Pokemon{}}
}

func (s *fakeStore) Insert(_ context.Context, p *models.Pokemon) (*models.Pokemon, error) {
	p.ID = primitive.NewObjectID()
	s.pokemon[p.ID] = *p
	return p, nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*models.Pokemon, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.Validation("invalid pokemon id")
	}
	p, ok := s.pokemon[oid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *fakeStore) GetByName(_ context.Context, name string) (*models.Pokemon, error) {
	for _, p := range s.pokemon {
		if strings.EqualFold(p.Name, name) {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) List(_ context.Context) ([]models.Pokemon, error) {
	return s.sorted(), nil
}

func (s *fakeStore) Search(_ context.Context, f models.SearchFilter) ([]models.Pokemon, int64, error) {
	var matches []models.Pokemon
	for _, p := range s.sorted() {
		if f.PartialName != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.PartialName)) {
			continue
		}
		if f.TypeOne != "" && !hasType(p, f.TypeOne) {
			continue
		}
		if f.TypeTwo != "" && !hasType(p, f.TypeTwo) {
			continue
		}
		matches = append(matches, p)
	}
	total := int64(len(matches))
	if f.Page > 0 && f.Size > 0 {
		start := (f.Page - 1) * f.Size
		if start > len(matches) {
			start = len(matches)
		}
		end := start + f.Size
		if end > len(matches) {
			end = len(matches)
		}
		matches = matches[start:end]
	} else if f.Size > 0 && f.Size < len(matches) {
		matches = matches[:f.Size]
	}
	return matches, total, nil
}

func (s *fakeStore) Replace(_ context.Context, p *models.Pokemon) (*models.Pokemon, error) {
	if _, ok := s.pokemon[p.ID]; !ok {
		return nil, nil
	}
	s.pokemon[p.ID] = *p
	return p, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) (*models.Pokemon, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.Validation("invalid pokemon id")
	}
	p, ok := s.pokemon[oid]
	if !ok {
		return nil, nil
	}
	delete(s.pokemon, oid)
	return &p, nil
}

func (s *fakeStore) sorted() []models.Pokemon {
	out := make([]models.Pokemon, 0, len(s.pokemon))
	for _, p := range s.pokemon {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out
}

func hasType(p models.Pokemon, t string) bool {
	for _, v := range p.Types {
		if strings.EqualFold(v, t) {
			return true
		}
	}
	return false
}

func TestCreatePokemon(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, &models.Pokemon{Name: "Pikachu", Types: []string{"electrik"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ELECTRIK"}, created.Types, "types are stored upper-cased")

	// Duplicate name (case-insensitive) is a conflict and leaves the
	// catalog unchanged.
	_, err = svc.Create(ctx, &models.Pokemon{Name: "PIKACHU", Types: []string{"ELECTRIK"}})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Len(t, store.pokemon, 1)
}

func TestCreatePokemonValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())

	tests := []struct {
		name    string
		pokemon models.Pokemon
	}{
		{"missing name", models.Pokemon{Types: []string{"FEU"}}},
		{"no types", models.Pokemon{Name: "Magicarpe"}},
		{"three types", models.Pokemon{Name: "Magicarpe", Types: []string{"EAU", "VOL", "FEU"}}},
		{"unknown type", models.Pokemon{Name: "Magicarpe", Types: []string{"BROUHAHA"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tc.pokemon)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestUpdatePokemon(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, &models.Pokemon{Name: "Salameche", Types: []string{"FEU"}})
	require.NoError(t, err)

	desc := "Crache des flammes."
	updated, err := svc.Update(ctx, created.ID.Hex(), models.PokemonPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, "Salameche", updated.Name, "unpatched fields survive the merge")

	// Post-merge invariant violation is rejected.
	bad := []string{"FEU", "VOL", "DRAGON"}
	_, err = svc.Update(ctx, created.ID.Hex(), models.PokemonPatch{Types: &bad})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.Update(ctx, primitive.NewObjectID().Hex(), models.PokemonPatch{Description: &desc})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestDeletePokemon(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, &models.Pokemon{Name: "Rattata", Types: []string{"NORMAL"}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.Hex()))
	err = svc.Delete(ctx, created.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestAddRegionUpserts(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, &models.Pokemon{Name: "Pikachu", Types: []string{"ELECTRIK"}})
	require.NoError(t, err)

	p, err := svc.AddRegion(ctx, created.ID.Hex(), "Kanto", 25)
	require.NoError(t, err)
	require.Len(t, p.Regions, 1)
	assert.Equal(t, 25, p.Regions[0].RegionPokedexNumber)

	// Same region name overwrites the number instead of appending.
	p, err = svc.AddRegion(ctx, created.ID.Hex(), "Kanto", 26)
	require.NoError(t, err)
	require.Len(t, p.Regions, 1)
	assert.Equal(t, 26, p.Regions[0].RegionPokedexNumber)

	p, err = svc.AddRegion(ctx, created.ID.Hex(), "Johto", 22)
	require.NoError(t, err)
	assert.Len(t, p.Regions, 2)

	_, err = svc.AddRegion(ctx, primitive.NewObjectID().Hex(), "Kanto", 1)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestRemoveRegion(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, &models.Pokemon{Name: "Pikachu", Types: []string{"ELECTRIK"}})
	require.NoError(t, err)
	_, err = svc.AddRegion(ctx, created.ID.Hex(), "Kanto", 25)
	require.NoError(t, err)

	// Case-insensitive match.
	p, err := svc.RemoveRegion(ctx, created.ID.Hex(), "kAnTo")
	require.NoError(t, err)
	assert.Empty(t, p.Regions)

	// Unknown region name is a no-op, not an error.
	p, err = svc.RemoveRegion(ctx, created.ID.Hex(), "Hoenn")
	require.NoError(t, err)
	assert.Empty(t, p.Regions)

	_, err = svc.RemoveRegion(ctx, primitive.NewObjectID().Hex(), "Kanto")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestSearchByTypesIsOrderIndependent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Create(ctx, &models.Pokemon{Name: "Dracaufeu", Types: []string{"FEU", "VOL"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Pokemon{Name: "Salameche", Types: []string{"FEU"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Pokemon{Name: "Roucool", Types: []string{"VOL", "NORMAL"}})
	require.NoError(t, err)

	for _, f := range []models.SearchFilter{
		{TypeOne: "FEU", TypeTwo: "VOL"},
		{TypeOne: "VOL", TypeTwo: "FEU"},
	} {
		matches, count, err := svc.Search(ctx, f)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, "Dracaufeu", matches[0].Name)
	}
}

func TestSearchPaginationCountsAllMatches(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	for _, name := range []string{"Bulbizarre", "Herbizarre", "Florizarre"} {
		_, err := svc.Create(ctx, &models.Pokemon{Name: name, Types: []string{"PLANTE"}})
		require.NoError(t, err)
	}

	matches, count, err := svc.Search(ctx, models.SearchFilter{PartialName: "zarre", Page: 2, Size: 2})
	require.NoError(t, err)
	assert.Len(t, matches, 1, "second page holds the remainder")
	assert.Equal(t, int64(3), count, "count covers the whole match set, not the page")
}

func TestGetByIDOrName(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, &models.Pokemon{Name: "Pikachu", Types: []string{"ELECTRIK"}})
	require.NoError(t, err)

	p, err := svc.Get(ctx, created.ID.Hex(), "")
	require.NoError(t, err)
	require.NotNil(t, p)

	p, err = svc.Get(ctx, "", "pikachu")
	require.NoError(t, err)
	require.NotNil(t, p, "name lookup is case-insensitive")

	p, err = svc.Get(ctx, "", "Missingno")
	require.NoError(t, err)
	assert.Nil(t, p, "absence is a nil result, not an error")

	_, err = svc.Get(ctx, "oops", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "malformed id is a validation failure")
}

func TestTypesReturnsACopy(t *testing.T) {
	svc := NewService(newFakeStore())

	types := svc.Types()
	require.Len(t, types, 18)
	types[0] = "MUTATED"
	assert.Equal(t, "NORMAL", svc.Types()[0])
}
