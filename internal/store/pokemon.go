package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clmarcel/pokedex-api/internal/domain"
	"github.com/clmarcel/pokedex-api/internal/models"
)

// PokemonStore handles catalog CRUD against the pokemons collection.
type PokemonStore struct {
	col *mongo.Collection
}

func NewPokemonStore(db *mongo.Database) *PokemonStore {
	return &PokemonStore{col: db.Collection("pokemons")}
}

func (s *PokemonStore) Insert(ctx context.Context, p *models.Pokemon) (*models.Pokemon, error) {
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert pokemon: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

// GetByID returns nil without error when no Pokémon matches. A malformed id
// is a validation failure, not an absence.
func (s *PokemonStore) GetByID(ctx context.Context, id string) (*models.Pokemon, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.Validation("invalid pokemon id")
	}
	var p models.Pokemon
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByName does an exact, case-insensitive name lookup.
func (s *PokemonStore) GetByName(ctx context.Context, name string) (*models.Pokemon, error) {
	filter := bson.M{"name": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(name) + "$",
		Options: "i",
	}}
	var p models.Pokemon
	if err := s.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *PokemonStore) List(ctx context.Context) ([]models.Pokemon, error) {
	cur, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pkmn []models.Pokemon
	if err := cur.All(ctx, &pkmn); err != nil {
		return nil, err
	}
	return pkmn, nil
}

// searchQuery builds the Mongo filter for a catalog search. Both requested
// types must appear among a document's types ($all), in any order.
func searchQuery(f models.SearchFilter) bson.M {
	q := bson.M{}

	if f.PartialName != "" {
		q["name"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(f.PartialName),
			Options: "i",
		}
	}

	var types []string
	if f.TypeOne != "" {
		types = append(types, strings.ToUpper(f.TypeOne))
	}
	if f.TypeTwo != "" {
		types = append(types, strings.ToUpper(f.TypeTwo))
	}
	if len(types) > 0 {
		q["types"] = bson.M{"$all": types}
	}

	return q
}

// Search returns one page of matches plus the total match count across all
// pages. Results are ordered by _id so pagination is stable.
func (s *PokemonStore) Search(ctx context.Context, f models.SearchFilter) ([]models.Pokemon, int64, error) {
	query := searchQuery(f)

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if f.Page > 0 && f.Size > 0 {
		opts.SetSkip(int64((f.Page - 1) * f.Size)).SetLimit(int64(f.Size))
	} else if f.Size > 0 {
		opts.SetLimit(int64(f.Size))
	}

	cur, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var pkmn []models.Pokemon
	if err := cur.All(ctx, &pkmn); err != nil {
		return nil, 0, err
	}

	count, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return pkmn, count, nil
}

// GetByIDs fetches the Pokémon whose ids appear in ids. Missing ids are
// silently skipped; trainer collections may hold references to deleted
// Pokémon.
func (s *PokemonStore) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Pokemon, error) {
	if len(ids) == 0 {
		return []models.Pokemon{}, nil
	}
	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pkmn []models.Pokemon
	if err := cur.All(ctx, &pkmn); err != nil {
		return nil, err
	}
	return pkmn, nil
}

// Replace overwrites the stored document with p, matched by its id.
func (s *PokemonStore) Replace(ctx context.Context, p *models.Pokemon) (*models.Pokemon, error) {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return nil, fmt.Errorf("replace pokemon: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return p, nil
}

// Delete removes a Pokémon and returns the deleted record, or nil when no
// Pokémon matched. Trainer references to the deleted id are left dangling.
func (s *PokemonStore) Delete(ctx context.Context, id string) (*models.Pokemon, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.Validation("invalid pokemon id")
	}
	var p models.Pokemon
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
