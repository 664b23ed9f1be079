package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clmarcel/pokedex-api/internal/domain"
	"github.com/clmarcel/pokedex-api/internal/models"
)

// TrainerStore handles trainer profile CRUD against the trainers
// collection. Trainers are keyed by username.
type TrainerStore struct {
	col *mongo.Collection
}

func NewTrainerStore(db *mongo.Database) *TrainerStore {
	return &TrainerStore{col: db.Collection("trainers")}
}

func (s *TrainerStore) Insert(ctx context.Context, t *models.Trainer) (*models.Trainer, error) {
	if t.CreationDate.IsZero() {
		t.CreationDate = time.Now()
	}
	if t.PkmnSeen == nil {
		t.PkmnSeen = []primitive.ObjectID{}
	}
	if t.PkmnCatch == nil {
		t.PkmnCatch = []primitive.ObjectID{}
	}
	res, err := s.col.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.Conflict("this user already has a trainer")
		}
		return nil, fmt.Errorf("insert trainer: %w", err)
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return t, nil
}

// GetByUsername returns nil without error when no trainer matches.
func (s *TrainerStore) GetByUsername(ctx context.Context, username string) (*models.Trainer, error) {
	var t models.Trainer
	if err := s.col.FindOne(ctx, bson.M{"username": username}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Update applies the non-nil patch fields and returns the updated trainer,
// or nil when no trainer matches. The username is not updatable.
func (s *TrainerStore) Update(ctx context.Context, username string, patch models.TrainerPatch) (*models.Trainer, error) {
	set := bson.M{}
	if patch.ImgURL != nil {
		set["imgUrl"] = *patch.ImgURL
	}
	if patch.TrainerName != nil {
		set["trainerName"] = *patch.TrainerName
	}
	if len(set) == 0 {
		return s.GetByUsername(ctx, username)
	}

	var t models.Trainer
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"username": username},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Save overwrites the stored document with t, matched by its id. Used by
// the mark transition, which rewrites both reference lists at once.
func (s *TrainerStore) Save(ctx context.Context, t *models.Trainer) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return fmt.Errorf("save trainer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("trainer no longer exists")
	}
	return nil
}

// Delete removes a trainer and returns the deleted record, or nil when no
// trainer matched.
func (s *TrainerStore) Delete(ctx context.Context, username string) (*models.Trainer, error) {
	var t models.Trainer
	if err := s.col.FindOneAndDelete(ctx, bson.M{"username": username}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
