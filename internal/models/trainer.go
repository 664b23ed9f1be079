package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainer represents a document in the trainers collection. It is keyed by
// the owning user's username rather than a foreign key, and references
// Pokémon by id only. pkmnSeen and pkmnCatch are disjoint: a given Pokémon
// id appears in at most one of the two lists.
type Trainer struct {
	ID           primitive.ObjectID   `json:"id"           bson:"_id,omitempty"`
	Username     string               `json:"username"     bson:"username"`
	ImgURL       string               `json:"imgUrl"       bson:"imgUrl,omitempty"`
	TrainerName  string               `json:"trainerName"  bson:"trainerName"`
	CreationDate time.Time            `json:"creationDate" bson:"creationDate"`
	PkmnSeen     []primitive.ObjectID `json:"pkmnSeen"     bson:"pkmnSeen"`
	PkmnCatch    []primitive.ObjectID `json:"pkmnCatch"    bson:"pkmnCatch"`
}

// TrainerProfile is a Trainer with the seen/caught references expanded to
// full Pokémon records. This is what user-facing reads return.
type TrainerProfile struct {
	ID           primitive.ObjectID `json:"id"`
	Username     string             `json:"username"`
	ImgURL       string             `json:"imgUrl"`
	TrainerName  string             `json:"trainerName"`
	CreationDate time.Time          `json:"creationDate"`
	PkmnSeen     []Pokemon          `json:"pkmnSeen"`
	PkmnCatch    []Pokemon          `json:"pkmnCatch"`
}

// TrainerCreateRequest is the JSON body for POST /trainer. TrainerName
// defaults to the owner's username when empty.
type TrainerCreateRequest struct {
	ImgURL      string `json:"imgUrl"`
	TrainerName string `json:"trainerName"`
}

// TrainerPatch carries the updatable profile fields for PUT /trainer.
// The username cannot be renamed through this path.
type TrainerPatch struct {
	ImgURL      *string `json:"imgUrl"`
	TrainerName *string `json:"trainerName"`
}

// MarkRequest is the JSON body for POST /trainer/mark.
type MarkRequest struct {
	PokemonID  string `json:"pokemonId"  validate:"required"`
	IsCaptured *bool  `json:"isCaptured" validate:"required"`
}
