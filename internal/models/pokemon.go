package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Region is a named regional pokédex entry attached to a Pokémon.
// regionName is unique within one Pokémon's region list.
type Region struct {
	RegionName          string `json:"regionName"          bson:"regionName"`
	RegionPokedexNumber int    `json:"regionPokedexNumber" bson:"regionPokedexNumber"`
}

// Gender flags which genders a species can have.
type Gender struct {
	Male   bool `json:"male"   bson:"male"`
	Female bool `json:"female" bson:"female"`
}

// Stats holds the base stat block.
type Stats struct {
	HP        int `json:"hp"        bson:"hp"`
	Attack    int `json:"attack"    bson:"attack"`
	Defense   int `json:"defense"   bson:"defense"`
	SpAttack  int `json:"spAttack"  bson:"spAttack"`
	SpDefense int `json:"spDefense" bson:"spDefense"`
	Speed     int `json:"speed"     bson:"speed"`
}

// Evolution references another species by national pokédex number.
type Evolution struct {
	PokemonID int    `json:"pokemonId" bson:"pokemonId"`
	Name      string `json:"name"      bson:"name"`
}

// Pokemon represents a document in the pokemons collection.
type Pokemon struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	Name        string             `json:"name"        bson:"name"`
	Types       []string           `json:"types"       bson:"types"`
	Description string             `json:"description" bson:"description,omitempty"`
	Regions     []Region           `json:"regions"     bson:"regions"`
	ImgURL      string             `json:"imgUrl"      bson:"imgUrl,omitempty"`
	ShinyImgURL string             `json:"shinyImgUrl" bson:"shinyImgUrl,omitempty"`
	Height      string             `json:"height"      bson:"height,omitempty"`
	Weight      string             `json:"weight"      bson:"weight,omitempty"`
	Category    string             `json:"category"    bson:"category,omitempty"`
	Gender      Gender             `json:"gender"      bson:"gender"`
	Abilities   []string           `json:"abilities"   bson:"abilities"`
	Weaknesses  []string           `json:"weaknesses"  bson:"weaknesses"`
	Stats       Stats              `json:"stats"       bson:"stats"`
	Evolutions  []Evolution        `json:"evolutions"  bson:"evolutions"`
}

// PokemonPatch is a partial update for PUT /api/pkmn. Nil fields are left
// untouched; the merged record is re-validated before being saved.
type PokemonPatch struct {
	Name        *string      `json:"name"`
	Types       *[]string    `json:"types"`
	Description *string      `json:"description"`
	Regions     *[]Region    `json:"regions"`
	ImgURL      *string      `json:"imgUrl"`
	ShinyImgURL *string      `json:"shinyImgUrl"`
	Height      *string      `json:"height"`
	Weight      *string      `json:"weight"`
	Category    *string      `json:"category"`
	Gender      *Gender      `json:"gender"`
	Abilities   *[]string    `json:"abilities"`
	Weaknesses  *[]string    `json:"weaknesses"`
	Stats       *Stats       `json:"stats"`
	Evolutions  *[]Evolution `json:"evolutions"`
}

// SearchFilter holds the query parameters of GET /api/pkmn/search.
// TypeOne and TypeTwo are combined with AND semantics: both must appear
// among a Pokémon's types, in any position. Page and Size of zero disable
// windowing.
type SearchFilter struct {
	PartialName string
	TypeOne     string
	TypeTwo     string
	Page        int
	Size        int
}
