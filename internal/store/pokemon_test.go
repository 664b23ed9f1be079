package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clmarcel/pokedex-api/internal/models"
)

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter models.SearchFilter
		want   bson.M
	}{
		{
			name:   "empty filter matches everything",
			filter: models.SearchFilter{},
			want:   bson.M{},
		},
		{
			name:   "partial name is a case-insensitive regex",
			filter: models.SearchFilter{PartialName: "pika"},
			want:   bson.M{"name": primitive.Regex{Pattern: "pika", Options: "i"}},
		},
		{
			name:   "regex metacharacters are escaped",
			filter: models.SearchFilter{PartialName: "nidoran."},
			want:   bson.M{"name": primitive.Regex{Pattern: `nidoran\.`, Options: "i"}},
		},
		{
			name:   "single type",
			filter: models.SearchFilter{TypeOne: "feu"},
			want:   bson.M{"types": bson.M{"$all": []string{"FEU"}}},
		},
		{
			name:   "both types use $all semantics",
			filter: models.SearchFilter{TypeOne: "FEU", TypeTwo: "vol"},
			want:   bson.M{"types": bson.M{"$all": []string{"FEU", "VOL"}}},
		},
		{
			name:   "typeTwo alone still filters",
			filter: models.SearchFilter{TypeTwo: "VOL"},
			want:   bson.M{"types": bson.M{"$all": []string{"VOL"}}},
		},
		{
			name:   "name and types combine",
			filter: models.SearchFilter{PartialName: "dra", TypeOne: "DRAGON"},
			want: bson.M{
				"name":  primitive.Regex{Pattern: "dra", Options: "i"},
				"types": bson.M{"$all": []string{"DRAGON"}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, searchQuery(tc.filter))
		})
	}
}
