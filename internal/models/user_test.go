package models

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"sacha@example.com", "a.b@mail.fr", "x-y@sub.domain.org"}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}

	invalid := []string{"", "sacha", "sacha@", "@example.com", "a b@example.com"}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}

func TestFormatNames(t *testing.T) {
	u := User{FirstName: "sAcHa", LastName: "ketchum"}
	u.FormatNames()
	assert.Equal(t, "Sacha", u.FirstName)
	assert.Equal(t, "KETCHUM", u.LastName)

	accent := User{FirstName: "élodie", LastName: "dubois"}
	accent.FormatNames()
	assert.Equal(t, "Élodie", accent.FirstName)
	assert.True(t, utf8.ValidString(accent.FirstName))
	assert.Equal(t, "DUBOIS", accent.LastName)

	empty := User{}
	empty.FormatNames()
	assert.Empty(t, empty.FirstName)
	assert.Empty(t, empty.LastName)
}

func TestValidateTypes(t *testing.T) {
	assert.NoError(t, ValidateTypes([]string{"FEU"}))
	assert.NoError(t, ValidateTypes([]string{"FEU", "VOL"}))
	assert.NoError(t, ValidateTypes([]string{"feu"}), "membership check is case-insensitive")

	assert.Error(t, ValidateTypes(nil))
	assert.Error(t, ValidateTypes([]string{}))
	assert.Error(t, ValidateTypes([]string{"FEU", "VOL", "DRAGON"}))
	assert.Error(t, ValidateTypes([]string{"LUMIERE"}))
}
