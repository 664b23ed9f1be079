package models

import (
	"fmt"
	"strings"
)

// PkmnTypes is the closed enumeration of valid Pokémon type tags.
var PkmnTypes = []string{
	"NORMAL", "FEU", "EAU", "PLANTE", "ELECTRIK", "GLACE",
	"COMBAT", "POISON", "SOL", "VOL", "PSY", "INSECTE",
	"ROCHE", "SPECTRE", "DRAGON", "TENEBRES", "ACIER", "FEE",
}

var typeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(PkmnTypes))
	for _, t := range PkmnTypes {
		m[t] = struct{}{}
	}
	return m
}()

// ValidType reports whether t is a member of the type enumeration.
// Matching is case-insensitive.
func ValidType(t string) bool {
	_, ok := typeSet[strings.ToUpper(t)]
	return ok
}

// ValidateTypes checks the type list of a Pokémon: between one and two
// entries, each a member of the enumeration.
func ValidateTypes(types []string) error {
	if len(types) < 1 || len(types) > 2 {
		return fmt.Errorf("types must contain 1 or 2 entries, got %d", len(types))
	}
	for _, t := range types {
		if !ValidType(t) {
			return fmt.Errorf("unknown type %q", t)
		}
	}
	return nil
}
