package models

import "strings"

// PokemonType is the elemental kind of a pokemon. The numeric value is what
// gets persisted; the name is what crosses the API boundary.
type PokemonType int

// Pokemon types, in persisted order.
const (
	TypeNormal PokemonType = iota
	TypeFire
	TypeWater
	TypeElectric
	TypeGrass
	TypeIce
	TypeFighting
	TypePoison
	TypeGround
	TypeFlying
	TypePsychic
	TypeBug
	TypeRock
	TypeGhost
	TypeDragon
	TypeDark
	TypeSteel
	TypeFairy
)

var pokemonTypeNames = [...]string{
	"Normal", "Fire", "Water", "Electric", "Grass", "Ice",
	"Fighting", "Poison", "Ground", "Flying", "Psychic", "Bug",
	"Rock", "Ghost", "Dragon", "Dark", "Steel", "Fairy",
}

// AllPokemonTypes returns every known type in persisted order.
func AllPokemonTypes() []PokemonType {
	types := make([]PokemonType, len(pokemonTypeNames))
	for i := range pokemonTypeNames {
		types[i] = PokemonType(i)
	}
	return types
}

// Valid reports whether t is one of the known types.
func (t PokemonType) Valid() bool {
	return t >= TypeNormal && int(t) < len(pokemonTypeNames)
}

// String returns the canonical name, e.g. "Electric".
func (t PokemonType) String() string {
	if !t.Valid() {
		return ""
	}
	return pokemonTypeNames[t]
}

// ParsePokemonType matches s against the known type names, ignoring case and
// surrounding whitespace. The second result is false when s names no type.
func ParsePokemonType(s string) (PokemonType, bool) {
	s = strings.TrimSpace(s)
	for i, name := range pokemonTypeNames {
		if strings.EqualFold(name, s) {
			return PokemonType(i), true
		}
	}
	return 0, false
}

// Pokemon belongs to exactly one trainer.
type Pokemon struct {
	ID        int64       `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Species   string      `json:"species" db:"species"`
	Type      PokemonType `json:"type" db:"type"`
	TrainerID int64       `json:"trainerId" db:"trainer_id"`

	// Relations (populated when needed)
	Trainer *Trainer `json:"trainer,omitempty"`
}

// PokemonFilter narrows a pokemon listing. Zero values mean no filter.
type PokemonFilter struct {
	Type    *PokemonType
	Species string // case-insensitive substring
}
