package models

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

// Trainer owns zero or more pokemon.
type Trainer struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Surname string `json:"surname" db:"surname"`
	Age     int    `json:"age" db:"age"`
	Gender  string `json:"gender" db:"gender"`

	// Relations (populated when needed)
	Pokemon []*Pokemon `json:"pokemon,omitempty"`
}

// TrainerParams holds everything needed to create a trainer. Any field left
// unset keeps its zero value.
type TrainerParams struct {
	Name    string
	Surname string
	Age     int
	Gender  string
}

// NewTrainer builds an unsaved trainer from p.
func NewTrainer(p TrainerParams) *Trainer {
	return &Trainer{
		Name:    p.Name,
		Surname: p.Surname,
		Age:     p.Age,
		Gender:  p.Gender,
	}
}

// TrainerFilter narrows a trainer listing. Both filters are case-insensitive
// substring matches and are combined with AND.
type TrainerFilter struct {
	Name   string
	Gender string
}

// Field limits enforced by the trainers table.
const (
	TrainerNameMaxLength    = 100
	TrainerSurnameMaxLength = 100
)

// Validate checks the rules the trainers table enforces: name and gender are
// required, name and surname hold at most 100 characters.
func (t *Trainer) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if utf8.RuneCountInString(t.Name) > TrainerNameMaxLength {
		return apperrors.NewValidationError("name", "name must be at most "+strconv.Itoa(TrainerNameMaxLength)+" characters")
	}
	if utf8.RuneCountInString(t.Surname) > TrainerSurnameMaxLength {
		return apperrors.NewValidationError("surname", "surname must be at most "+strconv.Itoa(TrainerSurnameMaxLength)+" characters")
	}
	if strings.TrimSpace(t.Gender) == "" {
		return apperrors.NewValidationError("gender", "gender is required")
	}
	return nil
}
