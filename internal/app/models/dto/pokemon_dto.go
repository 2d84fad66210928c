package dto

import "github.com/yigit/trainerapi/internal/app/models"

// PokemonRequest is the body of the create and update pokemon endpoints.
// Type is matched against the known type names ignoring case.
type PokemonRequest struct {
	ID        int64  `json:"pokemonId" example:"25"`
	Name      string `json:"name" example:"Pikachu"`
	Species   string `json:"species" example:"Mouse"`
	Type      string `json:"type" example:"electric"`
	TrainerID int64  `json:"trainerId" example:"1"`
}

// PokemonResponse is the external shape of a pokemon
type PokemonResponse struct {
	ID             int64  `json:"pokemonId" example:"25"`
	Name           string `json:"name" example:"Pikachu"`
	Species        string `json:"species" example:"Mouse"`
	Type           string `json:"type" example:"Electric"`
	TrainerID      int64  `json:"trainerId" example:"1"`
	TrainerName    string `json:"trainerName" example:"Ash"`
	TrainerSurname string `json:"trainerSurname" example:"Ketchum"`
}

// FromPokemon converts a models.Pokemon to a PokemonResponse. The trainer
// fields stay empty when the trainer was not loaded.
func FromPokemon(pokemon *models.Pokemon) PokemonResponse {
	if pokemon == nil {
		return PokemonResponse{}
	}

	trainerName := ""
	trainerSurname := ""

	if pokemon.Trainer != nil {
		trainerName = pokemon.Trainer.Name
		trainerSurname = pokemon.Trainer.Surname
	}

	return PokemonResponse{
		ID:             pokemon.ID,
		Name:           pokemon.Name,
		Species:        pokemon.Species,
		Type:           pokemon.Type.String(),
		TrainerID:      pokemon.TrainerID,
		TrainerName:    trainerName,
		TrainerSurname: trainerSurname,
	}
}

// FromPokemonList converts a slice of pokemon, never returning nil
func FromPokemonList(pokemon []*models.Pokemon) []PokemonResponse {
	responses := make([]PokemonResponse, 0, len(pokemon))
	for _, p := range pokemon {
		responses = append(responses, FromPokemon(p))
	}
	return responses
}
