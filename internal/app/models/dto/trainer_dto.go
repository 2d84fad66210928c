package dto

import "github.com/yigit/trainerapi/internal/app/models"

// TrainerRequest is the body of the create and update trainer endpoints
type TrainerRequest struct {
	ID      int64  `json:"trainerId" example:"1"`
	Name    string `json:"name" binding:"required,max=100" example:"Ash"`
	Surname string `json:"surname" binding:"max=100" example:"Ketchum"`
	Age     int    `json:"age" example:"10"`
	Gender  string `json:"gender" binding:"required" example:"M"`
}

// Params returns the construction parameters for a new trainer
func (r TrainerRequest) Params() models.TrainerParams {
	return models.TrainerParams{
		Name:    r.Name,
		Surname: r.Surname,
		Age:     r.Age,
		Gender:  r.Gender,
	}
}

// ApplyTo copies the scalar fields onto trainer. The pokemon collection is
// never written from a request.
func (r TrainerRequest) ApplyTo(trainer *models.Trainer) {
	trainer.Name = r.Name
	trainer.Surname = r.Surname
	trainer.Age = r.Age
	trainer.Gender = r.Gender
}

// TrainerResponse is the external shape of a trainer
type TrainerResponse struct {
	ID               int64  `json:"trainerId" example:"1"`
	Name             string `json:"name" example:"Ash"`
	Surname          string `json:"surname" example:"Ketchum"`
	Age              int    `json:"age" example:"10"`
	Gender           string `json:"gender" example:"M"`
	NumberOfPokemons int    `json:"numberOfPokemons" example:"6"`
}

// FromTrainer converts a models.Trainer to a TrainerResponse. pokemonCount is
// supplied by the caller, who knows how many pokemon the trainer owns.
func FromTrainer(trainer *models.Trainer, pokemonCount int) TrainerResponse {
	if trainer == nil {
		return TrainerResponse{}
	}

	return TrainerResponse{
		ID:               trainer.ID,
		Name:             trainer.Name,
		Surname:          trainer.Surname,
		Age:              trainer.Age,
		Gender:           trainer.Gender,
		NumberOfPokemons: pokemonCount,
	}
}
