package memory

import (
	"context"

	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

type trainerRepository struct {
	t *tables
}

func (r *trainerRepository) Create(_ context.Context, trainer *models.Trainer) error {
	trainer.ID = r.t.nextID("trainers")
	stored := *trainer
	stored.Pokemon = nil
	r.t.trainers[trainer.ID] = stored
	return nil
}

func (r *trainerRepository) GetByID(_ context.Context, id int64) (*models.Trainer, error) {
	trainer, ok := r.t.trainers[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("trainer", id)
	}
	return &trainer, nil
}

func (r *trainerRepository) List(_ context.Context, filter models.TrainerFilter) ([]*models.Trainer, error) {
	trainers := []*models.Trainer{}
	for _, trainer := range sortedValues(r.t.trainers) {
		if !containsFold(trainer.Name, filter.Name) || !containsFold(trainer.Gender, filter.Gender) {
			continue
		}
		trainers = append(trainers, &trainer)
	}
	return trainers, nil
}

func (r *trainerRepository) Update(_ context.Context, trainer *models.Trainer) error {
	if _, ok := r.t.trainers[trainer.ID]; !ok {
		return apperrors.NewNotFoundError("trainer", trainer.ID)
	}
	stored := *trainer
	stored.Pokemon = nil
	r.t.trainers[trainer.ID] = stored
	return nil
}

// Delete removes the trainer together with every pokemon it owns.
func (r *trainerRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.t.trainers[id]; !ok {
		return apperrors.NewNotFoundError("trainer", id)
	}
	delete(r.t.trainers, id)
	for pokemonID, pokemon := range r.t.pokemon {
		if pokemon.TrainerID == id {
			delete(r.t.pokemon, pokemonID)
		}
	}
	return nil
}

func (r *trainerRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.t.trainers[id]
	return ok, nil
}
