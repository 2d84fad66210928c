package memory

import (
	"context"

	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

type pokemonRepository struct {
	t *tables
}

// withTrainer returns a copy of p carrying a copy of its trainer.
func (r *pokemonRepository) withTrainer(p models.Pokemon) *models.Pokemon {
	if trainer, ok := r.t.trainers[p.TrainerID]; ok {
		p.Trainer = &trainer
	}
	return &p
}

func (r *pokemonRepository) store(pokemon *models.Pokemon) error {
	if _, ok := r.t.trainers[pokemon.TrainerID]; !ok {
		return apperrors.NewReferenceNotFoundError("trainer", pokemon.TrainerID)
	}
	stored := *pokemon
	stored.Trainer = nil
	r.t.pokemon[pokemon.ID] = stored
	return nil
}

func (r *pokemonRepository) Create(_ context.Context, pokemon *models.Pokemon) error {
	if _, ok := r.t.trainers[pokemon.TrainerID]; !ok {
		return apperrors.NewReferenceNotFoundError("trainer", pokemon.TrainerID)
	}
	pokemon.ID = r.t.nextID("pokemon")
	return r.store(pokemon)
}

func (r *pokemonRepository) GetByID(_ context.Context, id int64) (*models.Pokemon, error) {
	pokemon, ok := r.t.pokemon[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("pokemon", id)
	}
	return r.withTrainer(pokemon), nil
}

func (r *pokemonRepository) List(_ context.Context, filter models.PokemonFilter) ([]*models.Pokemon, error) {
	pokemon := []*models.Pokemon{}
	for _, p := range sortedValues(r.t.pokemon) {
		if filter.Type != nil && p.Type != *filter.Type {
			continue
		}
		if !containsFold(p.Species, filter.Species) {
			continue
		}
		pokemon = append(pokemon, r.withTrainer(p))
	}
	return pokemon, nil
}

func (r *pokemonRepository) ListByTrainerID(_ context.Context, trainerID int64) ([]*models.Pokemon, error) {
	pokemon := []*models.Pokemon{}
	for _, p := range sortedValues(r.t.pokemon) {
		if p.TrainerID == trainerID {
			pokemon = append(pokemon, r.withTrainer(p))
		}
	}
	return pokemon, nil
}

func (r *pokemonRepository) CountByTrainerIDs(_ context.Context, trainerIDs []int64) (map[int64]int, error) {
	wanted := make(map[int64]bool, len(trainerIDs))
	for _, id := range trainerIDs {
		wanted[id] = true
	}

	counts := make(map[int64]int)
	for _, p := range r.t.pokemon {
		if wanted[p.TrainerID] {
			counts[p.TrainerID]++
		}
	}
	return counts, nil
}

func (r *pokemonRepository) Update(_ context.Context, pokemon *models.Pokemon) error {
	if _, ok := r.t.pokemon[pokemon.ID]; !ok {
		return apperrors.NewNotFoundError("pokemon", pokemon.ID)
	}
	return r.store(pokemon)
}

func (r *pokemonRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.t.pokemon[id]; !ok {
		return apperrors.NewNotFoundError("pokemon", id)
	}
	delete(r.t.pokemon, id)
	return nil
}
