package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/app/repositories"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

// PokemonService defines the interface for pokemon operations
type PokemonService interface {
	ListPokemon(ctx context.Context, filter models.PokemonFilter) ([]dto.PokemonResponse, error)
	GetPokemon(ctx context.Context, id int64) (*dto.PokemonResponse, error)
	CreatePokemon(ctx context.Context, req *dto.PokemonRequest) (*dto.PokemonResponse, error)
	UpdatePokemon(ctx context.Context, id int64, req *dto.PokemonRequest) error
	DeletePokemon(ctx context.Context, id int64) error
}

// pokemonServiceImpl implements PokemonService
type pokemonServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewPokemonService creates a new PokemonService
func NewPokemonService(store repositories.Store, logger zerolog.Logger) PokemonService {
	return &pokemonServiceImpl{
		store:  store,
		logger: logger,
	}
}

// NewPokemon builds an unsaved pokemon, parsing typeName ignoring case. An
// unknown type name fails with ErrInvalidEnumValue.
func NewPokemon(name, species, typeName string, trainerID int64) (*models.Pokemon, error) {
	pokemonType, ok := models.ParsePokemonType(typeName)
	if !ok {
		return nil, apperrors.NewInvalidEnumValueError("type", typeName)
	}

	return &models.Pokemon{
		Name:      name,
		Species:   species,
		Type:      pokemonType,
		TrainerID: trainerID,
	}, nil
}

// requireTrainer fails with ErrReferenceNotFound unless the trainer exists
func requireTrainer(ctx context.Context, repos *repositories.Repositories, trainerID int64) error {
	found, err := repos.Trainers.Exists(ctx, trainerID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NewReferenceNotFoundError("trainer", trainerID)
	}
	return nil
}

// ListPokemon returns every pokemon matching filter, with trainer names
func (s *pokemonServiceImpl) ListPokemon(ctx context.Context, filter models.PokemonFilter) ([]dto.PokemonResponse, error) {
	log := requestLogger(ctx, s.logger)
	log.Debug().Str("species", filter.Species).Bool("byType", filter.Type != nil).Msg("Listing pokemon")

	var pokemon []*models.Pokemon
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		pokemon, err = repos.Pokemon.List(ctx, filter)
		return err
	})
	if err != nil {
		logFailure(log, err).Msg("Failed to list pokemon")
		return nil, fmt.Errorf("list pokemon: %w", err)
	}

	return dto.FromPokemonList(pokemon), nil
}

// GetPokemon returns one pokemon with its trainer's name, or ErrNotFound
func (s *pokemonServiceImpl) GetPokemon(ctx context.Context, id int64) (*dto.PokemonResponse, error) {
	log := requestLogger(ctx, s.logger)
	log.Debug().Int64("pokemonID", id).Msg("Getting pokemon")

	var pokemon *models.Pokemon
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		pokemon, err = repos.Pokemon.GetByID(ctx, id)
		return err
	})
	if err != nil {
		logFailure(log, err).Int64("pokemonID", id).Msg("Failed to get pokemon")
		return nil, fmt.Errorf("get pokemon %d: %w", id, err)
	}

	resp := dto.FromPokemon(pokemon)
	return &resp, nil
}

// CreatePokemon stores a new pokemon owned by req.TrainerID. The trainer is
// checked before the type, and nothing is stored when either check fails.
func (s *pokemonServiceImpl) CreatePokemon(ctx context.Context, req *dto.PokemonRequest) (*dto.PokemonResponse, error) {
	log := requestLogger(ctx, s.logger)

	var created *models.Pokemon
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if err := requireTrainer(ctx, repos, req.TrainerID); err != nil {
			return err
		}

		pokemon, err := NewPokemon(req.Name, req.Species, req.Type, req.TrainerID)
		if err != nil {
			return err
		}

		if err := repos.Pokemon.Create(ctx, pokemon); err != nil {
			return err
		}

		created, err = repos.Pokemon.GetByID(ctx, pokemon.ID)
		return err
	})
	if err != nil {
		logFailure(log, err).
			Int64("trainerID", req.TrainerID).
			Str("type", req.Type).
			Msg("Failed to create pokemon")
		return nil, fmt.Errorf("create pokemon: %w", err)
	}

	log.Info().
		Int64("pokemonID", created.ID).
		Int64("trainerID", created.TrainerID).
		Str("type", created.Type.String()).
		Msg("Pokemon created")

	resp := dto.FromPokemon(created)
	return &resp, nil
}

// UpdatePokemon overwrites every mutable field of pokemon id. Checks run in
// order: id mismatch, missing pokemon, missing trainer, unknown type.
func (s *pokemonServiceImpl) UpdatePokemon(ctx context.Context, id int64, req *dto.PokemonRequest) error {
	log := requestLogger(ctx, s.logger)

	if req.ID != id {
		err := apperrors.NewIDMismatchError(id, req.ID)
		logFailure(log, err).Int64("pokemonID", id).Int64("payloadID", req.ID).Msg("Rejected pokemon update")
		return err
	}

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := repos.Pokemon.GetByID(ctx, id); err != nil {
			return err
		}

		if err := requireTrainer(ctx, repos, req.TrainerID); err != nil {
			return err
		}

		pokemon, err := NewPokemon(req.Name, req.Species, req.Type, req.TrainerID)
		if err != nil {
			return err
		}
		pokemon.ID = id

		return repos.Pokemon.Update(ctx, pokemon)
	})
	if err != nil {
		logFailure(log, err).Int64("pokemonID", id).Msg("Failed to update pokemon")
		return fmt.Errorf("update pokemon %d: %w", id, err)
	}

	log.Info().Int64("pokemonID", id).Int64("trainerID", req.TrainerID).Msg("Pokemon updated")
	return nil
}

// DeletePokemon removes a pokemon, or fails with ErrNotFound
func (s *pokemonServiceImpl) DeletePokemon(ctx context.Context, id int64) error {
	log := requestLogger(ctx, s.logger)

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Pokemon.Delete(ctx, id)
	})
	if err != nil {
		logFailure(log, err).Int64("pokemonID", id).Msg("Failed to delete pokemon")
		return fmt.Errorf("delete pokemon %d: %w", id, err)
	}

	log.Info().Int64("pokemonID", id).Msg("Pokemon deleted")
	return nil
}
