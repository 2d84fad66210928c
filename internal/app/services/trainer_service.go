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

// TrainerService defines the interface for trainer operations
type TrainerService interface {
	ListTrainers(ctx context.Context, filter models.TrainerFilter) ([]dto.TrainerResponse, error)
	GetTrainer(ctx context.Context, id int64) (*dto.TrainerResponse, error)
	CreateTrainer(ctx context.Context, req *dto.TrainerRequest) (*dto.TrainerResponse, error)
	UpdateTrainer(ctx context.Context, id int64, req *dto.TrainerRequest) error
	DeleteTrainer(ctx context.Context, id int64) error
}

// trainerServiceImpl implements TrainerService
type trainerServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewTrainerService creates a new TrainerService
func NewTrainerService(store repositories.Store, logger zerolog.Logger) TrainerService {
	return &trainerServiceImpl{
		store:  store,
		logger: logger,
	}
}

// ListTrainers returns the trainers matching filter with their pokemon counts
func (s *trainerServiceImpl) ListTrainers(ctx context.Context, filter models.TrainerFilter) ([]dto.TrainerResponse, error) {
	log := requestLogger(ctx, s.logger)
	log.Debug().Str("name", filter.Name).Str("gender", filter.Gender).Msg("Listing trainers")

	var trainers []*models.Trainer
	var counts map[int64]int
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		trainers, err = repos.Trainers.List(ctx, filter)
		if err != nil {
			return err
		}

		ids := make([]int64, len(trainers))
		for i, t := range trainers {
			ids[i] = t.ID
		}
		counts, err = repos.Pokemon.CountByTrainerIDs(ctx, ids)
		return err
	})
	if err != nil {
		logFailure(log, err).Msg("Failed to list trainers")
		return nil, fmt.Errorf("list trainers: %w", err)
	}

	responses := make([]dto.TrainerResponse, 0, len(trainers))
	for _, t := range trainers {
		responses = append(responses, dto.FromTrainer(t, counts[t.ID]))
	}
	return responses, nil
}

// GetTrainer returns a trainer with its owned pokemon loaded, or ErrNotFound
func (s *trainerServiceImpl) GetTrainer(ctx context.Context, id int64) (*dto.TrainerResponse, error) {
	log := requestLogger(ctx, s.logger)
	log.Debug().Int64("trainerID", id).Msg("Getting trainer")

	var trainer *models.Trainer
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		trainer, err = repos.Trainers.GetByID(ctx, id)
		if err != nil {
			return err
		}

		trainer.Pokemon, err = repos.Pokemon.ListByTrainerID(ctx, id)
		return err
	})
	if err != nil {
		logFailure(log, err).Int64("trainerID", id).Msg("Failed to get trainer")
		return nil, fmt.Errorf("get trainer %d: %w", id, err)
	}

	resp := dto.FromTrainer(trainer, len(trainer.Pokemon))
	return &resp, nil
}

// CreateTrainer stores a new trainer. Omitted optional fields keep their zero
// values; a missing name or gender fails with ErrValidationFailed.
func (s *trainerServiceImpl) CreateTrainer(ctx context.Context, req *dto.TrainerRequest) (*dto.TrainerResponse, error) {
	log := requestLogger(ctx, s.logger)

	trainer := models.NewTrainer(req.Params())
	if err := trainer.Validate(); err != nil {
		logFailure(log, err).Str("name", req.Name).Msg("Rejected trainer")
		return nil, fmt.Errorf("create trainer: %w", err)
	}

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Trainers.Create(ctx, trainer)
	})
	if err != nil {
		logFailure(log, err).Str("name", req.Name).Msg("Failed to create trainer")
		return nil, fmt.Errorf("create trainer: %w", err)
	}

	log.Info().Int64("trainerID", trainer.ID).Str("name", trainer.Name).Msg("Trainer created")

	resp := dto.FromTrainer(trainer, 0)
	return &resp, nil
}

// UpdateTrainer overwrites the scalar fields of trainer id. Owned pokemon are
// left untouched.
func (s *trainerServiceImpl) UpdateTrainer(ctx context.Context, id int64, req *dto.TrainerRequest) error {
	log := requestLogger(ctx, s.logger)

	if req.ID != id {
		err := apperrors.NewIDMismatchError(id, req.ID)
		logFailure(log, err).Int64("trainerID", id).Int64("payloadID", req.ID).Msg("Rejected trainer update")
		return err
	}

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		trainer, err := repos.Trainers.GetByID(ctx, id)
		if err != nil {
			return err
		}

		req.ApplyTo(trainer)
		if err := trainer.Validate(); err != nil {
			return err
		}
		return repos.Trainers.Update(ctx, trainer)
	})
	if err != nil {
		logFailure(log, err).Int64("trainerID", id).Msg("Failed to update trainer")
		return fmt.Errorf("update trainer %d: %w", id, err)
	}

	log.Info().Int64("trainerID", id).Msg("Trainer updated")
	return nil
}

// DeleteTrainer removes a trainer and every pokemon it owns
func (s *trainerServiceImpl) DeleteTrainer(ctx context.Context, id int64) error {
	log := requestLogger(ctx, s.logger)

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Trainers.Delete(ctx, id)
	})
	if err != nil {
		logFailure(log, err).Int64("trainerID", id).Msg("Failed to delete trainer")
		return fmt.Errorf("delete trainer %d: %w", id, err)
	}

	log.Info().Int64("trainerID", id).Msg("Trainer deleted")
	return nil
}
