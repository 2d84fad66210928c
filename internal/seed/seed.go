package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/app/services"
)

// Services are the services the seed writes through
type Services struct {
	Trainers services.TrainerService
	Pokemon  services.PokemonService
	School   services.SchoolService
}

// CreateDefaultData inserts a demo trainer with one pokemon and a demo course.
// Each part is skipped when its table already has rows, so running it again is
// harmless. Failures are collected and returned together.
func CreateDefaultData(ctx context.Context, svc Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Trainers/Courses)...")
	var finalErr error

	// --- Trainer & Pokemon --- //
	trainers, err := svc.Trainers.ListTrainers(ctx, models.TrainerFilter{})
	switch {
	case err != nil:
		lgr.Error().Err(err).Msg("Error listing trainers")
		finalErr = errors.Join(finalErr, err)
	case len(trainers) == 0:
		ash, err := svc.Trainers.CreateTrainer(ctx, &dto.TrainerRequest{
			Name:    "Ash",
			Surname: "Ketchum",
			Age:     10,
			Gender:  "M",
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating default trainer")
			finalErr = errors.Join(finalErr, err)
			break
		}

		_, err = svc.Pokemon.CreatePokemon(ctx, &dto.PokemonRequest{
			Name:      "Pikachu",
			Species:   "Mouse",
			Type:      models.TypeElectric.String(),
			TrainerID: ash.ID,
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating default pokemon")
			finalErr = errors.Join(finalErr, err)
		}
	default:
		lgr.Debug().Int("trainers", len(trainers)).Msg("Trainers present, skipping")
	}

	// --- Courses --- //
	courses, err := svc.School.ListCourses(ctx)
	switch {
	case err != nil:
		lgr.Error().Err(err).Msg("Error listing courses")
		finalErr = errors.Join(finalErr, err)
	case len(courses) == 0:
		if _, err := svc.School.CreateCourse(ctx, &dto.CourseRequest{Title: "Battling 101"}); err != nil {
			lgr.Error().Err(err).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	default:
		lgr.Debug().Int("courses", len(courses)).Msg("Courses present, skipping")
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed")
	}
	return finalErr
}
