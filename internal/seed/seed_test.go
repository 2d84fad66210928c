package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/app/repositories/memory"
	"github.com/yigit/trainerapi/internal/app/services"
)

func newServices() Services {
	store := memory.NewStore()
	lgr := zerolog.Nop()
	return Services{
		Trainers: services.NewTrainerService(store, lgr),
		Pokemon:  services.NewPokemonService(store, lgr),
		School:   services.NewSchoolService(store, lgr),
	}
}

func TestCreateDefaultData(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	require.NoError(t, CreateDefaultData(ctx, svc, zerolog.Nop()))
	// second run finds the rows and adds nothing
	require.NoError(t, CreateDefaultData(ctx, svc, zerolog.Nop()))

	trainers, err := svc.Trainers.ListTrainers(ctx, models.TrainerFilter{})
	require.NoError(t, err)
	require.Len(t, trainers, 1)
	assert.Equal(t, "Ash", trainers[0].Name)
	assert.Equal(t, 1, trainers[0].NumberOfPokemons)

	pokemon, err := svc.Pokemon.ListPokemon(ctx, models.PokemonFilter{})
	require.NoError(t, err)
	require.Len(t, pokemon, 1)
	assert.Equal(t, "Pikachu", pokemon[0].Name)
	assert.Equal(t, "Electric", pokemon[0].Type)

	courses, err := svc.School.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Battling 101", courses[0].Title)
}
