package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/app/repositories"
	"github.com/yigit/trainerapi/internal/app/repositories/memory"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

type testServices struct {
	pokemon  PokemonService
	trainers TrainerService
	school   SchoolService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	return newTestServicesWithStore(memory.NewStore())
}

func newTestServicesWithStore(store repositories.Store) testServices {
	logger := zerolog.Nop()
	return testServices{
		pokemon:  NewPokemonService(store, logger),
		trainers: NewTrainerService(store, logger),
		school:   NewSchoolService(store, logger),
	}
}

func createAsh(t *testing.T, s testServices) *dto.TrainerResponse {
	t.Helper()
	ash, err := s.trainers.CreateTrainer(context.Background(), &dto.TrainerRequest{
		Name: "Ash", Surname: "Ketchum", Age: 10, Gender: "M",
	})
	require.NoError(t, err)
	return ash
}

// failingStore fails every unit of work the way a broken connection would.
type failingStore struct{}

func (failingStore) WithinTransaction(context.Context, repositories.UnitOfWorkFn) error {
	return fmt.Errorf("%w: begin transaction: connection refused", apperrors.ErrStorage)
}

func TestNewPokemon_ParsesEveryTypeIgnoringCase(t *testing.T) {
	for _, pokemonType := range models.AllPokemonTypes() {
		name := pokemonType.String()
		for _, input := range []string{name, strings.ToLower(name), strings.ToUpper(name), " " + name + " "} {
			pokemon, err := NewPokemon("x", "y", input, 1)
			require.NoError(t, err, input)
			assert.Equal(t, pokemonType, pokemon.Type)
		}
	}
}

func TestNewPokemon_RejectsUnknownType(t *testing.T) {
	for _, input := range []string{"", "Thunder", "fire!", "Electrik"} {
		_, err := NewPokemon("x", "y", input, 1)
		assert.ErrorIs(t, err, apperrors.ErrInvalidEnumValue, input)
	}
}

func TestCreatePokemon_WorkedExample(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)
	require.Equal(t, int64(1), ash.ID)

	pikachu, err := s.pokemon.CreatePokemon(ctx, &dto.PokemonRequest{
		Name: "Pikachu", Species: "Mouse", Type: "Electric", TrainerID: ash.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Electric", pikachu.Type)
	assert.Equal(t, "Ash", pikachu.TrainerName)
	assert.Equal(t, "Ketchum", pikachu.TrainerSurname)

	_, err = s.pokemon.CreatePokemon(ctx, &dto.PokemonRequest{
		Name: "Pikachu", Species: "Mouse", Type: "Thunder", TrainerID: ash.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidEnumValue)
}

func TestCreatePokemon_CanonicalTypeForEveryCasing(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)

	for _, pokemonType := range models.AllPokemonTypes() {
		created, err := s.pokemon.CreatePokemon(ctx, &dto.PokemonRequest{
			Name: "p", Species: "s", Type: strings.ToLower(pokemonType.String()), TrainerID: ash.ID,
		})
		require.NoError(t, err)

		fetched, err := s.pokemon.GetPokemon(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, pokemonType.String(), fetched.Type)
	}
}

func TestCreatePokemon_FailuresPersistNothing(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)

	tests := []struct {
		name    string
		req     dto.PokemonRequest
		wantErr error
	}{
		{
			name:    "unknown trainer",
			req:     dto.PokemonRequest{Name: "Eevee", Type: "Normal", TrainerID: 999},
			wantErr: apperrors.ErrReferenceNotFound,
		},
		{
			name:    "unknown trainer checked before type",
			req:     dto.PokemonRequest{Name: "Eevee", Type: "Thunder", TrainerID: 999},
			wantErr: apperrors.ErrReferenceNotFound,
		},
		{
			name:    "invalid type",
			req:     dto.PokemonRequest{Name: "Eevee", Type: "Cosmic", TrainerID: ash.ID},
			wantErr: apperrors.ErrInvalidEnumValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.pokemon.CreatePokemon(ctx, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			all, err := s.pokemon.ListPokemon(ctx, models.PokemonFilter{})
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestListPokemon_Filters(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)

	for _, req := range []dto.PokemonRequest{
		{Name: "Charmander", Species: "Lizard", Type: "Fire", TrainerID: ash.ID},
		{Name: "Squirtle", Species: "Tiny Turtle", Type: "Water", TrainerID: ash.ID},
		{Name: "Bulbasaur", Species: "Seed", Type: "Grass", TrainerID: ash.ID},
	} {
		_, err := s.pokemon.CreatePokemon(ctx, &req)
		require.NoError(t, err)
	}

	water := models.TypeWater
	got, err := s.pokemon.ListPokemon(ctx, models.PokemonFilter{Type: &water})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Squirtle", got[0].Name)

	got, err = s.pokemon.ListPokemon(ctx, models.PokemonFilter{Species: "tUrT"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	dragon := models.TypeDragon
	got, err = s.pokemon.ListPokemon(ctx, models.PokemonFilter{Type: &dragon})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListPokemon_SpeciesFilterIsLiteral(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)

	for _, req := range []dto.PokemonRequest{
		{Name: "Porygon", Species: "Virtual_Pokemon", Type: "Normal", TrainerID: ash.ID},
		{Name: "Pikachu", Species: "Mouse", Type: "Electric", TrainerID: ash.ID},
	} {
		_, err := s.pokemon.CreatePokemon(ctx, &req)
		require.NoError(t, err)
	}

	got, err := s.pokemon.ListPokemon(ctx, models.PokemonFilter{Species: "_"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Porygon", got[0].Name)

	got, err = s.pokemon.ListPokemon(ctx, models.PokemonFilter{Species: "%"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdatePokemon(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)
	gary, err := s.trainers.CreateTrainer(ctx, &dto.TrainerRequest{Name: "Gary", Surname: "Oak", Gender: "M"})
	require.NoError(t, err)

	pikachu, err := s.pokemon.CreatePokemon(ctx, &dto.PokemonRequest{
		Name: "Pikachu", Species: "Mouse", Type: "Electric", TrainerID: ash.ID,
	})
	require.NoError(t, err)

	t.Run("id mismatch", func(t *testing.T) {
		err := s.pokemon.UpdatePokemon(ctx, pikachu.ID, &dto.PokemonRequest{ID: pikachu.ID + 1, Type: "Electric", TrainerID: ash.ID})
		assert.ErrorIs(t, err, apperrors.ErrIDMismatch)
	})

	t.Run("missing pokemon", func(t *testing.T) {
		err := s.pokemon.UpdatePokemon(ctx, 404, &dto.PokemonRequest{ID: 404, Type: "Electric", TrainerID: ash.ID})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("unknown trainer", func(t *testing.T) {
		err := s.pokemon.UpdatePokemon(ctx, pikachu.ID, &dto.PokemonRequest{ID: pikachu.ID, Type: "Electric", TrainerID: 404})
		assert.ErrorIs(t, err, apperrors.ErrReferenceNotFound)
	})

	t.Run("invalid type leaves pokemon unchanged", func(t *testing.T) {
		err := s.pokemon.UpdatePokemon(ctx, pikachu.ID, &dto.PokemonRequest{
			ID: pikachu.ID, Name: "Raichu", Type: "Thunder", TrainerID: ash.ID,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidEnumValue)

		current, err := s.pokemon.GetPokemon(ctx, pikachu.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pikachu", current.Name)
		assert.Equal(t, "Electric", current.Type)
	})

	t.Run("moves to another trainer", func(t *testing.T) {
		err := s.pokemon.UpdatePokemon(ctx, pikachu.ID, &dto.PokemonRequest{
			ID: pikachu.ID, Name: "Raichu", Species: "Mouse", Type: "electric", TrainerID: gary.ID,
		})
		require.NoError(t, err)

		current, err := s.pokemon.GetPokemon(ctx, pikachu.ID)
		require.NoError(t, err)
		assert.Equal(t, "Raichu", current.Name)
		assert.Equal(t, "Gary", current.TrainerName)
		assert.Equal(t, "Oak", current.TrainerSurname)
	})
}

func TestDeletePokemon(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)

	pikachu, err := s.pokemon.CreatePokemon(ctx, &dto.PokemonRequest{Name: "Pikachu", Type: "Electric", TrainerID: ash.ID})
	require.NoError(t, err)

	require.NoError(t, s.pokemon.DeletePokemon(ctx, pikachu.ID))
	assert.ErrorIs(t, s.pokemon.DeletePokemon(ctx, pikachu.ID), apperrors.ErrNotFound)

	_, err = s.pokemon.GetPokemon(ctx, pikachu.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPokemonService_StorageFailure(t *testing.T) {
	s := newTestServicesWithStore(failingStore{})

	_, err := s.pokemon.GetPokemon(context.Background(), 1)

	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
