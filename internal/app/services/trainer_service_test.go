package services

import (
	"context"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/app/repositories"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

func TestCreateTrainer_OmittedFieldsAreZero(t *testing.T) {
	s := newTestServices(t)

	created, err := s.trainers.CreateTrainer(context.Background(), &dto.TrainerRequest{Name: "Misty", Gender: "F"})

	require.NoError(t, err)
	assert.Equal(t, dto.TrainerResponse{ID: created.ID, Name: "Misty", Gender: "F"}, *created)
}

func TestListTrainers_FiltersAndCounts(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)
	_, err := s.trainers.CreateTrainer(ctx, &dto.TrainerRequest{Name: "Misty", Gender: "F"})
	require.NoError(t, err)
	_, err = s.trainers.CreateTrainer(ctx, &dto.TrainerRequest{Name: "Dash", Gender: "M"})
	require.NoError(t, err)

	for _, typ := range []string{"Electric", "Fire"} {
		_, err := s.pokemon.CreatePokemon(ctx, &dto.PokemonRequest{Name: "p", Type: typ, TrainerID: ash.ID})
		require.NoError(t, err)
	}

	all, err := s.trainers.ListTrainers(ctx, models.TrainerFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[0].NumberOfPokemons)
	assert.Equal(t, 0, all[1].NumberOfPokemons)

	byName, err := s.trainers.ListTrainers(ctx, models.TrainerFilter{Name: "ASH"})
	require.NoError(t, err)
	require.Len(t, byName, 2)

	both, err := s.trainers.ListTrainers(ctx, models.TrainerFilter{Name: "ash", Gender: "m"})
	require.NoError(t, err)
	assert.Len(t, both, 2)

	none, err := s.trainers.ListTrainers(ctx, models.TrainerFilter{Name: "ash", Gender: "f"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetTrainer_CountsLoadedPokemon(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)

	for i := 0; i < 3; i++ {
		_, err := s.pokemon.CreatePokemon(ctx, &dto.PokemonRequest{Name: "p", Type: "Normal", TrainerID: ash.ID})
		require.NoError(t, err)
	}

	got, err := s.trainers.GetTrainer(ctx, ash.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.NumberOfPokemons)

	_, err = s.trainers.GetTrainer(ctx, 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateTrainer(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)
	_, err := s.pokemon.CreatePokemon(ctx, &dto.PokemonRequest{Name: "Pikachu", Type: "Electric", TrainerID: ash.ID})
	require.NoError(t, err)

	err = s.trainers.UpdateTrainer(ctx, ash.ID, &dto.TrainerRequest{ID: 0, Name: "Red", Gender: "M"})
	assert.ErrorIs(t, err, apperrors.ErrIDMismatch)

	err = s.trainers.UpdateTrainer(ctx, 404, &dto.TrainerRequest{ID: 404, Name: "Red", Gender: "M"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = s.trainers.UpdateTrainer(ctx, ash.ID, &dto.TrainerRequest{ID: ash.ID, Name: "Red", Surname: "", Age: 11, Gender: "M"})
	require.NoError(t, err)

	got, err := s.trainers.GetTrainer(ctx, ash.ID)
	require.NoError(t, err)
	assert.Equal(t, "Red", got.Name)
	assert.Empty(t, got.Surname)
	assert.Equal(t, 11, got.Age)
	assert.Equal(t, 1, got.NumberOfPokemons)
}

func TestDeleteTrainer_CascadesToPokemon(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)

	var ids []int64
	for _, typ := range []string{"Electric", "Fire", "Water"} {
		p, err := s.pokemon.CreatePokemon(ctx, &dto.PokemonRequest{Name: "p", Type: typ, TrainerID: ash.ID})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	require.NoError(t, s.trainers.DeleteTrainer(ctx, ash.ID))

	for _, id := range ids {
		_, err := s.pokemon.GetPokemon(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	}
	assert.ErrorIs(t, s.trainers.DeleteTrainer(ctx, ash.ID), apperrors.ErrNotFound)
}

func invalidTrainerRequests() map[string]dto.TrainerRequest {
	return map[string]dto.TrainerRequest{
		"missing name":      {Gender: "M"},
		"blank name":        {Name: "   ", Gender: "M"},
		"long name":         {Name: strings.Repeat("a", models.TrainerNameMaxLength+1), Gender: "M"},
		"long surname":      {Name: "Ash", Surname: strings.Repeat("k", models.TrainerSurnameMaxLength+1), Gender: "M"},
		"missing gender":    {Name: "Ash"},
		"long name (runes)": {Name: strings.Repeat("é", models.TrainerNameMaxLength+1), Gender: "M"},
	}
}

func TestCreateTrainer_RejectsInvalidFields(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	for name, req := range invalidTrainerRequests() {
		t.Run(name, func(t *testing.T) {
			_, err := s.trainers.CreateTrainer(ctx, &req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	all, err := s.trainers.ListTrainers(ctx, models.TrainerFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = s.trainers.CreateTrainer(ctx, &dto.TrainerRequest{
		Name: strings.Repeat("é", models.TrainerNameMaxLength), Gender: "F",
	})
	assert.NoError(t, err, "limit counts characters, not bytes")
}

func TestUpdateTrainer_RejectsInvalidFields(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	ash := createAsh(t, s)

	for name, req := range invalidTrainerRequests() {
		t.Run(name, func(t *testing.T) {
			req.ID = ash.ID
			err := s.trainers.UpdateTrainer(ctx, ash.ID, &req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	got, err := s.trainers.GetTrainer(ctx, ash.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ash", got.Name)
}

func TestTrainerValidation_Postgres(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := newTestServicesWithStore(repositories.NewPostgresStore(mock))
	ctx := context.Background()

	// create is rejected before a transaction is opened
	_, err = s.trainers.CreateTrainer(ctx, &dto.TrainerRequest{Name: strings.Repeat("a", 101), Gender: "M"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.NotErrorIs(t, err, apperrors.ErrStorage)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, surname, age, gender FROM trainers").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "surname", "age", "gender"}).
			AddRow(int64(1), "Ash", "Ketchum", 10, "M"))
	mock.ExpectRollback()

	err = s.trainers.UpdateTrainer(ctx, 1, &dto.TrainerRequest{ID: 1, Name: "Ash"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
