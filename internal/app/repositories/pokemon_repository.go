package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
	"github.com/yigit/trainerapi/internal/pkg/dberrors"
)

// pokemonColumns selects a pokemon together with its owning trainer.
var pokemonColumns = []string{
	"p.id", "p.name", "p.species", "p.type", "p.trainer_id",
	"t.id", "t.name", "t.surname", "t.age", "t.gender",
}

// PgPokemonRepository handles pokemon database operations
type PgPokemonRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPokemonRepository creates a new PgPokemonRepository
func NewPokemonRepository(db DBTX) *PgPokemonRepository {
	return &PgPokemonRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *PgPokemonRepository) selectWithTrainer() squirrel.SelectBuilder {
	return r.sb.Select(pokemonColumns...).
		From("pokemon p").
		Join("trainers t ON t.id = p.trainer_id")
}

func scanPokemon(row pgx.Row) (*models.Pokemon, error) {
	pokemon := &models.Pokemon{Trainer: &models.Trainer{}}
	var typ int32
	err := row.Scan(
		&pokemon.ID,
		&pokemon.Name,
		&pokemon.Species,
		&typ,
		&pokemon.TrainerID,
		&pokemon.Trainer.ID,
		&pokemon.Trainer.Name,
		&pokemon.Trainer.Surname,
		&pokemon.Trainer.Age,
		&pokemon.Trainer.Gender,
	)
	if err != nil {
		return nil, err
	}
	pokemon.Type = models.PokemonType(typ)
	return pokemon, nil
}

// Create inserts a pokemon and sets its ID. A missing trainer is reported as
// ErrReferenceNotFound.
func (r *PgPokemonRepository) Create(ctx context.Context, pokemon *models.Pokemon) error {
	sql, args, err := r.sb.Insert("pokemon").
		Columns("name", "species", "type", "trainer_id").
		Values(pokemon.Name, pokemon.Species, int32(pokemon.Type), pokemon.TrainerID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return storageError("build create pokemon query", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&pokemon.ID); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewReferenceNotFoundError("trainer", pokemon.TrainerID)
		}
		return storageError("create pokemon", err)
	}
	return nil
}

// GetByID retrieves a pokemon with its trainer loaded
func (r *PgPokemonRepository) GetByID(ctx context.Context, id int64) (*models.Pokemon, error) {
	sql, args, err := r.selectWithTrainer().
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, storageError("build get pokemon query", err)
	}

	pokemon, err := scanPokemon(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("pokemon", id)
		}
		return nil, storageError("get pokemon", err)
	}
	return pokemon, nil
}

// List retrieves pokemon matching filter, each with its trainer loaded
func (r *PgPokemonRepository) List(ctx context.Context, filter models.PokemonFilter) ([]*models.Pokemon, error) {
	query := r.selectWithTrainer().OrderBy("p.id ASC")

	if filter.Type != nil {
		query = query.Where(squirrel.Eq{"p.type": int32(*filter.Type)})
	}
	if species := strings.TrimSpace(filter.Species); species != "" {
		query = query.Where(squirrel.ILike{"p.species": containsPattern(species)})
	}

	return r.list(ctx, query, "list pokemon")
}

// ListByTrainerID retrieves every pokemon owned by a trainer
func (r *PgPokemonRepository) ListByTrainerID(ctx context.Context, trainerID int64) ([]*models.Pokemon, error) {
	query := r.selectWithTrainer().
		Where(squirrel.Eq{"p.trainer_id": trainerID}).
		OrderBy("p.id ASC")

	return r.list(ctx, query, "list pokemon by trainer")
}

func (r *PgPokemonRepository) list(ctx context.Context, query squirrel.SelectBuilder, op string) ([]*models.Pokemon, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, storageError("build "+op+" query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	pokemon := []*models.Pokemon{}
	for rows.Next() {
		p, err := scanPokemon(rows)
		if err != nil {
			return nil, storageError("scan pokemon row", err)
		}
		pokemon = append(pokemon, p)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterate pokemon rows", err)
	}
	return pokemon, nil
}

// CountByTrainerIDs returns how many pokemon each trainer owns. Trainers
// without pokemon are absent from the map.
func (r *PgPokemonRepository) CountByTrainerIDs(ctx context.Context, trainerIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	if len(trainerIDs) == 0 {
		return counts, nil
	}

	sql, args, err := r.sb.Select("trainer_id", "COUNT(*)").
		From("pokemon").
		Where(squirrel.Eq{"trainer_id": trainerIDs}).
		GroupBy("trainer_id").
		ToSql()
	if err != nil {
		return nil, storageError("build count pokemon query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError("count pokemon", err)
	}
	defer rows.Close()

	for rows.Next() {
		var trainerID int64
		var count int
		if err := rows.Scan(&trainerID, &count); err != nil {
			return nil, storageError("scan pokemon count row", err)
		}
		counts[trainerID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterate pokemon count rows", err)
	}
	return counts, nil
}

// Update overwrites every mutable field of a pokemon
func (r *PgPokemonRepository) Update(ctx context.Context, pokemon *models.Pokemon) error {
	sql, args, err := r.sb.Update("pokemon").
		SetMap(map[string]interface{}{
			"name":       pokemon.Name,
			"species":    pokemon.Species,
			"type":       int32(pokemon.Type),
			"trainer_id": pokemon.TrainerID,
		}).
		Where(squirrel.Eq{"id": pokemon.ID}).
		ToSql()
	if err != nil {
		return storageError("build update pokemon query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewReferenceNotFoundError("trainer", pokemon.TrainerID)
		}
		return storageError("update pokemon", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("pokemon", pokemon.ID)
	}
	return nil
}

// Delete deletes a pokemon by ID
func (r *PgPokemonRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("pokemon").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return storageError("build delete pokemon query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return storageError("delete pokemon", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("pokemon", id)
	}
	return nil
}
