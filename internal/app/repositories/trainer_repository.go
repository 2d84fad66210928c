package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

var trainerColumns = []string{"id", "name", "surname", "age", "gender"}

// PgTrainerRepository handles trainer database operations
type PgTrainerRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewTrainerRepository creates a new PgTrainerRepository
func NewTrainerRepository(db DBTX) *PgTrainerRepository {
	return &PgTrainerRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a trainer and sets its ID
func (r *PgTrainerRepository) Create(ctx context.Context, trainer *models.Trainer) error {
	sql, args, err := r.sb.Insert("trainers").
		Columns("name", "surname", "age", "gender").
		Values(trainer.Name, trainer.Surname, trainer.Age, trainer.Gender).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return storageError("build create trainer query", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&trainer.ID); err != nil {
		return storageError("create trainer", err)
	}
	return nil
}

// GetByID retrieves a trainer by ID without its pokemon
func (r *PgTrainerRepository) GetByID(ctx context.Context, id int64) (*models.Trainer, error) {
	sql, args, err := r.sb.Select(trainerColumns...).
		From("trainers").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, storageError("build get trainer query", err)
	}

	trainer := &models.Trainer{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&trainer.ID, &trainer.Name, &trainer.Surname, &trainer.Age, &trainer.Gender)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("trainer", id)
		}
		return nil, storageError("get trainer", err)
	}

	return trainer, nil
}

// List retrieves trainers matching filter, ordered by ID
func (r *PgTrainerRepository) List(ctx context.Context, filter models.TrainerFilter) ([]*models.Trainer, error) {
	query := r.sb.Select(trainerColumns...).
		From("trainers").
		OrderBy("id ASC")

	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where(squirrel.ILike{"name": containsPattern(name)})
	}
	if gender := strings.TrimSpace(filter.Gender); gender != "" {
		query = query.Where(squirrel.ILike{"gender": containsPattern(gender)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, storageError("build list trainers query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError("list trainers", err)
	}
	defer rows.Close()

	trainers := []*models.Trainer{}
	for rows.Next() {
		trainer := &models.Trainer{}
		if err := rows.Scan(&trainer.ID, &trainer.Name, &trainer.Surname, &trainer.Age, &trainer.Gender); err != nil {
			return nil, storageError("scan trainer row", err)
		}
		trainers = append(trainers, trainer)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterate trainer rows", err)
	}

	return trainers, nil
}

// Update overwrites the scalar fields of a trainer
func (r *PgTrainerRepository) Update(ctx context.Context, trainer *models.Trainer) error {
	sql, args, err := r.sb.Update("trainers").
		SetMap(map[string]interface{}{
			"name":    trainer.Name,
			"surname": trainer.Surname,
			"age":     trainer.Age,
			"gender":  trainer.Gender,
		}).
		Where(squirrel.Eq{"id": trainer.ID}).
		ToSql()
	if err != nil {
		return storageError("build update trainer query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return storageError("update trainer", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("trainer", trainer.ID)
	}
	return nil
}

// Delete deletes a trainer by ID; owned pokemon go with it (ON DELETE CASCADE)
func (r *PgTrainerRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("trainers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return storageError("build delete trainer query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return storageError("delete trainer", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("trainer", id)
	}
	return nil
}

// Exists reports whether a trainer with the given ID exists
func (r *PgTrainerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, r.sb, "trainers", squirrel.Eq{"id": id})
}

// exists runs SELECT EXISTS (SELECT 1 FROM table WHERE pred).
func exists(ctx context.Context, db DBTX, sb squirrel.StatementBuilderType, table string, pred squirrel.Sqlizer) (bool, error) {
	sql, args, err := sb.Select("1").
		From(table).
		Where(pred).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, storageError("build exists query on "+table, err)
	}

	var found bool
	if err := db.QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		return false, storageError("check existence in "+table, err)
	}
	return found, nil
}
