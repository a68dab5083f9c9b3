package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ipoderator/foodgram-project-react/internal/sql"
)

// Postgres error codes translated into domain errors by the handlers.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the full storage surface the API depends on: the single-statement
// queries plus the transactional recipe write path.
type Store interface {
	Querier

	CreateRecipeWithRelations(ctx context.Context,
		arg CreateRecipeParams, tagIDs []int64, lines []RecipeLineParams) (int64, error)
	UpdateRecipeWithRelations(ctx context.Context,
		arg UpdateRecipeParams, tagIDs []int64, lines []RecipeLineParams) error
}

var _ Store = (*Database)(nil)

type Database struct {
	Querier

	Pool Pool
}

func NewDatabase(pool *pgxpool.Pool) *Database {
	return &Database{
		Querier: New(pool),
		Pool:    pool,
	}
}

// EnsureSchema applies the embedded schema if it is not detected.
func (d *Database) EnsureSchema(ctx context.Context) error {
	exists, err := d.CheckUsersTableExists(ctx)
	if err != nil {
		return fmt.Errorf("ensuring schema exists: %w", err)
	}

	if exists {
		return nil
	}

	pool, ok := d.Pool.(*pgxpool.Pool)
	if !ok {
		return errors.New("applying schema requires a pgx pool")
	}
	if _, err := pool.Exec(ctx, sql.Schema()); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}

	return nil
}

// RecipeLineParams is one submitted ingredient line of a recipe write.
type RecipeLineParams struct {
	IngredientID int64
	Amount       int32
}

func lineColumns(lines []RecipeLineParams) (ids []int64, amounts []int32) {
	ids = make([]int64, len(lines))
	amounts = make([]int32, len(lines))
	for i, l := range lines {
		ids[i] = l.IngredientID
		amounts[i] = l.Amount
	}
	return ids, amounts
}

// CreateRecipeWithRelations persists a recipe, its tag associations and its
// ingredient lines in one transaction. A failure on any statement leaves no
// partial rows behind.
func (d *Database) CreateRecipeWithRelations(ctx context.Context,
	arg CreateRecipeParams, tagIDs []int64, lines []RecipeLineParams,
) (int64, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := New(tx)
	recipeID, err := q.CreateRecipe(ctx, arg)
	if err != nil {
		return 0, fmt.Errorf("inserting recipe: %w", err)
	}
	if len(tagIDs) > 0 {
		if err := q.InsertRecipeTags(ctx, InsertRecipeTagsParams{
			RecipeID: recipeID,
			TagIDs:   tagIDs,
		}); err != nil {
			return 0, fmt.Errorf("inserting recipe tags: %w", err)
		}
	}
	ids, amounts := lineColumns(lines)
	if err := q.InsertRecipeLines(ctx, InsertRecipeLinesParams{
		RecipeID:      recipeID,
		IngredientIDs: ids,
		Amounts:       amounts,
	}); err != nil {
		return 0, fmt.Errorf("inserting recipe ingredients: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return recipeID, nil
}

// UpdateRecipeWithRelations updates recipe fields and, when provided,
// replaces the tag set and the full ingredient-line set in one transaction.
// Nil tagIDs/lines leave the existing associations untouched; a non-nil
// lines slice removes every prior line first (destructive replace).
func (d *Database) UpdateRecipeWithRelations(ctx context.Context,
	arg UpdateRecipeParams, tagIDs []int64, lines []RecipeLineParams,
) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := New(tx)
	if err := q.UpdateRecipe(ctx, arg); err != nil {
		return fmt.Errorf("updating recipe: %w", err)
	}
	if tagIDs != nil {
		if err := q.DeleteRecipeTags(ctx, arg.ID); err != nil {
			return fmt.Errorf("clearing recipe tags: %w", err)
		}
		if len(tagIDs) > 0 {
			if err := q.InsertRecipeTags(ctx, InsertRecipeTagsParams{
				RecipeID: arg.ID,
				TagIDs:   tagIDs,
			}); err != nil {
				return fmt.Errorf("inserting recipe tags: %w", err)
			}
		}
	}
	if lines != nil {
		if err := q.DeleteRecipeLines(ctx, arg.ID); err != nil {
			return fmt.Errorf("clearing recipe ingredients: %w", err)
		}
		ids, amounts := lineColumns(lines)
		if err := q.InsertRecipeLines(ctx, InsertRecipeLinesParams{
			RecipeID:      arg.ID,
			IngredientIDs: ids,
			Amounts:       amounts,
		}); err != nil {
			return fmt.Errorf("inserting recipe ingredients: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally narrowed to a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a Postgres foreign-key
// violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
