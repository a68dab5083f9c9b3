package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Membership filter modes for ListRecipes/CountRecipes.
const (
	FilterOff = 0
	FilterIn  = 1
	FilterOut = 2
)

const createRecipe = `
INSERT INTO recipes (author_id, name, image_url, text, cooking_time)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

type CreateRecipeParams struct {
	AuthorID    int64
	Name        string
	ImageUrl    pgtype.Text
	Text        string
	CookingTime int32
}

func (q *Queries) CreateRecipe(ctx context.Context, arg CreateRecipeParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, createRecipe,
		arg.AuthorID, arg.Name, arg.ImageUrl, arg.Text, arg.CookingTime).Scan(&id)
	return id, err
}

const updateRecipe = `
UPDATE recipes SET
    name = COALESCE($2, name),
    image_url = COALESCE($3, image_url),
    text = COALESCE($4, text),
    cooking_time = COALESCE($5, cooking_time)
WHERE id = $1
`

type UpdateRecipeParams struct {
	ID          int64
	Name        pgtype.Text
	ImageUrl    pgtype.Text
	Text        pgtype.Text
	CookingTime pgtype.Int4
}

func (q *Queries) UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) error {
	_, err := q.db.Exec(ctx, updateRecipe,
		arg.ID, arg.Name, arg.ImageUrl, arg.Text, arg.CookingTime)
	return err
}

const deleteRecipe = `
DELETE FROM recipes WHERE id = $1
`

func (q *Queries) DeleteRecipe(ctx context.Context, id int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteRecipe, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getRecipe = `
SELECT id, author_id, name, image_url, text, cooking_time, created_at
FROM recipes
WHERE id = $1
`

func (q *Queries) GetRecipe(ctx context.Context, id int64) (Recipe, error) {
	var r Recipe
	err := q.db.QueryRow(ctx, getRecipe, id).Scan(&r.ID, &r.AuthorID, &r.Name,
		&r.ImageUrl, &r.Text, &r.CookingTime, &r.CreatedAt)
	return r, err
}

const recipeFilterClause = `
    ($1::bigint = 0 OR r.author_id = $1)
    AND (cardinality($2::text[]) = 0 OR EXISTS (
        SELECT 1 FROM recipe_tags rt
        JOIN tags t ON t.id = rt.tag_id
        WHERE rt.recipe_id = r.id AND t.slug = ANY($2)))
    AND ($3::int = 0
        OR ($3 = 1 AND EXISTS (
            SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = $4))
        OR ($3 = 2 AND NOT EXISTS (
            SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = $4)))
    AND ($5::int = 0
        OR ($5 = 1 AND EXISTS (
            SELECT 1 FROM shopping_cart sc WHERE sc.recipe_id = r.id AND sc.user_id = $6))
        OR ($5 = 2 AND NOT EXISTS (
            SELECT 1 FROM shopping_cart sc WHERE sc.recipe_id = r.id AND sc.user_id = $6)))
`

const listRecipes = `
SELECT r.id, r.author_id, r.name, r.image_url, r.text, r.cooking_time, r.created_at
FROM recipes r
WHERE` + recipeFilterClause + `
ORDER BY r.created_at DESC, r.id DESC
LIMIT $7 OFFSET $8
`

type ListRecipesParams struct {
	AuthorID      int64
	TagSlugs      []string
	FavoritedMode int32
	FavoritedBy   int64
	CartMode      int32
	InCartOf      int64
	Limit         int32
	Offset        int32
}

func (q *Queries) ListRecipes(ctx context.Context, arg ListRecipesParams) ([]Recipe, error) {
	slugs := arg.TagSlugs
	if slugs == nil {
		slugs = []string{}
	}
	rows, err := q.db.Query(ctx, listRecipes,
		arg.AuthorID, slugs, arg.FavoritedMode, arg.FavoritedBy,
		arg.CartMode, arg.InCartOf, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.AuthorID, &r.Name, &r.ImageUrl,
			&r.Text, &r.CookingTime, &r.CreatedAt); err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

const countRecipes = `
SELECT COUNT(*)
FROM recipes r
WHERE` + recipeFilterClause

type CountRecipesParams struct {
	AuthorID      int64
	TagSlugs      []string
	FavoritedMode int32
	FavoritedBy   int64
	CartMode      int32
	InCartOf      int64
}

func (q *Queries) CountRecipes(ctx context.Context, arg CountRecipesParams) (int64, error) {
	slugs := arg.TagSlugs
	if slugs == nil {
		slugs = []string{}
	}
	var count int64
	err := q.db.QueryRow(ctx, countRecipes,
		arg.AuthorID, slugs, arg.FavoritedMode, arg.FavoritedBy,
		arg.CartMode, arg.InCartOf).Scan(&count)
	return count, err
}

const listAuthorRecipes = `
SELECT id, author_id, name, image_url, text, cooking_time, created_at
FROM recipes
WHERE author_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

type ListAuthorRecipesParams struct {
	AuthorID int64
	Limit    int32
}

func (q *Queries) ListAuthorRecipes(ctx context.Context, arg ListAuthorRecipesParams) ([]Recipe, error) {
	rows, err := q.db.Query(ctx, listAuthorRecipes, arg.AuthorID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.AuthorID, &r.Name, &r.ImageUrl,
			&r.Text, &r.CookingTime, &r.CreatedAt); err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

const countAuthorRecipes = `
SELECT COUNT(*) FROM recipes WHERE author_id = $1
`

func (q *Queries) CountAuthorRecipes(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countAuthorRecipes, authorID).Scan(&count)
	return count, err
}

const deleteRecipeTags = `
DELETE FROM recipe_tags WHERE recipe_id = $1
`

func (q *Queries) DeleteRecipeTags(ctx context.Context, recipeID int64) error {
	_, err := q.db.Exec(ctx, deleteRecipeTags, recipeID)
	return err
}

const insertRecipeTags = `
INSERT INTO recipe_tags (recipe_id, tag_id)
SELECT $1, unnest($2::bigint[])
`

type InsertRecipeTagsParams struct {
	RecipeID int64
	TagIDs   []int64
}

func (q *Queries) InsertRecipeTags(ctx context.Context, arg InsertRecipeTagsParams) error {
	_, err := q.db.Exec(ctx, insertRecipeTags, arg.RecipeID, arg.TagIDs)
	return err
}

const deleteRecipeLines = `
DELETE FROM recipe_ingredients WHERE recipe_id = $1
`

func (q *Queries) DeleteRecipeLines(ctx context.Context, recipeID int64) error {
	_, err := q.db.Exec(ctx, deleteRecipeLines, recipeID)
	return err
}

const insertRecipeLines = `
INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
SELECT $1, unnest($2::bigint[]), unnest($3::int[])
`

type InsertRecipeLinesParams struct {
	RecipeID      int64
	IngredientIDs []int64
	Amounts       []int32
}

func (q *Queries) InsertRecipeLines(ctx context.Context, arg InsertRecipeLinesParams) error {
	_, err := q.db.Exec(ctx, insertRecipeLines, arg.RecipeID, arg.IngredientIDs, arg.Amounts)
	return err
}

const listRecipeLines = `
SELECT ri.ingredient_id, i.name, i.measurement_unit, ri.amount
FROM recipe_ingredients ri
JOIN ingredients i ON i.id = ri.ingredient_id
WHERE ri.recipe_id = $1
ORDER BY ri.id
`

func (q *Queries) ListRecipeLines(ctx context.Context, recipeID int64) ([]RecipeLine, error) {
	rows, err := q.db.Query(ctx, listRecipeLines, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []RecipeLine
	for rows.Next() {
		var l RecipeLine
		if err := rows.Scan(&l.IngredientID, &l.Name, &l.MeasurementUnit, &l.Amount); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

const listLinesByRecipeIDs = `
SELECT ri.recipe_id, ri.ingredient_id, i.name, i.measurement_unit, ri.amount
FROM recipe_ingredients ri
JOIN ingredients i ON i.id = ri.ingredient_id
WHERE ri.recipe_id = ANY($1::bigint[])
ORDER BY ri.recipe_id, ri.id
`

func (q *Queries) ListLinesByRecipeIDs(ctx context.Context, recipeIDs []int64) ([]RecipeLineRow, error) {
	rows, err := q.db.Query(ctx, listLinesByRecipeIDs, recipeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []RecipeLineRow
	for rows.Next() {
		var l RecipeLineRow
		if err := rows.Scan(&l.RecipeID, &l.IngredientID, &l.Name, &l.MeasurementUnit, &l.Amount); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
