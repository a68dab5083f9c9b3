package database

import (
	"context"
	"strings"
)

const createIngredient = `
INSERT INTO ingredients (name, measurement_unit)
VALUES ($1, $2)
RETURNING id
`

type CreateIngredientParams struct {
	Name            string
	MeasurementUnit string
}

func (q *Queries) CreateIngredient(ctx context.Context, arg CreateIngredientParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, createIngredient, arg.Name, arg.MeasurementUnit).Scan(&id)
	return id, err
}

const getIngredient = `
SELECT id, name, measurement_unit FROM ingredients WHERE id = $1
`

func (q *Queries) GetIngredient(ctx context.Context, id int64) (Ingredient, error) {
	var i Ingredient
	err := q.db.QueryRow(ctx, getIngredient, id).Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	return i, err
}

const searchIngredients = `
SELECT id, name, measurement_unit
FROM ingredients
WHERE lower(name) LIKE lower($1) || '%'
ORDER BY name, measurement_unit
`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePrefix escapes LIKE metacharacters so a user-supplied prefix
// matches literally instead of as a pattern.
func escapeLikePrefix(s string) string {
	return likeEscaper.Replace(s)
}

// SearchIngredients returns ingredients whose name starts with the given
// prefix, case-insensitively. An empty prefix matches everything.
func (q *Queries) SearchIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	rows, err := q.db.Query(ctx, searchIngredients, escapeLikePrefix(namePrefix))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ingredients []Ingredient
	for rows.Next() {
		var i Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, i)
	}
	return ingredients, rows.Err()
}

const countIngredientsByIDs = `
SELECT COUNT(*) FROM ingredients WHERE id = ANY($1::bigint[])
`

func (q *Queries) CountIngredientsByIDs(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countIngredientsByIDs, ids).Scan(&count)
	return count, err
}
