package database

import "context"

const createTag = `
INSERT INTO tags (name, color, slug)
VALUES ($1, $2, $3)
RETURNING id
`

type CreateTagParams struct {
	Name  string
	Color string
	Slug  string
}

func (q *Queries) CreateTag(ctx context.Context, arg CreateTagParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, createTag, arg.Name, arg.Color, arg.Slug).Scan(&id)
	return id, err
}

const getTag = `
SELECT id, name, color, slug FROM tags WHERE id = $1
`

func (q *Queries) GetTag(ctx context.Context, id int64) (Tag, error) {
	var t Tag
	err := q.db.QueryRow(ctx, getTag, id).Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	return t, err
}

const listTags = `
SELECT id, name, color, slug FROM tags ORDER BY name
`

func (q *Queries) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listTags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

const countTagsByIDs = `
SELECT COUNT(*) FROM tags WHERE id = ANY($1::bigint[])
`

func (q *Queries) CountTagsByIDs(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countTagsByIDs, ids).Scan(&count)
	return count, err
}

const listRecipeTags = `
SELECT t.id, t.name, t.color, t.slug
FROM recipe_tags rt
JOIN tags t ON t.id = rt.tag_id
WHERE rt.recipe_id = $1
ORDER BY t.name
`

func (q *Queries) ListRecipeTags(ctx context.Context, recipeID int64) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listRecipeTags, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

const listTagsByRecipeIDs = `
SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
FROM recipe_tags rt
JOIN tags t ON t.id = rt.tag_id
WHERE rt.recipe_id = ANY($1::bigint[])
ORDER BY rt.recipe_id, t.name
`

func (q *Queries) ListTagsByRecipeIDs(ctx context.Context, recipeIDs []int64) ([]RecipeTagRow, error) {
	rows, err := q.db.Query(ctx, listTagsByRecipeIDs, recipeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RecipeTagRow
	for rows.Next() {
		var r RecipeTagRow
		if err := rows.Scan(&r.RecipeID, &r.Tag.ID, &r.Tag.Name, &r.Tag.Color, &r.Tag.Slug); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
