package database

import "context"

const addFavorite = `
INSERT INTO favorites (user_id, recipe_id)
VALUES ($1, $2)
`

type AddFavoriteParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) AddFavorite(ctx context.Context, arg AddFavoriteParams) error {
	_, err := q.db.Exec(ctx, addFavorite, arg.UserID, arg.RecipeID)
	return err
}

const deleteFavorite = `
DELETE FROM favorites
WHERE user_id = $1 AND recipe_id = $2
`

type DeleteFavoriteParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) DeleteFavorite(ctx context.Context, arg DeleteFavoriteParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteFavorite, arg.UserID, arg.RecipeID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const favoriteExists = `
SELECT EXISTS (
    SELECT 1 FROM favorites WHERE user_id = $1 AND recipe_id = $2
)
`

type FavoriteExistsParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) FavoriteExists(ctx context.Context, arg FavoriteExistsParams) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, favoriteExists, arg.UserID, arg.RecipeID).Scan(&exists)
	return exists, err
}

const getFavoriteRecipeIDs = `
SELECT recipe_id FROM favorites
WHERE user_id = $1 AND recipe_id = ANY($2::bigint[])
`

type GetFavoriteRecipeIDsParams struct {
	UserID    int64
	RecipeIDs []int64
}

func (q *Queries) GetFavoriteRecipeIDs(ctx context.Context, arg GetFavoriteRecipeIDsParams) ([]int64, error) {
	rows, err := q.db.Query(ctx, getFavoriteRecipeIDs, arg.UserID, arg.RecipeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
