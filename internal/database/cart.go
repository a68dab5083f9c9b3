package database

import "context"

const addCartItem = `
INSERT INTO shopping_cart (user_id, recipe_id)
VALUES ($1, $2)
`

type AddCartItemParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) AddCartItem(ctx context.Context, arg AddCartItemParams) error {
	_, err := q.db.Exec(ctx, addCartItem, arg.UserID, arg.RecipeID)
	return err
}

const deleteCartItem = `
DELETE FROM shopping_cart
WHERE user_id = $1 AND recipe_id = $2
`

type DeleteCartItemParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCartItem, arg.UserID, arg.RecipeID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const cartItemExists = `
SELECT EXISTS (
    SELECT 1 FROM shopping_cart WHERE user_id = $1 AND recipe_id = $2
)
`

type CartItemExistsParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) CartItemExists(ctx context.Context, arg CartItemExistsParams) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, cartItemExists, arg.UserID, arg.RecipeID).Scan(&exists)
	return exists, err
}

const getCartRecipeIDs = `
SELECT recipe_id FROM shopping_cart
WHERE user_id = $1 AND recipe_id = ANY($2::bigint[])
`

type GetCartRecipeIDsParams struct {
	UserID    int64
	RecipeIDs []int64
}

func (q *Queries) GetCartRecipeIDs(ctx context.Context, arg GetCartRecipeIDsParams) ([]int64, error) {
	rows, err := q.db.Query(ctx, getCartRecipeIDs, arg.UserID, arg.RecipeIDs)
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

const aggregateShoppingCart = `
SELECT i.name, i.measurement_unit, SUM(ri.amount)::bigint AS total_amount
FROM shopping_cart sc
JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
JOIN ingredients i ON i.id = ri.ingredient_id
WHERE sc.user_id = $1
GROUP BY i.name, i.measurement_unit
ORDER BY i.name, i.measurement_unit
`

// AggregateShoppingCart sums ingredient amounts across every recipe in the
// user's cart, one row per distinct (name, measurement unit) pair.
func (q *Queries) AggregateShoppingCart(ctx context.Context, userID int64) ([]AggregatedIngredient, error) {
	rows, err := q.db.Query(ctx, aggregateShoppingCart, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AggregatedIngredient
	for rows.Next() {
		var a AggregatedIngredient
		if err := rows.Scan(&a.Name, &a.MeasurementUnit, &a.TotalAmount); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
