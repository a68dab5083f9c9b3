package database

import "github.com/jackc/pgx/v5/pgtype"

type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    pgtype.Timestamptz
}

type Subscription struct {
	ID           int64
	SubscriberID int64
	AuthorID     int64
	CreatedAt    pgtype.Timestamptz
}

type Tag struct {
	ID    int64
	Name  string
	Color string
	Slug  string
}

type Ingredient struct {
	ID              int64
	Name            string
	MeasurementUnit string
}

type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	ImageUrl    pgtype.Text
	Text        string
	CookingTime int32
	CreatedAt   pgtype.Timestamptz
}

// RecipeLine is one ingredient line of a recipe joined with the ingredient.
type RecipeLine struct {
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          int32
}

// RecipeLineRow is a RecipeLine carrying its recipe id, for batched reads.
type RecipeLineRow struct {
	RecipeID        int64
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          int32
}

// RecipeTagRow is a tag carrying its recipe id, for batched reads.
type RecipeTagRow struct {
	RecipeID int64
	Tag      Tag
}

// AggregatedIngredient is one grouped row of the shopping list query.
type AggregatedIngredient struct {
	Name            string
	MeasurementUnit string
	TotalAmount     int64
}
