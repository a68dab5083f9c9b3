package database

import "context"

// Querier is the read/write surface of the storage layer. Handlers reach the
// database through this interface so tests can stand in a fake.
type Querier interface {
	// users
	CreateUser(ctx context.Context, arg CreateUserParams) (int64, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]User, error)
	ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error)
	CountUsers(ctx context.Context) (int64, error)
	GetAdminCount(ctx context.Context) (int64, error)
	CheckUsersTableExists(ctx context.Context) (bool, error)

	// subscriptions
	CreateSubscription(ctx context.Context, arg CreateSubscriptionParams) error
	DeleteSubscription(ctx context.Context, arg DeleteSubscriptionParams) (int64, error)
	SubscriptionExists(ctx context.Context, arg SubscriptionExistsParams) (bool, error)
	ListSubscribedAuthors(ctx context.Context, arg ListSubscribedAuthorsParams) ([]User, error)
	CountSubscribedAuthors(ctx context.Context, subscriberID int64) (int64, error)
	GetSubscribedAuthorIDs(ctx context.Context, arg GetSubscribedAuthorIDsParams) ([]int64, error)

	// tags
	CreateTag(ctx context.Context, arg CreateTagParams) (int64, error)
	GetTag(ctx context.Context, id int64) (Tag, error)
	ListTags(ctx context.Context) ([]Tag, error)
	CountTagsByIDs(ctx context.Context, ids []int64) (int64, error)
	ListRecipeTags(ctx context.Context, recipeID int64) ([]Tag, error)
	ListTagsByRecipeIDs(ctx context.Context, recipeIDs []int64) ([]RecipeTagRow, error)

	// ingredients
	CreateIngredient(ctx context.Context, arg CreateIngredientParams) (int64, error)
	GetIngredient(ctx context.Context, id int64) (Ingredient, error)
	SearchIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error)
	CountIngredientsByIDs(ctx context.Context, ids []int64) (int64, error)

	// recipes
	CreateRecipe(ctx context.Context, arg CreateRecipeParams) (int64, error)
	UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) error
	DeleteRecipe(ctx context.Context, id int64) (int64, error)
	GetRecipe(ctx context.Context, id int64) (Recipe, error)
	ListRecipes(ctx context.Context, arg ListRecipesParams) ([]Recipe, error)
	CountRecipes(ctx context.Context, arg CountRecipesParams) (int64, error)
	ListAuthorRecipes(ctx context.Context, arg ListAuthorRecipesParams) ([]Recipe, error)
	CountAuthorRecipes(ctx context.Context, authorID int64) (int64, error)
	DeleteRecipeTags(ctx context.Context, recipeID int64) error
	InsertRecipeTags(ctx context.Context, arg InsertRecipeTagsParams) error
	DeleteRecipeLines(ctx context.Context, recipeID int64) error
	InsertRecipeLines(ctx context.Context, arg InsertRecipeLinesParams) error
	ListRecipeLines(ctx context.Context, recipeID int64) ([]RecipeLine, error)
	ListLinesByRecipeIDs(ctx context.Context, recipeIDs []int64) ([]RecipeLineRow, error)

	// favorites
	AddFavorite(ctx context.Context, arg AddFavoriteParams) error
	DeleteFavorite(ctx context.Context, arg DeleteFavoriteParams) (int64, error)
	FavoriteExists(ctx context.Context, arg FavoriteExistsParams) (bool, error)
	GetFavoriteRecipeIDs(ctx context.Context, arg GetFavoriteRecipeIDsParams) ([]int64, error)

	// shopping cart
	AddCartItem(ctx context.Context, arg AddCartItemParams) error
	DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error)
	CartItemExists(ctx context.Context, arg CartItemExistsParams) (bool, error)
	GetCartRecipeIDs(ctx context.Context, arg GetCartRecipeIDsParams) ([]int64, error)
	AggregateShoppingCart(ctx context.Context, userID int64) ([]AggregatedIngredient, error)
}

var _ Querier = (*Queries)(nil)
