// Package projection assembles the denormalized read views served by the
// API. Every view is built through an explicit Builder method; handlers pass
// the viewing user's id (0 for anonymous) and get the viewer-relative flags
// computed without errors on anonymous requests.
package projection

import (
	"context"
	"fmt"

	"github.com/ipoderator/foodgram-project-react/internal/database"
)

// AnonymousViewer marks a request with no authenticated user.
const AnonymousViewer int64 = 0

// maxAuthorRecipes bounds the recipe list embedded in subscription views.
const maxAuthorRecipes = 100

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type IngredientLine struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int32  `json:"amount"`
}

type Recipe struct {
	ID               int64            `json:"id"`
	Tags             []Tag            `json:"tags"`
	Author           User             `json:"author"`
	Ingredients      []IngredientLine `json:"ingredients"`
	IsFavorited      bool             `json:"is_favorited"`
	IsInShoppingCart bool             `json:"is_in_shopping_cart"`
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	Text             string           `json:"text"`
	CookingTime      int32            `json:"cooking_time"`
}

// RecipeShort is the compact recipe view embedded in favorite, cart and
// subscription responses.
type RecipeShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int32  `json:"cooking_time"`
}

// Author is the user view served in subscription listings.
type Author struct {
	User

	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}

// store is the storage subset projections read from.
type store interface {
	GetUsersByIDs(ctx context.Context, ids []int64) ([]database.User, error)
	SubscriptionExists(ctx context.Context, arg database.SubscriptionExistsParams) (bool, error)
	GetSubscribedAuthorIDs(ctx context.Context, arg database.GetSubscribedAuthorIDsParams) ([]int64, error)
	ListRecipeTags(ctx context.Context, recipeID int64) ([]database.Tag, error)
	ListTagsByRecipeIDs(ctx context.Context, recipeIDs []int64) ([]database.RecipeTagRow, error)
	ListRecipeLines(ctx context.Context, recipeID int64) ([]database.RecipeLine, error)
	ListLinesByRecipeIDs(ctx context.Context, recipeIDs []int64) ([]database.RecipeLineRow, error)
	FavoriteExists(ctx context.Context, arg database.FavoriteExistsParams) (bool, error)
	CartItemExists(ctx context.Context, arg database.CartItemExistsParams) (bool, error)
	GetFavoriteRecipeIDs(ctx context.Context, arg database.GetFavoriteRecipeIDsParams) ([]int64, error)
	GetCartRecipeIDs(ctx context.Context, arg database.GetCartRecipeIDsParams) ([]int64, error)
	ListAuthorRecipes(ctx context.Context, arg database.ListAuthorRecipesParams) ([]database.Recipe, error)
	CountAuthorRecipes(ctx context.Context, authorID int64) (int64, error)
	GetUser(ctx context.Context, id int64) (database.User, error)
}

// FileResolver turns a stored image path into a servable URL.
type FileResolver interface {
	FileURL(urlpath string) string
}

type Builder struct {
	store store
	files FileResolver
}

func NewBuilder(s store, files FileResolver) *Builder {
	return &Builder{store: s, files: files}
}

func (b *Builder) imageURL(r database.Recipe) string {
	if !r.ImageUrl.Valid || r.ImageUrl.String == "" {
		return ""
	}
	return b.files.FileURL(r.ImageUrl.String)
}

// User builds the profile view of u, with is_subscribed computed relative to
// the viewer. The flag is false for anonymous and self viewers.
func (b *Builder) User(ctx context.Context, u database.User, viewerID int64) (User, error) {
	view := User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if viewerID == AnonymousViewer || viewerID == u.ID {
		return view, nil
	}

	subscribed, err := b.store.SubscriptionExists(ctx, database.SubscriptionExistsParams{
		SubscriberID: viewerID,
		AuthorID:     u.ID,
	})
	if err != nil {
		return User{}, fmt.Errorf("checking subscription: %w", err)
	}
	view.IsSubscribed = subscribed
	return view, nil
}

// Short builds the compact recipe view.
func (b *Builder) Short(r database.Recipe) RecipeShort {
	return RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       b.imageURL(r),
		CookingTime: r.CookingTime,
	}
}

// Recipe builds the full read view of a single recipe.
func (b *Builder) Recipe(ctx context.Context, r database.Recipe, viewerID int64) (Recipe, error) {
	author, err := b.store.GetUser(ctx, r.AuthorID)
	if err != nil {
		return Recipe{}, fmt.Errorf("loading recipe author: %w", err)
	}
	authorView, err := b.User(ctx, author, viewerID)
	if err != nil {
		return Recipe{}, err
	}

	tags, err := b.store.ListRecipeTags(ctx, r.ID)
	if err != nil {
		return Recipe{}, fmt.Errorf("loading recipe tags: %w", err)
	}
	lines, err := b.store.ListRecipeLines(ctx, r.ID)
	if err != nil {
		return Recipe{}, fmt.Errorf("loading recipe ingredients: %w", err)
	}

	view := Recipe{
		ID:          r.ID,
		Tags:        make([]Tag, 0, len(tags)),
		Author:      authorView,
		Ingredients: make([]IngredientLine, 0, len(lines)),
		Name:        r.Name,
		Image:       b.imageURL(r),
		Text:        r.Text,
		CookingTime: r.CookingTime,
	}
	for _, t := range tags {
		view.Tags = append(view.Tags, Tag{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug})
	}
	for _, l := range lines {
		view.Ingredients = append(view.Ingredients, IngredientLine{
			ID:              l.IngredientID,
			Name:            l.Name,
			MeasurementUnit: l.MeasurementUnit,
			Amount:          l.Amount,
		})
	}

	if viewerID == AnonymousViewer {
		return view, nil
	}
	view.IsFavorited, err = b.store.FavoriteExists(ctx, database.FavoriteExistsParams{
		UserID:   viewerID,
		RecipeID: r.ID,
	})
	if err != nil {
		return Recipe{}, fmt.Errorf("checking favorite: %w", err)
	}
	view.IsInShoppingCart, err = b.store.CartItemExists(ctx, database.CartItemExistsParams{
		UserID:   viewerID,
		RecipeID: r.ID,
	})
	if err != nil {
		return Recipe{}, fmt.Errorf("checking shopping cart: %w", err)
	}
	return view, nil
}

// Recipes builds read views for a page of recipes with batched queries
// instead of per-recipe lookups.
func (b *Builder) Recipes(ctx context.Context, recipes []database.Recipe, viewerID int64) ([]Recipe, error) {
	views := make([]Recipe, 0, len(recipes))
	if len(recipes) == 0 {
		return views, nil
	}

	recipeIDs := make([]int64, 0, len(recipes))
	authorIDSet := make(map[int64]struct{})
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDSet[r.AuthorID] = struct{}{}
	}
	authorIDs := make([]int64, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}

	authors, err := b.store.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("loading authors: %w", err)
	}
	authorByID := make(map[int64]database.User, len(authors))
	for _, a := range authors {
		authorByID[a.ID] = a
	}

	tagRows, err := b.store.ListTagsByRecipeIDs(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("loading tags: %w", err)
	}
	tagsByRecipe := make(map[int64][]Tag)
	for _, row := range tagRows {
		tagsByRecipe[row.RecipeID] = append(tagsByRecipe[row.RecipeID], Tag{
			ID:    row.Tag.ID,
			Name:  row.Tag.Name,
			Color: row.Tag.Color,
			Slug:  row.Tag.Slug,
		})
	}

	lineRows, err := b.store.ListLinesByRecipeIDs(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("loading ingredient lines: %w", err)
	}
	linesByRecipe := make(map[int64][]IngredientLine)
	for _, row := range lineRows {
		linesByRecipe[row.RecipeID] = append(linesByRecipe[row.RecipeID], IngredientLine{
			ID:              row.IngredientID,
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	favorited := map[int64]bool{}
	inCart := map[int64]bool{}
	subscribed := map[int64]bool{}
	if viewerID != AnonymousViewer {
		favoriteIDs, err := b.store.GetFavoriteRecipeIDs(ctx, database.GetFavoriteRecipeIDsParams{
			UserID:    viewerID,
			RecipeIDs: recipeIDs,
		})
		if err != nil {
			return nil, fmt.Errorf("loading favorites: %w", err)
		}
		for _, id := range favoriteIDs {
			favorited[id] = true
		}
		cartIDs, err := b.store.GetCartRecipeIDs(ctx, database.GetCartRecipeIDsParams{
			UserID:    viewerID,
			RecipeIDs: recipeIDs,
		})
		if err != nil {
			return nil, fmt.Errorf("loading shopping cart: %w", err)
		}
		for _, id := range cartIDs {
			inCart[id] = true
		}
		subscribedIDs, err := b.store.GetSubscribedAuthorIDs(ctx, database.GetSubscribedAuthorIDsParams{
			SubscriberID: viewerID,
			AuthorIDs:    authorIDs,
		})
		if err != nil {
			return nil, fmt.Errorf("loading subscriptions: %w", err)
		}
		for _, id := range subscribedIDs {
			subscribed[id] = true
		}
	}

	for _, r := range recipes {
		author := authorByID[r.AuthorID]
		tags := tagsByRecipe[r.ID]
		if tags == nil {
			tags = []Tag{}
		}
		lines := linesByRecipe[r.ID]
		if lines == nil {
			lines = []IngredientLine{}
		}
		views = append(views, Recipe{
			ID:   r.ID,
			Tags: tags,
			Author: User{
				ID:           author.ID,
				Email:        author.Email,
				Username:     author.Username,
				FirstName:    author.FirstName,
				LastName:     author.LastName,
				IsSubscribed: subscribed[author.ID] && viewerID != author.ID,
			},
			Ingredients:      lines,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            b.imageURL(r),
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return views, nil
}

// Author builds the subscription view of u: profile, the author's most
// recent recipes truncated to recipesLimit, and the untruncated recipe
// count. recipesLimit <= 0 falls back to the package bound.
func (b *Builder) Author(ctx context.Context, u database.User, viewerID int64, recipesLimit int32) (Author, error) {
	profile, err := b.User(ctx, u, viewerID)
	if err != nil {
		return Author{}, err
	}

	limit := recipesLimit
	if limit <= 0 || limit > maxAuthorRecipes {
		limit = maxAuthorRecipes
	}
	recipes, err := b.store.ListAuthorRecipes(ctx, database.ListAuthorRecipesParams{
		AuthorID: u.ID,
		Limit:    limit,
	})
	if err != nil {
		return Author{}, fmt.Errorf("loading author recipes: %w", err)
	}
	count, err := b.store.CountAuthorRecipes(ctx, u.ID)
	if err != nil {
		return Author{}, fmt.Errorf("counting author recipes: %w", err)
	}

	view := Author{
		User:         profile,
		Recipes:      make([]RecipeShort, 0, len(recipes)),
		RecipesCount: count,
	}
	for _, r := range recipes {
		view.Recipes = append(view.Recipes, b.Short(r))
	}
	return view, nil
}
