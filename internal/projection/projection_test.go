package projection

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ipoderator/foodgram-project-react/internal/database"
)

type fakeStore struct {
	users         map[int64]database.User
	tags          map[int64][]database.Tag
	lines         map[int64][]database.RecipeLine
	favorites     map[int64]bool
	cart          map[int64]bool
	subscriptions map[int64]bool
	authorRecipes []database.Recipe
	recipeCount   int64

	listAuthorRecipesLimit int32
}

func (f *fakeStore) GetUser(_ context.Context, id int64) (database.User, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetUsersByIDs(_ context.Context, ids []int64) ([]database.User, error) {
	var out []database.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) SubscriptionExists(_ context.Context, arg database.SubscriptionExistsParams) (bool, error) {
	return f.subscriptions[arg.AuthorID], nil
}

func (f *fakeStore) GetSubscribedAuthorIDs(_ context.Context, arg database.GetSubscribedAuthorIDsParams) ([]int64, error) {
	var out []int64
	for _, id := range arg.AuthorIDs {
		if f.subscriptions[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRecipeTags(_ context.Context, recipeID int64) ([]database.Tag, error) {
	return f.tags[recipeID], nil
}

func (f *fakeStore) ListTagsByRecipeIDs(_ context.Context, recipeIDs []int64) ([]database.RecipeTagRow, error) {
	var out []database.RecipeTagRow
	for _, id := range recipeIDs {
		for _, t := range f.tags[id] {
			out = append(out, database.RecipeTagRow{RecipeID: id, Tag: t})
		}
	}
	return out, nil
}

func (f *fakeStore) ListRecipeLines(_ context.Context, recipeID int64) ([]database.RecipeLine, error) {
	return f.lines[recipeID], nil
}

func (f *fakeStore) ListLinesByRecipeIDs(_ context.Context, recipeIDs []int64) ([]database.RecipeLineRow, error) {
	var out []database.RecipeLineRow
	for _, id := range recipeIDs {
		for _, l := range f.lines[id] {
			out = append(out, database.RecipeLineRow{
				RecipeID:        id,
				IngredientID:    l.IngredientID,
				Name:            l.Name,
				MeasurementUnit: l.MeasurementUnit,
				Amount:          l.Amount,
			})
		}
	}
	return out, nil
}

func (f *fakeStore) FavoriteExists(_ context.Context, arg database.FavoriteExistsParams) (bool, error) {
	return f.favorites[arg.RecipeID], nil
}

func (f *fakeStore) CartItemExists(_ context.Context, arg database.CartItemExistsParams) (bool, error) {
	return f.cart[arg.RecipeID], nil
}

func (f *fakeStore) GetFavoriteRecipeIDs(_ context.Context, arg database.GetFavoriteRecipeIDsParams) ([]int64, error) {
	var out []int64
	for _, id := range arg.RecipeIDs {
		if f.favorites[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeStore) GetCartRecipeIDs(_ context.Context, arg database.GetCartRecipeIDsParams) ([]int64, error) {
	var out []int64
	for _, id := range arg.RecipeIDs {
		if f.cart[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAuthorRecipes(_ context.Context, arg database.ListAuthorRecipesParams) ([]database.Recipe, error) {
	f.listAuthorRecipesLimit = arg.Limit
	recipes := f.authorRecipes
	if int(arg.Limit) < len(recipes) {
		recipes = recipes[:arg.Limit]
	}
	return recipes, nil
}

func (f *fakeStore) CountAuthorRecipes(_ context.Context, _ int64) (int64, error) {
	return f.recipeCount, nil
}

type noopResolver struct{}

func (noopResolver) FileURL(urlpath string) string { return "http://files.local/" + urlpath }

func testRecipe(id, authorID int64) database.Recipe {
	return database.Recipe{
		ID:          id,
		AuthorID:    authorID,
		Name:        "Borscht",
		ImageUrl:    pgtype.Text{String: "recipes/1.png", Valid: true},
		Text:        "Simmer and serve.",
		CookingTime: 90,
	}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[int64]database.User{
			1: {ID: 1, Username: "chef", Email: "chef@example.com", FirstName: "Anna", LastName: "Smith"},
		},
		tags: map[int64][]database.Tag{
			10: {{ID: 5, Name: "Dinner", Color: "#00FF00", Slug: "dinner"}},
		},
		lines: map[int64][]database.RecipeLine{
			10: {{IngredientID: 7, Name: "Beets", MeasurementUnit: "g", Amount: 300}},
		},
		favorites:     map[int64]bool{},
		cart:          map[int64]bool{},
		subscriptions: map[int64]bool{},
	}
}

func TestRecipeAnonymousViewerFlagsFalse(t *testing.T) {
	store := newFakeStore()
	store.favorites[10] = true
	store.cart[10] = true
	b := NewBuilder(store, noopResolver{})

	view, err := b.Recipe(context.Background(), testRecipe(10, 1), AnonymousViewer)
	if err != nil {
		t.Fatalf("Recipe() error = %v", err)
	}
	if view.IsFavorited || view.IsInShoppingCart {
		t.Errorf("anonymous viewer flags = (%v, %v), want both false",
			view.IsFavorited, view.IsInShoppingCart)
	}
	if view.Author.IsSubscribed {
		t.Error("anonymous viewer is_subscribed = true, want false")
	}
}

func TestRecipeViewerFlags(t *testing.T) {
	store := newFakeStore()
	store.favorites[10] = true
	store.subscriptions[1] = true
	b := NewBuilder(store, noopResolver{})

	view, err := b.Recipe(context.Background(), testRecipe(10, 1), 2)
	if err != nil {
		t.Fatalf("Recipe() error = %v", err)
	}
	if !view.IsFavorited {
		t.Error("is_favorited = false, want true")
	}
	if view.IsInShoppingCart {
		t.Error("is_in_shopping_cart = true, want false")
	}
	if !view.Author.IsSubscribed {
		t.Error("author.is_subscribed = false, want true")
	}
	if len(view.Ingredients) != 1 || view.Ingredients[0].Amount != 300 {
		t.Errorf("unexpected ingredient lines: %+v", view.Ingredients)
	}
	if view.Image != "http://files.local/recipes/1.png" {
		t.Errorf("image = %q, want resolved URL", view.Image)
	}
}

func TestUserSelfViewerNotSubscribed(t *testing.T) {
	store := newFakeStore()
	store.subscriptions[1] = true
	b := NewBuilder(store, noopResolver{})

	view, err := b.User(context.Background(), store.users[1], 1)
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}
	if view.IsSubscribed {
		t.Error("self viewer is_subscribed = true, want false")
	}
}

func TestRecipesBatch(t *testing.T) {
	store := newFakeStore()
	store.favorites[10] = true
	b := NewBuilder(store, noopResolver{})

	views, err := b.Recipes(context.Background(), []database.Recipe{
		testRecipe(10, 1),
		testRecipe(11, 1),
	}, 2)
	if err != nil {
		t.Fatalf("Recipes() error = %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("len(views) = %d, want 2", len(views))
	}
	if !views[0].IsFavorited || views[1].IsFavorited {
		t.Errorf("favorited flags = (%v, %v), want (true, false)",
			views[0].IsFavorited, views[1].IsFavorited)
	}
	if views[1].Tags == nil || views[1].Ingredients == nil {
		t.Error("recipe without associations should get empty slices, not nil")
	}
}

func TestAuthorRecipesCountIndependentOfLimit(t *testing.T) {
	store := newFakeStore()
	store.authorRecipes = []database.Recipe{
		testRecipe(10, 1), testRecipe(11, 1), testRecipe(12, 1),
	}
	store.recipeCount = 3
	b := NewBuilder(store, noopResolver{})

	view, err := b.Author(context.Background(), store.users[1], AnonymousViewer, 2)
	if err != nil {
		t.Fatalf("Author() error = %v", err)
	}
	if len(view.Recipes) != 2 {
		t.Errorf("len(recipes) = %d, want truncation to 2", len(view.Recipes))
	}
	if view.RecipesCount != 3 {
		t.Errorf("recipes_count = %d, want 3 regardless of the limit", view.RecipesCount)
	}
}

func TestAuthorDefaultLimitBounded(t *testing.T) {
	store := newFakeStore()
	b := NewBuilder(store, noopResolver{})

	if _, err := b.Author(context.Background(), store.users[1], AnonymousViewer, 0); err != nil {
		t.Fatalf("Author() error = %v", err)
	}
	if store.listAuthorRecipesLimit != maxAuthorRecipes {
		t.Errorf("limit = %d, want package bound %d", store.listAuthorRecipesLimit, maxAuthorRecipes)
	}
}
