// Package recipes contains handlers for the recipe endpoints.
package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	apiError "github.com/ipoderator/foodgram-project-react/internal/api/error"
	"github.com/ipoderator/foodgram-project-react/internal/api/requestid"
	"github.com/ipoderator/foodgram-project-react/internal/api/token"
	"github.com/ipoderator/foodgram-project-react/internal/database"
	"github.com/ipoderator/foodgram-project-react/internal/env"
	fgJson "github.com/ipoderator/foodgram-project-react/internal/json"
	"github.com/ipoderator/foodgram-project-react/internal/pagination"
	"github.com/ipoderator/foodgram-project-react/internal/projection"
	"github.com/ipoderator/foodgram-project-react/internal/recipe"
	"github.com/ipoderator/foodgram-project-react/internal/shopping"
)

const (
	favoriteConstraint = "favorites_user_id_recipe_id_key"
	cartConstraint     = "shopping_cart_user_id_recipe_id_key"
)

func viewerID(r *http.Request) int64 {
	if id, ok := token.UserIDFromCtx(r.Context()); ok {
		return id
	}
	return projection.AnonymousViewer
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	resp, err := json.Marshal(body)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// filterMode maps an is_favorited / is_in_shopping_cart query value to a
// listing filter mode. A zero value excludes matching recipes instead of
// turning the filter off.
func filterMode(raw string) int32 {
	switch raw {
	case "":
		return database.FilterOff
	case "0", "false":
		return database.FilterOut
	default:
		return database.FilterIn
	}
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// checkTagsExist verifies every tag id references a catalog tag.
func checkTagsExist(ctx context.Context, e *env.Env, tagIDs []int64) (bool, error) {
	if len(tagIDs) == 0 {
		return true, nil
	}
	count, err := e.Database.CountTagsByIDs(ctx, tagIDs)
	if err != nil {
		return false, fmt.Errorf("counting tags: %w", err)
	}
	return count == int64(len(tagIDs)), nil
}

// checkIngredientsExist verifies every line references a catalog ingredient.
func checkIngredientsExist(ctx context.Context, e *env.Env, lines []recipe.Line) (bool, error) {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.IngredientID)
	}
	count, err := e.Database.CountIngredientsByIDs(ctx, ids)
	if err != nil {
		return false, fmt.Errorf("counting ingredients: %w", err)
	}
	return count == int64(len(ids)), nil
}

// canModifyRecipe reports whether the user may modify the recipe.
// Administrators may modify any recipe, everyone else only their own.
func canModifyRecipe(ctx context.Context, e *env.Env, userID, authorID int64) (bool, error) {
	if userID == authorID {
		return true, nil
	}
	user, err := e.Database.GetUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("loading user: %w", err)
	}
	return user.IsAdmin, nil
}

func toLineParams(lines []recipe.Line) []database.RecipeLineParams {
	params := make([]database.RecipeLineParams, 0, len(lines))
	for _, l := range lines {
		params = append(params, database.RecipeLineParams{
			IngredientID: l.IngredientID,
			Amount:       l.Amount,
		})
	}
	return params
}

// HandleListRecipes returns a filtered, paginated recipe listing. The
// is_favorited and is_in_shopping_cart filters are viewer-relative and are
// ignored for anonymous requests.
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	query := r.URL.Query()
	var authorID int64
	if raw := query.Get("author"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			_ = apiError.EncodeError(w, apiError.BadRequest, "invalid author id", requestID)
			return
		}
		authorID = id
	}

	viewer := viewerID(r)
	favoritedMode := filterMode(query.Get("is_favorited"))
	cartMode := filterMode(query.Get("is_in_shopping_cart"))
	if viewer == projection.AnonymousViewer {
		favoritedMode = database.FilterOff
		cartMode = database.FilterOff
	}

	params := pagination.Parse(query, env.Config.API.PageSize)
	recipes, err := env.Database.ListRecipes(ctx, database.ListRecipesParams{
		AuthorID:      authorID,
		TagSlugs:      query["tags"],
		FavoritedMode: favoritedMode,
		FavoritedBy:   viewer,
		CartMode:      cartMode,
		InCartOf:      viewer,
		Limit:         params.Limit,
		Offset:        params.Offset(),
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	count, err := env.Database.CountRecipes(ctx, database.CountRecipesParams{
		AuthorID:      authorID,
		TagSlugs:      query["tags"],
		FavoritedMode: favoritedMode,
		FavoritedBy:   viewer,
		CartMode:      cartMode,
		InCartOf:      viewer,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to count recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	builder := projection.NewBuilder(env.Database, env.Files)
	views, err := builder.Recipes(ctx, recipes, viewer)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to build recipe views", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, http.StatusOK, pagination.NewPage(r, params, count, views))
}

// HandleGetRecipe returns the full view of a single recipe.
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	row, err := env.Database.GetRecipe(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	builder := projection.NewBuilder(env.Database, env.Files)
	view, err := builder.Recipe(ctx, row, viewerID(r))
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to build recipe view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, http.StatusOK, view)
}

// HandleCreateRecipe creates a recipe from a JSON body with a base64 data-URI
// image. The recipe, its tags and its ingredient lines are written in one
// transaction; the image is stored after the insert so its path can carry
// the recipe id.
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Read request
	var request CreateRecipeRequest
	if err := fgJson.DecodeJSON(&request, json.NewDecoder(r.Body)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "malformed request body", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to validate request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.ValidationFailed, "invalid recipe fields", requestID)
		return
	}

	// Domain rules
	if err := recipe.ValidateCookingTime(request.CookingTime); err != nil {
		_ = apiError.EncodeError(w, apiError.ValidationFailed, err.Error(), requestID)
		return
	}
	lines := toLines(request.Ingredients)
	if err := recipe.ValidateLines(lines); err != nil {
		_ = apiError.EncodeError(w, apiError.ValidationFailed, err.Error(), requestID)
		return
	}

	// Referenced catalog rows
	tagIDs := dedupeIDs(request.Tags)
	tagsOK, err := checkTagsExist(ctx, env, tagIDs)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to check tags", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !tagsOK {
		_ = apiError.EncodeError(w, apiError.TagNotFound, "unknown tag id", requestID)
		return
	}
	ingredientsOK, err := checkIngredientsExist(ctx, env, lines)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to check ingredients", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !ingredientsOK {
		_ = apiError.EncodeError(w, apiError.IngredientNotFound, "unknown ingredient id", requestID)
		return
	}

	// Decode image
	uploadedImage, err := recipe.ParseDataURI(request.Image)
	if errors.Is(err, recipe.ErrNotDataURI) || errors.Is(err, recipe.ErrUnsupportedMimeType) {
		_ = apiError.EncodeError(w, apiError.ValidationFailed, "invalid recipe image", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to parse recipe image", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Create recipe
	env.Logger.DebugContext(ctx, "creating recipe")
	recipeID, err := env.Database.CreateRecipeWithRelations(ctx, database.CreateRecipeParams{
		AuthorID:    userID,
		Name:        request.Name,
		Text:        request.Text,
		CookingTime: request.CookingTime,
	}, tagIDs, toLineParams(lines))
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Store image
	env.Logger.DebugContext(ctx, "storing recipe image")
	imageURL, _, err := env.Files.WriteRecipeImage(ctx, recipeID, uploadedImage.Suffix, uploadedImage.Data)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to store recipe image", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	err = env.Database.UpdateRecipe(ctx, database.UpdateRecipeParams{
		ID:       recipeID,
		ImageUrl: pgtype.Text{String: imageURL, Valid: true},
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to set recipe image", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Respond with the read view
	row, err := env.Database.GetRecipe(ctx, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to reload recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	builder := projection.NewBuilder(env.Database, env.Files)
	view, err := builder.Recipe(ctx, row, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to build recipe view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, http.StatusCreated, view)
}

// HandleUpdateRecipe applies a partial update to a recipe the authenticated
// user authored, or to any recipe for administrators. A submitted ingredient
// list replaces the prior lines wholesale inside the update transaction.
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	// Check authorship
	prior, err := env.Database.GetRecipe(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	allowed, err := canModifyRecipe(ctx, env, userID, prior.AuthorID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to check recipe access", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !allowed {
		_ = apiError.EncodeError(w, apiError.NotRecipeAuthor, "not allowed to edit this recipe", requestID)
		return
	}

	// Read request
	var request UpdateRecipeRequest
	if err := fgJson.DecodeJSON(&request, json.NewDecoder(r.Body)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "malformed request body", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to validate request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.ValidationFailed, "invalid recipe fields", requestID)
		return
	}

	// Domain rules on submitted fields
	if request.CookingTime != nil {
		if err := recipe.ValidateCookingTime(*request.CookingTime); err != nil {
			_ = apiError.EncodeError(w, apiError.ValidationFailed, err.Error(), requestID)
			return
		}
	}
	var lines []recipe.Line
	if request.Ingredients != nil {
		lines = toLines(request.Ingredients)
		if err := recipe.ValidateLines(lines); err != nil {
			_ = apiError.EncodeError(w, apiError.ValidationFailed, err.Error(), requestID)
			return
		}
		ingredientsOK, err := checkIngredientsExist(ctx, env, lines)
		if err != nil {
			env.Logger.ErrorContext(ctx, "failed to check ingredients", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		if !ingredientsOK {
			_ = apiError.EncodeError(w, apiError.IngredientNotFound, "unknown ingredient id", requestID)
			return
		}
	}
	var tagIDs []int64
	if request.Tags != nil {
		tagIDs = dedupeIDs(request.Tags)
		tagsOK, err := checkTagsExist(ctx, env, tagIDs)
		if err != nil {
			env.Logger.ErrorContext(ctx, "failed to check tags", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		if !tagsOK {
			_ = apiError.EncodeError(w, apiError.TagNotFound, "unknown tag id", requestID)
			return
		}
	}

	// Store new image first so the update carries its URL
	var imageURL pgtype.Text
	if request.Image != nil {
		uploadedImage, err := recipe.ParseDataURI(*request.Image)
		if errors.Is(err, recipe.ErrNotDataURI) || errors.Is(err, recipe.ErrUnsupportedMimeType) {
			_ = apiError.EncodeError(w, apiError.ValidationFailed, "invalid recipe image", requestID)
			return
		} else if err != nil {
			env.Logger.ErrorContext(ctx, "failed to parse recipe image", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		env.Logger.DebugContext(ctx, "storing recipe image")
		url, _, err := env.Files.WriteRecipeImage(ctx, recipeID, uploadedImage.Suffix, uploadedImage.Data)
		if err != nil {
			env.Logger.ErrorContext(ctx, "failed to store recipe image", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		imageURL = pgtype.Text{String: url, Valid: true}

		// A different suffix lands on a different path, so the old file
		// would be orphaned.
		if prior.ImageUrl.Valid && prior.ImageUrl.String != "" && prior.ImageUrl.String != url {
			if err := env.Files.DeleteURLPath(ctx, prior.ImageUrl.String); err != nil {
				env.Logger.WarnContext(ctx, "failed to delete replaced recipe image", slog.Any("error", err))
			}
		}
	}

	params := database.UpdateRecipeParams{
		ID:       recipeID,
		ImageUrl: imageURL,
	}
	if request.Name != nil {
		params.Name = pgtype.Text{String: *request.Name, Valid: true}
	}
	if request.Text != nil {
		params.Text = pgtype.Text{String: *request.Text, Valid: true}
	}
	if request.CookingTime != nil {
		params.CookingTime = pgtype.Int4{Int32: *request.CookingTime, Valid: true}
	}

	var lineParams []database.RecipeLineParams
	if request.Ingredients != nil {
		lineParams = toLineParams(lines)
	}

	env.Logger.DebugContext(ctx, "updating recipe")
	if err := env.Database.UpdateRecipeWithRelations(ctx, params, tagIDs, lineParams); err != nil {
		env.Logger.ErrorContext(ctx, "failed to update recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Respond with the read view
	row, err := env.Database.GetRecipe(ctx, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to reload recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	builder := projection.NewBuilder(env.Database, env.Files)
	view, err := builder.Recipe(ctx, row, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to build recipe view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, http.StatusOK, view)
}

// HandleDeleteRecipe removes a recipe the authenticated user authored.
// Administrators may remove any recipe.
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	row, err := env.Database.GetRecipe(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	allowed, err := canModifyRecipe(ctx, env, userID, row.AuthorID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to check recipe access", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !allowed {
		_ = apiError.EncodeError(w, apiError.NotRecipeAuthor, "not allowed to delete this recipe", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "deleting recipe")
	if _, err := env.Database.DeleteRecipe(ctx, recipeID); err != nil {
		env.Logger.ErrorContext(ctx, "failed to delete recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if row.ImageUrl.Valid && row.ImageUrl.String != "" {
		if err := env.Files.DeleteURLPath(ctx, row.ImageUrl.String); err != nil {
			env.Logger.WarnContext(ctx, "failed to delete recipe image", slog.Any("error", err))
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// shortView loads a recipe and builds its compact view, for the favorite and
// shopping cart responses.
func shortView(ctx context.Context, e *env.Env, recipeID int64) (projection.RecipeShort, error) {
	row, err := e.Database.GetRecipe(ctx, recipeID)
	if err != nil {
		return projection.RecipeShort{}, err
	}
	builder := projection.NewBuilder(e.Database, e.Files)
	return builder.Short(row), nil
}

// HandleAddFavorite marks a recipe as a favorite of the authenticated user.
func HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	err = env.Database.AddFavorite(ctx, database.AddFavoriteParams{
		UserID:   userID,
		RecipeID: recipeID,
	})
	if database.IsUniqueViolation(err, favoriteConstraint) {
		_ = apiError.EncodeError(w, apiError.AlreadyFavorited, "recipe already favorited", requestID)
		return
	} else if database.IsForeignKeyViolation(err) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to add favorite", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	view, err := shortView(ctx, env, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to build recipe view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	writeJSON(w, r, http.StatusCreated, view)
}

// HandleRemoveFavorite removes a recipe from the user's favorites.
func HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	deleted, err := env.Database.DeleteFavorite(ctx, database.DeleteFavoriteParams{
		UserID:   userID,
		RecipeID: recipeID,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to delete favorite", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if deleted == 0 {
		_ = apiError.EncodeError(w, apiError.NotFavorited, "recipe is not favorited", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAddToCart puts a recipe into the user's shopping cart.
func HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	err = env.Database.AddCartItem(ctx, database.AddCartItemParams{
		UserID:   userID,
		RecipeID: recipeID,
	})
	if database.IsUniqueViolation(err, cartConstraint) {
		_ = apiError.EncodeError(w, apiError.AlreadyInCart, "recipe already in shopping cart", requestID)
		return
	} else if database.IsForeignKeyViolation(err) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to add cart item", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	view, err := shortView(ctx, env, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to build recipe view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	writeJSON(w, r, http.StatusCreated, view)
}

// HandleRemoveFromCart takes a recipe out of the user's shopping cart.
func HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	deleted, err := env.Database.DeleteCartItem(ctx, database.DeleteCartItemParams{
		UserID:   userID,
		RecipeID: recipeID,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to delete cart item", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if deleted == 0 {
		_ = apiError.EncodeError(w, apiError.NotInCart, "recipe is not in the shopping cart", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDownloadShoppingCart aggregates the user's shopping cart into a
// plain-text shopping list served as a file attachment.
func HandleDownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	items, err := env.Database.AggregateShoppingCart(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to aggregate shopping cart", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	report := shopping.Report(items)
	w.Header().Set("Content-Type", env.Config.API.ShoppingListContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", env.Config.API.ShoppingListFileName))
	if _, err := w.Write([]byte(report)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}
