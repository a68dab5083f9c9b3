// Package api sets up and starts the API server with routing and middleware.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ipoderator/foodgram-project-react/internal/api/middleware"
	"github.com/ipoderator/foodgram-project-react/internal/api/routes/auth"
	"github.com/ipoderator/foodgram-project-react/internal/api/routes/ingredients"
	"github.com/ipoderator/foodgram-project-react/internal/api/routes/ping"
	"github.com/ipoderator/foodgram-project-react/internal/api/routes/recipes"
	"github.com/ipoderator/foodgram-project-react/internal/api/routes/tags"
	"github.com/ipoderator/foodgram-project-react/internal/api/routes/users"
	"github.com/ipoderator/foodgram-project-react/internal/env"
	"github.com/ipoderator/foodgram-project-react/internal/filestore"
)

const (
	serverPort = 8080
)

func addRoutes(router *chi.Mux) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Route("/auth/token", func(r chi.Router) {
			r.Post("/login", auth.HandleLogin)
			r.With(middleware.RequireUser).Post("/logout", auth.HandleLogout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", auth.HandleSignup)
			r.With(middleware.OptionalUser).Get("/", users.HandleListUsers)
			r.With(middleware.RequireUser).Get("/me", users.HandleMe)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)
				r.Get("/subscriptions", users.HandleListSubscriptions)
				r.Post("/{id}/subscribe", users.HandleSubscribe)
				r.Delete("/{id}/subscribe", users.HandleUnsubscribe)
			})

			r.With(middleware.OptionalUser).Get("/{id}", users.HandleGetUser)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tags.HandleListTags)
			r.Get("/{id}", tags.HandleGetTag)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", ingredients.HandleSearchIngredients)
			r.Get("/{id}", ingredients.HandleGetIngredient)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.With(middleware.OptionalUser).Get("/", recipes.HandleListRecipes)
			r.With(middleware.OptionalUser).Get("/{id}", recipes.HandleGetRecipe)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)
				r.Post("/", recipes.HandleCreateRecipe)
				r.Patch("/{id}", recipes.HandleUpdateRecipe)
				r.Delete("/{id}", recipes.HandleDeleteRecipe)

				r.Post("/{id}/favorite", recipes.HandleAddFavorite)
				r.Delete("/{id}/favorite", recipes.HandleRemoveFavorite)
				r.Post("/{id}/shopping_cart", recipes.HandleAddToCart)
				r.Delete("/{id}/shopping_cart", recipes.HandleRemoveFromCart)
				r.Get("/download_shopping_cart", recipes.HandleDownloadShoppingCart)
			})
		})
	})
}

// addFileServer serves stored files directly when the local backend is in
// use. Behind the S3 backend the object store serves its own URLs.
func addFileServer(router *chi.Mux, files filestore.FileStore) {
	local, ok := files.(*filestore.Local)
	if !ok {
		return
	}
	prefix := local.URLPrefix()
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(local.BaseDirectory())))
	router.Get(prefix+"/*", func(w http.ResponseWriter, r *http.Request) {
		fs.ServeHTTP(w, r)
	})
}

func Start(env *env.Env) error {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.AddCors)

	addRoutes(router)
	addFileServer(router, env.Files)

	env.Logger.Info(fmt.Sprintf("Listening at 0.0.0.0:%d", serverPort))
	return http.ListenAndServe(fmt.Sprintf(":%d", serverPort), router)
}
