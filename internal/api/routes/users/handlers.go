// Package users contains handlers for the user and subscription endpoints.
package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	apiError "github.com/ipoderator/foodgram-project-react/internal/api/error"
	"github.com/ipoderator/foodgram-project-react/internal/api/requestid"
	"github.com/ipoderator/foodgram-project-react/internal/api/token"
	"github.com/ipoderator/foodgram-project-react/internal/database"
	"github.com/ipoderator/foodgram-project-react/internal/env"
	"github.com/ipoderator/foodgram-project-react/internal/pagination"
	"github.com/ipoderator/foodgram-project-react/internal/projection"
)

const subscriptionConstraint = "subscriptions_subscriber_id_author_id_key"

func viewerID(r *http.Request) int64 {
	if id, ok := token.UserIDFromCtx(r.Context()); ok {
		return id
	}
	return projection.AnonymousViewer
}

func recipesLimit(r *http.Request) int32 {
	raw := r.URL.Query().Get("recipes_limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || limit < 0 {
		return 0
	}
	return int32(limit)
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

// HandleListUsers returns a paginated listing of all users.
func HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	params := pagination.Parse(r.URL.Query(), env.Config.API.PageSize)
	users, err := env.Database.ListUsers(ctx, database.ListUsersParams{
		Limit:  params.Limit,
		Offset: params.Offset(),
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	count, err := env.Database.CountUsers(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to count users", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	builder := projection.NewBuilder(env.Database, env.Files)
	viewer := viewerID(r)
	views := make([]projection.User, 0, len(users))
	for _, u := range users {
		view, err := builder.User(ctx, u, viewer)
		if err != nil {
			env.Logger.ErrorContext(ctx, "failed to build user view", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		views = append(views, view)
	}

	writeJSON(w, r, http.StatusOK, pagination.NewPage(r, params, count, views))
}

// HandleGetUser returns a single user profile.
func HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid user id", requestID)
		return
	}

	user, err := env.Database.GetUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	builder := projection.NewBuilder(env.Database, env.Files)
	view, err := builder.User(ctx, user, viewerID(r))
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to build user view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, http.StatusOK, view)
}

// HandleMe returns the authenticated user's own profile.
func HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	user, err := env.Database.GetUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	builder := projection.NewBuilder(env.Database, env.Files)
	view, err := builder.User(ctx, user, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to build user view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, http.StatusOK, view)
}

// HandleSubscribe subscribes the authenticated user to an author. The
// response is the author's subscription view with embedded recipes.
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	subscriberID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	authorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid user id", requestID)
		return
	}
	if authorID == subscriberID {
		_ = apiError.EncodeError(w, apiError.SelfSubscription, "cannot subscribe to yourself", requestID)
		return
	}

	author, err := env.Database.GetUser(ctx, authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to get author", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "creating subscription", slog.Int64("author-id", authorID))
	err = env.Database.CreateSubscription(ctx, database.CreateSubscriptionParams{
		SubscriberID: subscriberID,
		AuthorID:     authorID,
	})
	if database.IsUniqueViolation(err, subscriptionConstraint) {
		_ = apiError.EncodeError(w, apiError.AlreadySubscribed, "already subscribed", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	builder := projection.NewBuilder(env.Database, env.Files)
	view, err := builder.Author(ctx, author, subscriberID, recipesLimit(r))
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to build author view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, http.StatusCreated, view)
}

// HandleUnsubscribe removes an existing subscription.
func HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	subscriberID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	authorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid user id", requestID)
		return
	}

	deleted, err := env.Database.DeleteSubscription(ctx, database.DeleteSubscriptionParams{
		SubscriberID: subscriberID,
		AuthorID:     authorID,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to delete subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if deleted == 0 {
		_ = apiError.EncodeError(w, apiError.NotSubscribed, "not subscribed", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListSubscriptions returns the authors the authenticated user follows,
// paginated, each with embedded recipes truncated to recipes_limit.
func HandleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	subscriberID, ok := token.UserIDFromCtx(ctx)
	if !ok {
		env.Logger.ErrorContext(ctx, "missing user id in context")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	params := pagination.Parse(r.URL.Query(), env.Config.API.PageSize)
	authors, err := env.Database.ListSubscribedAuthors(ctx, database.ListSubscribedAuthorsParams{
		SubscriberID: subscriberID,
		Limit:        params.Limit,
		Offset:       params.Offset(),
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list subscriptions", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	count, err := env.Database.CountSubscribedAuthors(ctx, subscriberID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to count subscriptions", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	builder := projection.NewBuilder(env.Database, env.Files)
	limit := recipesLimit(r)
	views := make([]projection.Author, 0, len(authors))
	for _, author := range authors {
		view, err := builder.Author(ctx, author, subscriberID, limit)
		if err != nil {
			env.Logger.ErrorContext(ctx, "failed to build author view", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		views = append(views, view)
	}

	writeJSON(w, r, http.StatusOK, pagination.NewPage(r, params, count, views))
}
