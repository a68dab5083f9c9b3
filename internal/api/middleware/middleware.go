// Package middleware contains middleware functions for the API
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/httplog/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	apiError "github.com/ipoderator/foodgram-project-react/internal/api/error"
	"github.com/ipoderator/foodgram-project-react/internal/api/requestid"
	"github.com/ipoderator/foodgram-project-react/internal/api/token"
	"github.com/ipoderator/foodgram-project-react/internal/config"
	"github.com/ipoderator/foodgram-project-react/internal/env"
	fgJwt "github.com/ipoderator/foodgram-project-react/internal/jwt"
	"github.com/ipoderator/foodgram-project-react/internal/log"
)

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			if id := requestid.ExtractRequestID(r.Context()); id != 0 {
				return []slog.Attr{slog.Uint64("log_id", id)}
			}
			return []slog.Attr{slog.String("log_id", "N/A")}
		},
	})
}

// AddRequestID adds a request ID to the request context.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ulid.Now()
		r = r.WithContext(log.AppendCtx(r.Context(), slog.Uint64("log_id", requestID)))
		r = r.WithContext(requestid.InjectRequestID(r.Context(), requestID))
		next.ServeHTTP(w, r)
	})
}

// AddCors adds the necessary CORS headers to the response.
func AddCors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())
		origin := r.Header.Get("Origin")
		hostOrigin := e.Config.HostOrigin

		// In dev mode, allow whatever origin is calling.
		allowedOrigin := hostOrigin
		if e.Config.Env != config.EnvProd && origin != "" {
			allowedOrigin = origin
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rawAccessToken extracts the access token from the request cookie or, for
// non-browser clients, from a bearer Authorization header.
func rawAccessToken(r *http.Request, e *env.Env) (string, error) {
	if cookie, err := r.Cookie(token.AccessTokenName(e)); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	header := r.Header.Get("Authorization")
	if raw, ok := strings.CutPrefix(header, "Bearer "); ok && raw != "" {
		return raw, nil
	}
	return "", http.ErrNoCookie
}

func authenticate(r *http.Request, e *env.Env) (int64, error) {
	raw, err := rawAccessToken(r, e)
	if err != nil {
		return 0, err
	}

	secret := e.Secret()
	if len(secret) == 0 {
		return 0, errors.New("app secret not configured")
	}

	accessJwt, err := fgJwt.ValidateJWT(raw, e.Config.AppSecret.Version, secret)
	if err != nil {
		return 0, err
	}

	sub, err := accessJwt.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("extracting subject: %w", err)
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing user id: %w", err)
	}
	return userID, nil
}

// RequireUser validates the access token and rejects unauthenticated
// requests. The authenticated user id is stored in the request context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())
		requestID := fmt.Sprintf("%d", requestid.ExtractRequestID(r.Context()))

		userID, err := authenticate(r, e)
		if errors.Is(err, http.ErrNoCookie) {
			_ = apiError.EncodeError(w, apiError.MissingCredentials, "authentication required", requestID)
			return
		} else if errors.Is(err, jwt.ErrTokenExpired) {
			e.Logger.ErrorContext(r.Context(), "access token expired", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.ExpiredAccessToken, "access token expired", requestID)
			return
		} else if err != nil {
			e.Logger.ErrorContext(r.Context(), "invalid access token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
			return
		}

		r = r.WithContext(log.AppendCtx(r.Context(), slog.Int64("user-id", userID)))
		r = r.WithContext(token.UserIDWithCtx(r.Context(), userID))
		next.ServeHTTP(w, r)
	})
}

// OptionalUser validates the access token when one is present and otherwise
// lets the request through anonymously. An invalid token is treated as
// anonymous rather than rejected, so public listings keep working for
// clients with stale cookies.
func OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())

		userID, err := authenticate(r, e)
		if err == nil {
			r = r.WithContext(log.AppendCtx(r.Context(), slog.Int64("user-id", userID)))
			r = r.WithContext(token.UserIDWithCtx(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}
