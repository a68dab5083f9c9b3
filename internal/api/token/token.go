// Package token contains utilities for http tokens.
package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ipoderator/foodgram-project-react/internal/config"
	"github.com/ipoderator/foodgram-project-react/internal/env"
	"github.com/ipoderator/foodgram-project-react/internal/jwt"
)

const (
	accessTokenLifetime = 60 * 60 * 24 * 14 // 14 days
)

func AccessTokenName(e *env.Env) string {
	if e.Config.Env == config.EnvProd {
		return "__Host-Http-access"
	}
	return "access"
}

// NewAccessToken mints a signed access token for the user.
func NewAccessToken(userID int64, e *env.Env) (string, error) {
	secret := e.Secret()
	if len(secret) == 0 {
		return "", errors.New("app secret not configured")
	}

	params := jwt.JWTParams{UserID: strconv.FormatInt(userID, 10)}
	token, err := jwt.GenerateJWT(params, secret, e.Config.AppSecret.Version)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return token, nil
}

func NewAccessTokenCookie(token string, e *env.Env) *http.Cookie {
	cookie := &http.Cookie{
		Name:     AccessTokenName(e),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   accessTokenLifetime,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}

	if e.Config.Env == config.EnvProd {
		cookie.Secure = true
	}

	return cookie
}

// ExpireAccessTokenCookie returns a cookie that clears the access token.
func ExpireAccessTokenCookie(e *env.Env) *http.Cookie {
	cookie := NewAccessTokenCookie("", e)
	cookie.MaxAge = -1
	return cookie
}

type userIDKeyType struct{}

var userIDKey userIDKeyType

// UserIDWithCtx stores the authenticated user's id in the context.
func UserIDWithCtx(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromCtx retrieves the authenticated user's id. The second return is
// false on anonymous requests.
func UserIDFromCtx(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
