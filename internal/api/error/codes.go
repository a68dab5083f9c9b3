package error

import "net/http"

type ErrorCode string

const (
	UnknownError        ErrorCode = "unknown_error"
	InternalServerError ErrorCode = "internal_server_error"
	BadRequest          ErrorCode = "bad_request"
	ValidationFailed    ErrorCode = "validation_failed"
	InvalidCredentials  ErrorCode = "invalid_credentials"
	MissingCredentials  ErrorCode = "missing_credentials"
	InvalidAccessToken  ErrorCode = "invalid_access_token"
	ExpiredAccessToken  ErrorCode = "expired_access_token"
	NotRecipeAuthor     ErrorCode = "not_recipe_author"
	WeakPassword        ErrorCode = "weak_password"
	EmailConflict       ErrorCode = "email_conflict"
	UsernameConflict    ErrorCode = "username_conflict"
	RecipeNotFound      ErrorCode = "recipe_not_found"
	IngredientNotFound  ErrorCode = "ingredient_not_found"
	TagNotFound         ErrorCode = "tag_not_found"
	UserNotFound        ErrorCode = "user_not_found"
	AlreadyFavorited    ErrorCode = "already_favorited"
	NotFavorited        ErrorCode = "not_favorited"
	AlreadyInCart       ErrorCode = "already_in_shopping_cart"
	NotInCart           ErrorCode = "not_in_shopping_cart"
	AlreadySubscribed   ErrorCode = "already_subscribed"
	NotSubscribed       ErrorCode = "not_subscribed"
	SelfSubscription    ErrorCode = "self_subscription"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:        0, // No error code - unknown
	InternalServerError: http.StatusInternalServerError,
	BadRequest:          http.StatusBadRequest,
	ValidationFailed:    http.StatusBadRequest,
	InvalidCredentials:  http.StatusUnauthorized,
	MissingCredentials:  http.StatusUnauthorized,
	InvalidAccessToken:  http.StatusUnauthorized,
	ExpiredAccessToken:  http.StatusUnauthorized,
	NotRecipeAuthor:     http.StatusForbidden,
	WeakPassword:        http.StatusUnprocessableEntity,
	EmailConflict:       http.StatusConflict,
	UsernameConflict:    http.StatusConflict,
	RecipeNotFound:      http.StatusNotFound,
	IngredientNotFound:  http.StatusNotFound,
	TagNotFound:         http.StatusNotFound,
	UserNotFound:        http.StatusNotFound,
	AlreadyFavorited:    http.StatusBadRequest,
	NotFavorited:        http.StatusNotFound,
	AlreadyInCart:       http.StatusBadRequest,
	NotInCart:           http.StatusNotFound,
	AlreadySubscribed:   http.StatusBadRequest,
	NotSubscribed:       http.StatusNotFound,
	SelfSubscription:    http.StatusBadRequest,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
