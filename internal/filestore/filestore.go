// Package filestore stores and serves recipe images. Two backends implement
// the same interface: a local volume served by the API itself and a
// MinIO-compatible object store.
package filestore

import (
	"context"
	"fmt"
	"strings"
)

const (
	recipesDir = "recipes"
)

type FileStore interface {
	// WriteRecipeImage stores the image bytes for a recipe and returns the
	// URL path the image is addressable under.
	WriteRecipeImage(ctx context.Context, recipeID int64, suffix string, data []byte) (urlPath string, n int, err error)

	// DeleteURLPath removes the file a previous write returned the path for.
	DeleteURLPath(ctx context.Context, urlpath string) error

	// FileURL turns a stored URL path into an absolute URL.
	FileURL(urlpath string) string
}

func recipeImagePath(recipeID int64, suffix string) string {
	return fmt.Sprintf("%s/%d%s", recipesDir, recipeID, suffix)
}

func joinURL(host, urlpath string) string {
	return strings.TrimRight(host, "/") + "/" + strings.TrimLeft(urlpath, "/")
}

func trimURLPathPrefix(path string, prefix string) string {
	urlpath := strings.Trim(path, "/")
	pathPrefix := strings.Trim(prefix, "/")
	urlpath = strings.TrimPrefix(urlpath, pathPrefix)
	return strings.TrimLeft(urlpath, "/")
}
