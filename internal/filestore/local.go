package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const directoryPerms = 0o755

// Local stores files on a mounted volume. The API serves the volume under
// urlPrefix, so the URL paths it returns are relative to the server host.
type Local struct {
	baseDir   string
	urlPrefix string
	host      string
}

var _ FileStore = (*Local)(nil)

func NewLocal(baseDir, urlPrefix, host string) *Local {
	return &Local{
		baseDir:   baseDir,
		urlPrefix: strings.Trim(urlPrefix, "/"),
		host:      strings.TrimRight(host, "/"),
	}
}

// BaseDirectory returns the volume root, for mounting the static file server.
func (l *Local) BaseDirectory() string {
	return l.baseDir
}

// URLPrefix returns the path prefix the volume is served under.
func (l *Local) URLPrefix() string {
	return "/" + l.urlPrefix
}

func (l *Local) WriteRecipeImage(_ context.Context, recipeID int64, suffix string, data []byte) (string, int, error) {
	path := recipeImagePath(recipeID, suffix)
	fullpath := filepath.Join(l.baseDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullpath), directoryPerms); err != nil {
		return "", 0, fmt.Errorf("creating parent directories: %w", err)
	}

	file, err := os.Create(fullpath)
	if err != nil {
		return "", 0, fmt.Errorf("creating file: %w", err)
	}
	defer func() { _ = file.Close() }()

	n, err := file.Write(data)
	if err != nil {
		return "", 0, fmt.Errorf("writing file: %w", err)
	}

	return l.urlPrefix + "/" + path, n, nil
}

func (l *Local) DeleteURLPath(_ context.Context, urlpath string) error {
	rel := trimURLPathPrefix(urlpath, l.urlPrefix)
	if rel == "" {
		return errors.New("empty file path")
	}
	fullpath := filepath.Join(l.baseDir, filepath.FromSlash(rel))
	if err := os.Remove(fullpath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

func (l *Local) FileURL(urlpath string) string {
	return joinURL(l.host, urlpath)
}
