// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/ipoderator/foodgram-project-react/internal/config"
	"github.com/ipoderator/foodgram-project-react/internal/database"
	"github.com/ipoderator/foodgram-project-react/internal/filestore"
	"github.com/ipoderator/foodgram-project-react/internal/log"
)

type Env struct {
	Logger   *slog.Logger
	Database database.Store
	Files    filestore.FileStore
	Config   config.Config
}

func New(lg *slog.Logger, db database.Store, files filestore.FileStore, cfg config.Config) *Env {
	if lg == nil {
		lg = log.NullLogger()
	}

	return &Env{
		Logger:   lg,
		Database: db,
		Files:    files,
		Config:   cfg,
	}
}

func Null() *Env {
	return &Env{
		Logger: log.NullLogger(),
	}
}

// Secret returns the app secret bytes, or nil when unset.
func (e *Env) Secret() []byte {
	if e.Config.AppSecret.Value == nil {
		return nil
	}
	return []byte(*e.Config.AppSecret.Value)
}

type envKeyType struct{}

var envKey envKeyType

// WithCtx stores the environment in the context.
func WithCtx(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// EnvFromCtx retrieves the environment from the context, falling back to a
// null environment so callers never receive nil.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok && e != nil {
		return e
	}
	return Null()
}
