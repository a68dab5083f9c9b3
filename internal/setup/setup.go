// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ipoderator/foodgram-project-react/internal/argon2id"
	"github.com/ipoderator/foodgram-project-react/internal/config"
	"github.com/ipoderator/foodgram-project-react/internal/database"
	"github.com/ipoderator/foodgram-project-react/internal/env"
	"github.com/ipoderator/foodgram-project-react/internal/filestore"
	"github.com/ipoderator/foodgram-project-react/internal/password"
)

// Database connects to Postgres and ensures the schema exists.
func Database(ctx context.Context, conf config.Config) (*database.Database, error) {
	dbConf := conf.Database
	if dbConf.User == "" || dbConf.Password == "" || dbConf.Database == "" {
		return nil, errors.New("database user, password and name must be configured")
	}
	dbString := fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		dbConf.User, dbConf.Password, dbConf.Host, dbConf.Port, dbConf.Database)

	pool, err := pgxpool.New(ctx, dbString)
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}

	db := database.NewDatabase(pool)
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	return db, nil
}

// FileStore builds the configured file store backend.
func FileStore(ctx context.Context, conf config.Config) (filestore.FileStore, error) {
	switch conf.FileStore.Backend {
	case config.FileStoreS3:
		return filestore.NewS3(ctx, filestore.S3Config{
			Endpoint:  conf.FileStore.S3.Endpoint,
			Bucket:    conf.FileStore.S3.Bucket,
			AccessKey: conf.FileStore.S3.AccessKey,
			SecretKey: conf.FileStore.S3.SecretKey,
			UseSSL:    conf.FileStore.S3.UseSSL,
		})
	case config.FileStoreLocal:
		volume, err := filepath.Abs(conf.FileStore.Volume)
		if err != nil {
			return nil, fmt.Errorf("resolving file store volume: %w", err)
		}
		return filestore.NewLocal(volume, conf.FileStore.URLPrefix, conf.HostOrigin), nil
	default:
		return nil, fmt.Errorf("unknown file store backend %q", conf.FileStore.Backend)
	}
}

// Admin creates the configured admin account if no admin exists yet.
// Requires env.Database.
func Admin(ctx context.Context, env *env.Env) error {
	admin := env.Config.Admin
	if admin.Email == "" || admin.Password == "" {
		env.Logger.Info("admin account not configured, skipping admin setup")
		return nil
	}

	if _, err := mail.ParseAddress(admin.Email); err != nil {
		return fmt.Errorf("parsing admin email: %w", err)
	}
	if err := password.ValidatePassword(string(admin.Password)); err != nil {
		return fmt.Errorf("validating admin password: %w", err)
	}

	count, err := env.Database.GetAdminCount(ctx)
	if err != nil {
		return fmt.Errorf("getting admin count: %w", err)
	}
	if count > 0 {
		env.Logger.Info("admin already setup, skipping setup")
		return nil
	}

	hashedPassword, err := argon2id.EncodeHash(string(admin.Password), argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	_, err = env.Database.CreateUser(ctx, database.CreateUserParams{
		Username:     admin.Username,
		Email:        admin.Email,
		FirstName:    admin.FirstName,
		LastName:     admin.LastName,
		PasswordHash: hashedPassword,
		IsAdmin:      true,
	})
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	env.Logger.Info("successfully setup admin!")

	return nil
}
