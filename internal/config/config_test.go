package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testSecret = "this-is-a-very-long-secret-key-with-more-than-32-bytes"

func TestLoadConfigFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*testing.T)
		wantError bool
		validate  func(*testing.T, *Config)
	}{
		{
			name: "all defaults",
			setup: func(t *testing.T) {
				t.Setenv("APP_SECRET", testSecret)
				t.Setenv("DATABASE_USER", "testuser")
				t.Setenv("DATABASE_PASSWORD", "testpass")
				t.Setenv("DATABASE", "testdb")
			},
			wantError: false,
			validate: func(t *testing.T, c *Config) {
				if c.Env != EnvDev {
					t.Errorf("expected Env %q, got %q", EnvDev, c.Env)
				}
				if c.HostOrigin != "http://localhost:8080" {
					t.Errorf("expected HostOrigin %q, got %q", "http://localhost:8080", c.HostOrigin)
				}
				if c.AppSecret.Version != "1" {
					t.Errorf("expected AppSecret.Version %q, got %q", "1", c.AppSecret.Version)
				}
				if c.Database.Port != 5432 {
					t.Errorf("expected Database.Port 5432, got %d", c.Database.Port)
				}
				if c.Database.Host != "localhost" {
					t.Errorf("expected Database.Host %q, got %q", "localhost", c.Database.Host)
				}
				if c.FileStore.Backend != FileStoreLocal {
					t.Errorf("expected FileStore.Backend %q, got %q", FileStoreLocal, c.FileStore.Backend)
				}
				if c.FileStore.Volume != "/data/files" {
					t.Errorf("expected FileStore.Volume %q, got %q", "/data/files", c.FileStore.Volume)
				}
				if c.FileStore.URLPrefix != "/files" {
					t.Errorf("expected FileStore.URLPrefix %q, got %q", "/files", c.FileStore.URLPrefix)
				}
				if c.API.PageSize != 6 {
					t.Errorf("expected API.PageSize 6, got %d", c.API.PageSize)
				}
				if c.API.ShoppingListFileName != "shopping_cart.txt" {
					t.Errorf("expected API.ShoppingListFileName %q, got %q",
						"shopping_cart.txt", c.API.ShoppingListFileName)
				}
				if c.API.ShoppingListContentType != "text/plain" {
					t.Errorf("expected API.ShoppingListContentType %q, got %q",
						"text/plain", c.API.ShoppingListContentType)
				}
				if c.AppSecret.Value == nil {
					t.Error("expected AppSecret.Value to be set, got nil")
				}
			},
		},
		{
			name: "custom environment values",
			setup: func(t *testing.T) {
				t.Setenv("ENV", "PROD")
				t.Setenv("HOST_ORIGIN", "https://example.com")
				t.Setenv("APP_SECRET", testSecret)
				t.Setenv("APP_SECRET_VERSION", "2")
				t.Setenv("DATABASE_USER", "customuser")
				t.Setenv("DATABASE_PASSWORD", "custompass")
				t.Setenv("DATABASE", "customdb")
				t.Setenv("DATABASE_HOST", "db.example.com")
				t.Setenv("DATABASE_PORT", "5433")
				t.Setenv("FILE_STORE_BACKEND", "s3")
				t.Setenv("S3_ENDPOINT", "minio.example.com:9000")
				t.Setenv("S3_BUCKET", "recipes")
				t.Setenv("S3_ACCESS_KEY", "access")
				t.Setenv("S3_SECRET_KEY", "secret")
				t.Setenv("S3_USE_SSL", "true")
				t.Setenv("PAGE_SIZE", "12")
				t.Setenv("ADMIN_USERNAME", "admin")
				t.Setenv("ADMIN_FIRST_NAME", "John")
				t.Setenv("ADMIN_LAST_NAME", "Doe")
				t.Setenv("ADMIN_EMAIL", "admin@example.com")
				t.Setenv("ADMIN_PASSWORD", "SecureP@ss123!")
			},
			wantError: false,
			validate: func(t *testing.T, c *Config) {
				if c.Env != EnvProd {
					t.Errorf("expected Env %q, got %q", EnvProd, c.Env)
				}
				if c.HostOrigin != "https://example.com" {
					t.Errorf("expected HostOrigin %q, got %q", "https://example.com", c.HostOrigin)
				}
				if c.Database.Port != 5433 {
					t.Errorf("expected Database.Port 5433, got %d", c.Database.Port)
				}
				if c.FileStore.Backend != FileStoreS3 {
					t.Errorf("expected FileStore.Backend %q, got %q", FileStoreS3, c.FileStore.Backend)
				}
				if c.FileStore.S3.Endpoint != "minio.example.com:9000" {
					t.Errorf("expected S3.Endpoint %q, got %q",
						"minio.example.com:9000", c.FileStore.S3.Endpoint)
				}
				if !c.FileStore.S3.UseSSL {
					t.Error("expected S3.UseSSL true, got false")
				}
				if c.API.PageSize != 12 {
					t.Errorf("expected API.PageSize 12, got %d", c.API.PageSize)
				}
				if c.Admin.Username != "admin" {
					t.Errorf("expected Admin.Username %q, got %q", "admin", c.Admin.Username)
				}
			},
		},
		{
			name: "invalid database port",
			setup: func(t *testing.T) {
				t.Setenv("APP_SECRET", testSecret)
				t.Setenv("DATABASE_PORT", "notaport")
			},
			wantError: true,
		},
		{
			name: "short app secret",
			setup: func(t *testing.T) {
				t.Setenv("APP_SECRET", "tooshort")
			},
			wantError: true,
		},
		{
			name: "partial admin config",
			setup: func(t *testing.T) {
				t.Setenv("APP_SECRET", testSecret)
				t.Setenv("ADMIN_EMAIL", "admin@example.com")
			},
			wantError: true,
		},
		{
			name: "partial s3 config",
			setup: func(t *testing.T) {
				t.Setenv("APP_SECRET", testSecret)
				t.Setenv("S3_ENDPOINT", "minio.example.com:9000")
			},
			wantError: true,
		},
		{
			name: "unknown file store backend",
			setup: func(t *testing.T) {
				t.Setenv("APP_SECRET", testSecret)
				t.Setenv("FILE_STORE_BACKEND", "ftp")
			},
			wantError: true,
		},
		{
			name: "invalid env",
			setup: func(t *testing.T) {
				t.Setenv("APP_SECRET", testSecret)
				t.Setenv("ENV", "STAGING")
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			config, err := loadConfigFromEnv()
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfigFromEnv() error = %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, &config)
			}
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foodgram.yaml")
	contents := `
env: PROD
host_origin: https://foodgram.example.com
app_secret:
  value: this-is-a-very-long-secret-key-with-more-than-32-bytes
database:
  host: db.example.com
  port: 5433
  database: foodgram
  user: foodgram
  password: dbpass
file_store:
  backend: local
  volume: /srv/media
  url_prefix: /media
api:
  page_size: 10
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	config, err := loadConfigFromFile(path)
	if err != nil {
		t.Fatalf("loadConfigFromFile() error = %v", err)
	}
	if config.Env != EnvProd {
		t.Errorf("expected Env %q, got %q", EnvProd, config.Env)
	}
	if config.Database.Host != "db.example.com" {
		t.Errorf("expected Database.Host %q, got %q", "db.example.com", config.Database.Host)
	}
	if config.FileStore.Volume != "/srv/media" {
		t.Errorf("expected FileStore.Volume %q, got %q", "/srv/media", config.FileStore.Volume)
	}
	if config.API.PageSize != 10 {
		t.Errorf("expected API.PageSize 10, got %d", config.API.PageSize)
	}
	if config.API.ShoppingListFileName != "shopping_cart.txt" {
		t.Errorf("expected default shopping list file name, got %q", config.API.ShoppingListFileName)
	}
}

func TestLoadConfigFromFileMissing(t *testing.T) {
	if _, err := loadConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}
