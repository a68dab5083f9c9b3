package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ipoderator/foodgram-project-react/internal/api/token"
	"github.com/ipoderator/foodgram-project-react/internal/config"
	"github.com/ipoderator/foodgram-project-react/internal/env"
)

func testEnv(t *testing.T) *env.Env {
	t.Helper()
	secret := config.AppSecretValue("test-secret-key-at-least-32-bytes-long!!")
	e := env.Null()
	e.Config.AppSecret = config.AppSecret{
		Value:   &secret,
		Version: "1",
	}
	return e
}

func newAccessToken(t *testing.T, e *env.Env, userID int64) string {
	t.Helper()
	accessToken, err := token.NewAccessToken(userID, e)
	if err != nil {
		t.Fatalf("creating access token: %v", err)
	}
	return accessToken
}

func TestRequireUser(t *testing.T) {
	e := testEnv(t)

	tests := []struct {
		name         string
		setupRequest func(*testing.T, *http.Request)
		wantStatus   int
		wantUserID   int64
	}{
		{
			name: "valid cookie",
			setupRequest: func(t *testing.T, r *http.Request) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: newAccessToken(t, e, 123),
				})
			},
			wantStatus: http.StatusOK,
			wantUserID: 123,
		},
		{
			name: "valid bearer header",
			setupRequest: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+newAccessToken(t, e, 456))
			},
			wantStatus: http.StatusOK,
			wantUserID: 456,
		},
		{
			name:         "missing token",
			setupRequest: func(t *testing.T, r *http.Request) {},
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name: "garbage token",
			setupRequest: func(t *testing.T, r *http.Request) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: "not-a-jwt",
				})
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var called bool
			handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUserID, _ = token.UserIDFromCtx(r.Context())
			}))

			r := httptest.NewRequest("GET", "/api/users/me/", nil)
			r = r.WithContext(env.WithCtx(r.Context(), e))
			tt.setupRequest(t, r)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if !called {
					t.Fatal("next handler was not called")
				}
				if gotUserID != tt.wantUserID {
					t.Errorf("user id = %d, want %d", gotUserID, tt.wantUserID)
				}
			} else if called {
				t.Error("next handler called on rejected request")
			}
		})
	}
}

func TestOptionalUser(t *testing.T) {
	e := testEnv(t)

	tests := []struct {
		name         string
		setupRequest func(*testing.T, *http.Request)
		wantAuthed   bool
		wantUserID   int64
	}{
		{
			name: "valid cookie",
			setupRequest: func(t *testing.T, r *http.Request) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: newAccessToken(t, e, 123),
				})
			},
			wantAuthed: true,
			wantUserID: 123,
		},
		{
			name:         "no token passes through anonymously",
			setupRequest: func(t *testing.T, r *http.Request) {},
			wantAuthed:   false,
		},
		{
			name: "stale token passes through anonymously",
			setupRequest: func(t *testing.T, r *http.Request) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: "not-a-jwt",
				})
			},
			wantAuthed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var gotAuthed bool
			handler := OptionalUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, gotAuthed = token.UserIDFromCtx(r.Context())
			}))

			r := httptest.NewRequest("GET", "/api/recipes/", nil)
			r = r.WithContext(env.WithCtx(r.Context(), e))
			tt.setupRequest(t, r)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if gotAuthed != tt.wantAuthed {
				t.Errorf("authenticated = %v, want %v", gotAuthed, tt.wantAuthed)
			}
			if tt.wantAuthed && gotUserID != tt.wantUserID {
				t.Errorf("user id = %d, want %d", gotUserID, tt.wantUserID)
			}
		})
	}
}
