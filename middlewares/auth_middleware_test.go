package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ajmalajjuca/Bite-check/models"
	"github.com/Ajmalajjuca/Bite-check/services"
	"github.com/Ajmalajjuca/Bite-check/utils"

	"github.com/gin-gonic/gin"
)

type fakeSessions struct {
	users map[string]*models.User // by session id
	err   error
}

func (f *fakeSessions) ActiveSession(_ context.Context, sessionID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[sessionID]
	if !ok {
		return nil, services.ErrNotFound
	}
	return u, nil
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("test-secret")
	sessions := &fakeSessions{users: map[string]*models.User{
		"sess-1": {ID: "user-1", Email: "ada@example.com", FirstName: "Ada"},
	}}

	var seen *services.AuthContext
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret, sessions), func(c *gin.Context) {
		v, _ := c.Get(AuthContextKey)
		seen, _ = v.(*services.AuthContext)
		if len(c.Keys) != 1 {
			t.Errorf("expected only the auth context in gin keys, got %v", c.Keys)
		}
		c.Status(http.StatusOK)
	})

	valid, _ := utils.GenerateJWT(secret, "user-1", "sess-1", time.Hour)
	revoked, _ := utils.GenerateJWT(secret, "user-1", "sess-gone", time.Hour)
	mismatched, _ := utils.GenerateJWT(secret, "user-2", "sess-1", time.Hour)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"revoked session", "Bearer " + revoked, http.StatusUnauthorized},
		{"subject mismatch", "Bearer " + mismatched, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
			if tt.want == http.StatusOK {
				if seen == nil || seen.UserID != "user-1" || seen.SessionID != "sess-1" || seen.DisplayName != "Ada" {
					t.Fatalf("unexpected auth context %+v", seen)
				}
			} else if seen != nil {
				t.Fatal("handler should not run")
			}
		})
	}
}

func TestAuthMiddlewareSessionLookupFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("test-secret")
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret, &fakeSessions{err: errors.New("db down")}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tok, _ := utils.GenerateJWT(secret, "user-1", "sess-1", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
