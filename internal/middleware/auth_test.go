package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hwojcik/exagen/config"
)

type fakeTokenRepo struct {
	revoked map[string]bool
}

func (r *fakeTokenRepo) Revoke(jti string) error {
	if r.revoked == nil {
		r.revoked = map[string]bool{}
	}
	r.revoked[jti] = true
	return nil
}

func (r *fakeTokenRepo) IsRevoked(jti string) (bool, error) {
	return r.revoked[jti], nil
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func newTestRouter(secret string, repo *fakeTokenRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = secret

	router := gin.New()
	router.Use(NewAuthMiddleware(cfg, repo).RequireAuth())
	router.GET("/whoami", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"username": Username(ctx), "user_id": UserID(ctx)})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	const secret = "test-secret"
	claims := jwt.MapClaims{
		"sub": "alice",
		"uid": float64(3),
		"jti": "token-1",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name       string
		header     string
		revoked    []string
		wantStatus int
	}{
		{
			name:       "valid token",
			header:     "Bearer " + signToken(t, secret, claims),
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong signing key",
			header:     "Bearer " + signToken(t, "other-secret", claims),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, secret, jwt.MapClaims{
				"sub": "alice",
				"uid": float64(3),
				"jti": "token-2",
				"iat": time.Now().Add(-2 * time.Hour).Unix(),
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing jti claim",
			header: "Bearer " + signToken(t, secret, jwt.MapClaims{
				"sub": "alice",
				"uid": float64(3),
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "revoked token",
			header:     "Bearer " + signToken(t, secret, claims),
			revoked:    []string{"token-1"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTokenRepo{}
			for _, jti := range tt.revoked {
				_ = repo.Revoke(jti)
			}
			router := newTestRouter(secret, repo)

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRequireAuthInjectsIdentity(t *testing.T) {
	const secret = "test-secret"
	token := signToken(t, secret, jwt.MapClaims{
		"sub": "bob",
		"uid": float64(9),
		"jti": "token-9",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	router := newTestRouter(secret, &fakeTokenRepo{})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{`"username":"bob"`, `"user_id":9`} {
		if !strings.Contains(body, want) {
			t.Errorf("response %s missing %s", body, want)
		}
	}
}
