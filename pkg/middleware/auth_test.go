package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lucasclyra-cmd/normative/pkg/identity"
	"github.com/lucasclyra-cmd/normative/pkg/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func authHandler(t *testing.T, cfg *middleware.AuthConfig) (http.Handler, *identity.Actor) {
	t.Helper()
	var captured identity.Actor
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor, ok := identity.ActorFrom(r.Context()); ok {
			captured = actor
		}
		w.WriteHeader(http.StatusOK)
	})
	return middleware.Auth(cfg)(inner), &captured
}

func TestAuthDisabledPassesThrough(t *testing.T) {
	handler, actor := authHandler(t, &middleware.AuthConfig{Enabled: false})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if actor.Name != "" {
		t.Errorf("actor should not be attached when auth is disabled, got %+v", actor)
	}
}

func TestAuthValidToken(t *testing.T) {
	cfg := &middleware.AuthConfig{Enabled: true, Secret: testSecret}
	handler, actor := authHandler(t, cfg)

	token := signToken(t, jwt.MapClaims{
		"name":    "ana",
		"profile": "author",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if actor.Name != "ana" || actor.Profile != identity.ProfileAuthor {
		t.Errorf("actor = %+v, want ana/author", actor)
	}
}

func TestAuthRejections(t *testing.T) {
	cfg := &middleware.AuthConfig{Enabled: true, Secret: testSecret, Issuer: "normative"}

	valid := func(claims jwt.MapClaims) jwt.MapClaims {
		base := jwt.MapClaims{
			"name":    "ana",
			"profile": "author",
			"iss":     "normative",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}
		for k, v := range claims {
			base[k] = v
		}
		return base
	}

	tests := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signToken(t, valid(nil), "other-secret")},
		{"expired", "Bearer " + signToken(t, valid(jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}), testSecret)},
		{"wrong issuer", "Bearer " + signToken(t, valid(jwt.MapClaims{"iss": "someone"}), testSecret)},
		{"unknown profile", "Bearer " + signToken(t, valid(jwt.MapClaims{"profile": "root"}), testSecret)},
		{"missing name", "Bearer " + signToken(t, valid(jwt.MapClaims{"name": ""}), testSecret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := authHandler(t, cfg)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAuthConfigFinalize(t *testing.T) {
	t.Run("enabled without secret fails", func(t *testing.T) {
		cfg := middleware.AuthConfig{Enabled: true}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected error when enabled without secret")
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_AUTH_ENABLED", "true")
		t.Setenv("TEST_AUTH_SECRET", "from-env")

		cfg := middleware.AuthConfig{}
		err := cfg.Finalize(&middleware.AuthEnv{
			Enabled: "TEST_AUTH_ENABLED",
			Secret:  "TEST_AUTH_SECRET",
		})
		if err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if !cfg.Enabled || cfg.Secret != "from-env" {
			t.Errorf("cfg = %+v, want enabled with secret from env", cfg)
		}
	})
}
