package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lucasclyra-cmd/normative/pkg/identity"
)

// AuthConfig holds bearer token validation settings.
type AuthConfig struct {
	Enabled bool   `toml:"enabled"`
	Secret  string `toml:"secret"`
	Issuer  string `toml:"issuer"`
}

// AuthEnv maps auth config fields to environment variable names.
type AuthEnv struct {
	Enabled string
	Secret  string
	Issuer  string
}

// Finalize applies environment variable overrides and validation.
func (c *AuthConfig) Finalize(env *AuthEnv) error {
	if env != nil {
		if env.Enabled != "" {
			if v := os.Getenv(env.Enabled); v != "" {
				c.Enabled = v == "true" || v == "1"
			}
		}
		if env.Secret != "" {
			if v := os.Getenv(env.Secret); v != "" {
				c.Secret = v
			}
		}
		if env.Issuer != "" {
			if v := os.Getenv(env.Issuer); v != "" {
				c.Issuer = v
			}
		}
	}
	if c.Enabled && c.Secret == "" {
		return fmt.Errorf("auth secret required when auth is enabled")
	}
	return nil
}

// Merge overwrites fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	c.Enabled = overlay.Enabled
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
}

type actorClaims struct {
	Name    string `json:"name"`
	Profile string `json:"profile"`
	jwt.RegisteredClaims
}

// Auth returns middleware that validates a Bearer JWT and places the resulting
// identity.Actor on the request context. When disabled, requests pass through
// with no actor attached and handlers fall back to their anonymous defaults.
func Auth(cfg *AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondUnauthorized(w, "missing bearer token")
				return
			}

			actor, err := validateToken(cfg, token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithActor(r.Context(), actor)))
		})
	}
}

func validateToken(cfg *AuthConfig, token string) (identity.Actor, error) {
	var claims actorClaims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return identity.Actor{}, err
	}

	profile, err := identity.ParseProfile(claims.Profile)
	if err != nil {
		return identity.Actor{}, err
	}
	if claims.Name == "" {
		return identity.Actor{}, fmt.Errorf("token missing name claim")
	}

	return identity.Actor{Name: claims.Name, Profile: profile}, nil
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
