// Package auth issues and verifies the JWTs the HTTP API authenticates
// with. Tokens carry the user id and a role claim ("seller" or "admin");
// route middleware enforces the role.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/vhoanghac/sellerdash/internal/gerr"
)

const (
	RoleSeller = "seller"
	RoleAdmin  = "admin"

	claimUserID = "uid"
	claimRole   = "role"
)

type contextKey string

const (
	ctxUserID contextKey = "auth.userID"
	ctxRole   contextKey = "auth.role"
)

type Config struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type Auth struct {
	jwtAuth *jwtauth.JWTAuth
	ttl     time.Duration
}

func New(cfg Config) (*Auth, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Auth{
		jwtAuth: jwtauth.New("HS256", []byte(cfg.JWTSecret), nil),
		ttl:     ttl,
	}, nil
}

// NewToken mints a token for userID with the given role claim.
func (a *Auth) NewToken(userID int, role string) (string, error) {
	claims := map[string]interface{}{
		claimUserID: userID,
		claimRole:   role,
		"exp":       time.Now().Add(a.ttl).Unix(),
	}
	_, ts, err := a.jwtAuth.Encode(claims)
	return ts, err
}

// Verifier extracts and parses the token from the request.
func (a *Auth) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(a.jwtAuth)
}

// Authenticator rejects requests whose token is missing, invalid or lacks
// the required role, and puts the user id and role into the context.
func (a *Auth) Authenticator(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			uid, ok := claims[claimUserID].(float64)
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			gotRole, _ := claims[claimRole].(string)
			if gotRole != role {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, int(uid))
			ctx = context.WithValue(ctx, ctxRole, gotRole)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id;
// gerr.ErrUnauthorized when the request never went through Authenticator.
func UserIDFromContext(ctx context.Context) (int, error) {
	uid, ok := ctx.Value(ctxUserID).(int)
	if !ok {
		return 0, gerr.ErrUnauthorized
	}
	return uid, nil
}

// RoleFromContext returns the authenticated role, empty when absent.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(ctxRole).(string)
	return role
}
