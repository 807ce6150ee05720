// Package auth validates academy bearer tokens and answers the single
// ownership question every protected route asks: does academy P own R.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cricket-academy/internal/config"
	"cricket-academy/internal/domain"

	"github.com/form3tech-oss/jwt-go"
)

type Principal struct {
	AcademyID int64
}

type Authenticator struct {
	secret []byte
}

func NewAuthenticator(cfg *config.Config) *Authenticator {
	return &Authenticator{secret: []byte(cfg.JWTSecret)}
}

// ParseBearer accepts a raw Authorization header value.
func (a *Authenticator) ParseBearer(header string) (Principal, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return Principal{}, fmt.Errorf("missing bearer token: %w", domain.ErrUnauthorized)
	}
	return a.Parse(strings.TrimSpace(token))
}

func (a *Authenticator) Parse(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}

	// Older academy tokens carry the tenant as "id".
	raw, found := claims["academy_id"]
	if !found {
		raw, found = claims["id"]
	}
	if !found {
		return Principal{}, fmt.Errorf("token has no academy: %w", domain.ErrUnauthorized)
	}

	academyID, err := claimInt(raw)
	if err != nil || academyID <= 0 {
		return Principal{}, fmt.Errorf("token has invalid academy: %w", domain.ErrUnauthorized)
	}
	return Principal{AcademyID: academyID}, nil
}

func claimInt(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("non-integer claim %v", n)
		}
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported claim type %T", v)
	}
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
