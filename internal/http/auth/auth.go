// Package auth carries the bearer-token middleware. Tokens are HS256 JWTs
// whose subject is the owner's UUID.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ctxKey struct{}

// OwnerID returns the authenticated owner stored by Middleware.
func OwnerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok
}

// Sign issues a token for the given owner. Used by tests and the local
// token helper; production deployments mint tokens at the identity
// provider.
func Sign(secret string, ownerID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   ownerID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString([]byte(secret))
}

// Middleware validates the Authorization header and stores the owner's
// UUID in the request context.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID, err := ownerFromHeader(r.Header.Get("Authorization"), secret)
			if err != nil {
				http.Error(w, "invalid or missing token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, ownerID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ownerFromHeader(header, secret string) (uuid.UUID, error) {
	scheme, raw, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return uuid.Nil, fmt.Errorf("malformed authorization header")
	}

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("reading subject: %w", err)
	}

	ownerID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("subject is not an owner id: %w", err)
	}

	return ownerID, nil
}
