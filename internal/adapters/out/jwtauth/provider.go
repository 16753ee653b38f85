// Package jwtauth resolves the calling actor from a signed JWT issued by the
// marketplace identity service.
package jwtauth

import (
	"context"
	"errors"
	"fmt"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential is returned when the token fails signature, expiry or
// claims validation.
var ErrInvalidCredential = errors.New("credential is invalid")

// actorClaims is the claims payload the identity service signs into tokens.
type actorClaims struct {
	ActorID string `json:"actor_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Provider implements ports.IdentityProvider over HMAC-signed JWTs.
type Provider struct {
	secret []byte
}

// NewProvider creates a Provider verifying tokens with the given secret.
func NewProvider(secret string) *Provider {
	return &Provider{secret: []byte(secret)}
}

// ResolveActor parses and verifies the token and maps its claims to an actor.
// Returns ErrInvalidCredential when the token or its claims cannot be trusted.
func (p *Provider) ResolveActor(ctx context.Context, credential string) (ports.Actor, error) {
	token, err := jwt.ParseWithClaims(credential, &actorClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return ports.Actor{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*actorClaims)
	if !ok || !token.Valid {
		return ports.Actor{}, ErrInvalidCredential
	}

	actorID, err := kernel.UUIDFromString(claims.ActorID)
	if err != nil {
		return ports.Actor{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	role, err := order.ActorFromString(claims.Role)
	if err != nil {
		return ports.Actor{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	return ports.Actor{ID: actorID, Role: role}, nil
}
