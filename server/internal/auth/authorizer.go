package auth

import (
	"context"
)

// Actor is the authenticated caller resolved from a bearer token.
type Actor struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Authorizer resolves a bearer token to an Actor.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*Actor, error)
}

type actorKey struct{}

// WithActor stores a in ctx.
func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the Actor stored by the middleware, if any.
func ActorFrom(ctx context.Context) (*Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(*Actor)
	return a, ok && a != nil
}
