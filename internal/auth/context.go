package auth

import (
	"context"

	"medassist/internal/models"
)

type ctxKey struct{}

// Claims is the decoded identity carried inside a bearer token.
type Claims struct {
	Subject string      // user email
	UserID  string
	Role    models.Role
}

func (c Claims) HasRole(roles ...models.Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(ctxKey{}).(Claims); ok {
		return v
	}
	return Claims{}
}

// UserID returns the authenticated user's id, or "" outside a request.
func UserID(ctx context.Context) string {
	return FromContext(ctx).UserID
}
