package models

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type CustomClaims struct {
	ID   uuid.UUID `json:"user_id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
	jwt.RegisteredClaims
}

// User is the authenticated caller extracted from a bearer token.
type User struct {
	ID   uuid.UUID
	Name string
	Role string
}

func AnonymousUser() *User {
	return &User{ID: uuid.Nil}
}

func (u *User) IsAnonymous() bool {
	return u == nil || u.ID == uuid.Nil
}

type userCtxKey struct{}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns nil when no user was attached.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}
