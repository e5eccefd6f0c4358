package middleware

import (
	"context"
	"feedback-board/backend/app/models"
)

type ctxKey int

const userKey ctxKey = 1

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// GetUser returns the logged in user, or nil for an anonymous request.
func GetUser(ctx context.Context) *models.User {
	if v := ctx.Value(userKey); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
