package api

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-cms-backend/models"
)

type keyType string

const userKey keyType = "user"

var errNoUserInContext = errors.New("no authenticated user in context")

// ctxWithUser adds the authenticated user to the context. The user is always
// carried explicitly through the request context, never through package state.
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the authenticated user from the context.
func ctxGetUser(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok || user == nil {
		return nil, errNoUserInContext
	}
	return user, nil
}

// ctxMaybeUser is ctxGetUser for endpoints where authentication is optional;
// it returns nil for anonymous callers.
func ctxMaybeUser(ctx context.Context) *models.User {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
