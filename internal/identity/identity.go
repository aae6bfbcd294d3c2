// Package identity resolves the acting user. Every service operation is
// scoped to a user ID; the resolver is the single place that decides who
// that is.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/repository"
)

// Resolver yields the ID of the acting user. It returns
// domain.ErrUnauthorized when no user is configured or the configured
// name is unknown.
type Resolver interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// ConfigResolver resolves a configured user name against the users
// table. The lookup result is cached; user names are immutable.
type ConfigResolver struct {
	name  string
	users repository.UserRepo

	cachedID string
}

func NewConfigResolver(name string, users repository.UserRepo) *ConfigResolver {
	return &ConfigResolver{name: name, users: users}
}

func (r *ConfigResolver) CurrentUserID(ctx context.Context) (string, error) {
	if r.cachedID != "" {
		return r.cachedID, nil
	}
	if r.name == "" {
		return "", fmt.Errorf("no user configured, set STEMPEL_USER or run `stempel user register`: %w", domain.ErrUnauthorized)
	}
	u, err := r.users.GetByName(ctx, r.name)
	if errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("unknown user %q: %w", r.name, domain.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("resolve user %q: %w", r.name, err)
	}
	r.cachedID = u.ID
	return u.ID, nil
}

// Static is a resolver fixed to one user ID, for tests and internal
// calls that already know the user.
type Static string

func (s Static) CurrentUserID(context.Context) (string, error) {
	if s == "" {
		return "", domain.ErrUnauthorized
	}
	return string(s), nil
}
