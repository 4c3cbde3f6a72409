package auth

import (
	"context"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// RoleSet is the set of roles held by an acting user.
type RoleSet map[models.Role]struct{}

// NewRoleSet builds a RoleSet from a list of roles, ignoring duplicates.
func NewRoleSet(roles ...models.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether the role is present.
func (s RoleSet) Has(role models.Role) bool {
	_, ok := s[role]
	return ok
}

// ActingUser is the authenticated identity performing an operation.
// It is resolved once at the boundary and passed explicitly into every service call.
type ActingUser struct {
	ID    uint64
	Roles RoleSet
}

// NewActingUser constructs an ActingUser.
func NewActingUser(id uint64, roles ...models.Role) ActingUser {
	return ActingUser{ID: id, Roles: NewRoleSet(roles...)}
}

// FromUser resolves an ActingUser from a stored user record.
func FromUser(u *models.User) ActingUser {
	return NewActingUser(u.ID, u.Roles...)
}

// IsAdmin reports whether the acting user holds the ADMIN role.
func (a ActingUser) IsAdmin() bool {
	return a.Roles.Has(models.RoleAdmin)
}

type actingUserContextKey struct{}

// ContextWithActingUser attaches the acting user to the context.
func ContextWithActingUser(ctx context.Context, actor ActingUser) context.Context {
	return context.WithValue(ctx, actingUserContextKey{}, actor)
}

// ActingUserFromContext extracts the acting user from the context.
func ActingUserFromContext(ctx context.Context) (ActingUser, bool) {
	if ctx == nil {
		return ActingUser{}, false
	}
	v, ok := ctx.Value(actingUserContextKey{}).(ActingUser)
	return v, ok
}
