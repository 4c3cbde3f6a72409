package middleware

import (
	"context"
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// ActingUserResolver turns a session user id into an ActingUser.
type ActingUserResolver interface {
	ResolveActingUser(ctx context.Context, userID uint64) (auth.ActingUser, error)
}

// RequireAuth checks the session and resolves the acting user for the request
func RequireAuth(resolver ActingUserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := toUint64(session.Get(constants.ContextKeyUserID))
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		actor, err := resolver.ResolveActingUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrSessionUserInvalid) {
				session.Clear()
				_ = session.Save()
				apierrors.Unauthorized(c, "Session is no longer valid")
			} else {
				_ = c.Error(err)
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyActingUser, actor)
		c.Request = c.Request.WithContext(auth.ContextWithActingUser(c.Request.Context(), actor))
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

// GetActingUser retrieves the acting user resolved by RequireAuth
func GetActingUser(c *gin.Context) (auth.ActingUser, bool) {
	v, exists := c.Get(constants.ContextKeyActingUser)
	if !exists {
		return auth.ActingUser{}, false
	}
	actor, ok := v.(auth.ActingUser)
	return actor, ok
}

func toUint64(v interface{}) (uint64, bool) {
	switch v := v.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
