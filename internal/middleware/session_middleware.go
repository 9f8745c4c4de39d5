package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/enigma-chat/enigma/internal/services"
	"github.com/enigma-chat/enigma/internal/transport/httpdto"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"
	"github.com/enigma-chat/enigma/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "enigma_session"

// SessionMiddleware guarantees every request carries a session identity.
// A missing or unparsable cookie gets a fresh session token; a session that
// has claimed a handle is resolved to it. The presence sweep and the touch
// both run here, before any command dispatch, so presence is maintained by
// request traffic alone.
func SessionMiddleware(sessions *services.SessionService, identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := uuid.Nil
		if raw, err := c.Cookie(sessionCookie); err == nil {
			if sid, err := sessions.Parse(raw); err == nil {
				sessionID = sid
			}
		}
		if sessionID == uuid.Nil {
			sessionID = uuid.New()
			token, err := sessions.Issue(sessionID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable,
					httpdto.NewErrorResponse("service unavailable", "SERVICE_UNAVAILABLE"))
				return
			}
			c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
		}

		ctx := c.Request.Context()

		if err := identity.SweepStale(ctx); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				httpdto.NewErrorResponse("service unavailable", "SERVICE_UNAVAILABLE"))
			return
		}

		id := services.Identity{SessionID: sessionID}
		u, err := identity.Resolve(ctx, sessionID)
		if err != nil && !errors.Is(err, enigma_errors.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				httpdto.NewErrorResponse("service unavailable", "SERVICE_UNAVAILABLE"))
			return
		}
		if err == nil {
			id.Handle = u.Handle
			if err := identity.Touch(ctx, u.Handle); err != nil {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable,
					httpdto.NewErrorResponse("service unavailable", "SERVICE_UNAVAILABLE"))
				return
			}
			ctx = context.WithValue(ctx, logger.HandleKey, u.Handle)
		}

		ctx = services.WithIdentity(ctx, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
