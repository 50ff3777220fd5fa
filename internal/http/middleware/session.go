package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/auth"
)

// ctxKeyUserID is where the authenticated user ID lives in the Gin context.
// Downstream middleware (logging, rate limiting) and handlers read it.
const ctxKeyUserID = "userID"

// UserID returns the authenticated user's ID, or "" when anonymous.
func UserID(c *gin.Context) string {
	v, _ := c.Get(ctxKeyUserID)
	return asString(v)
}

// OptionalSession resolves the session cookie when present and stores the
// user ID in the context. Invalid or missing sessions pass through as
// anonymous; it never rejects a request.
func OptionalSession(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(auth.SessionCookie); err == nil && token != "" {
			if uid, err := sessions.Validate(token); err == nil {
				c.Set(ctxKeyUserID, uid)
			}
		}
		c.Next()
	}
}

// RequireSession rejects requests without a valid session cookie with a
// standardized 401 envelope. Run after OptionalSession has had a chance to
// populate the user, or standalone on protected groups.
func RequireSession(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) != "" {
			c.Next()
			return
		}
		token, err := c.Cookie(auth.SessionCookie)
		if err == nil && token != "" {
			if uid, verr := sessions.Validate(token); verr == nil {
				c.Set(ctxKeyUserID, uid)
				c.Next()
				return
			}
		}
		rid, _ := c.Get(requestIDKey)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"request_id": asString(rid),
			"code":       "unauthorized",
			"message":    "authentication required",
		})
	}
}
