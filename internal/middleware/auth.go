package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"clipaja/internal/services"
	"clipaja/pkg/common"
)

// SessionRequired resolves the request's session cookie through the auth
// service and stores the user on the context. Requests without a valid
// session are rejected with 401.
func SessionRequired(verifier services.SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie := c.GetHeader("Cookie")
		if cookie == "" {
			c.AbortWithStatusJSON(401, common.NewErrorResponse(401, "Authentication required"))
			return
		}

		user, err := verifier.VerifySession(cookie)
		if err != nil {
			log.Printf("session verification failed: %v", err)
			c.AbortWithStatusJSON(502, common.NewErrorResponse(502, "Unable to verify session"))
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(401, common.NewErrorResponse(401, "Authentication required"))
			return
		}

		c.Set("userId", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

// SessionOptional resolves the session when a cookie is present but lets
// anonymous requests through. Public listings use it so owner-scoped filters
// still work for signed-in callers.
func SessionOptional(verifier services.SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie := c.GetHeader("Cookie")
		if cookie == "" {
			c.Next()
			return
		}

		user, err := verifier.VerifySession(cookie)
		if err != nil {
			log.Printf("session verification failed: %v", err)
			c.Next()
			return
		}
		if user != nil {
			c.Set("userId", user.ID)
			c.Set("user", user)
		}
		c.Next()
	}
}

// UserID reads the authenticated user id set by SessionRequired.
func UserID(c *gin.Context) string {
	return c.GetString("userId")
}
