package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionHeader carries the client-held session ID. The ID is a storage
// key for the session's basket, not a credential, so the server does not
// track issued IDs.
const sessionHeader = "X-Session-Id"

const sessionCtxKey = "sessionID"

// sessionMiddleware requires a session ID on basket and checkout routes.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + sessionHeader + " header"})
			return
		}
		c.Set(sessionCtxKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}

func (h *handlers) createSession(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"sessionId": uuid.NewString()})
}
