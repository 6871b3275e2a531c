package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewith-lab/newsdesk/storage"
	"github.com/codewith-lab/newsdesk/utils"
)

// AuthMiddleware guards administrative writes: the request must carry a valid
// JWT for an existing user. The username and user id are placed on the
// context for downstream handlers.
func AuthMiddleware(store storage.Storage, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		username, err := utils.ParseJWT(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		user, err := store.GetUserByUsername(c.Request.Context(), username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set("username", username)
		c.Set("user_id", user.ID)
		c.Next()
	}
}
