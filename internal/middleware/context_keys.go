package middleware

import "github.com/gin-gonic/gin"

const (
	usernameKey = contextKey("username")
	tokenIDKey  = contextKey("tokenID")
)

// GetUsernameFromContext retrieves the authenticated username from the Gin context.
// It returns the username and a boolean indicating if it was found.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, usernameKey)
}

// GetTokenIDFromContext retrieves the id of the bearer token used for the request.
func GetTokenIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, tokenIDKey)
}

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	if v, exists := c.Get(string(key)); exists {
		s, ok := v.(string)
		return s, ok && s != ""
	}
	// check in the request context as well
	if s, ok := c.Request.Context().Value(key).(string); ok && s != "" {
		return s, true
	}
	return "", false
}
