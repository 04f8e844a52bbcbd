package handlers

import "github.com/gin-gonic/gin"

// FarmIDKey is the gin context key under which the authentication middleware
// stores the caller's farm identity.
const FarmIDKey = "farm_id"

func farmID(c *gin.Context) string {
	return c.GetString(FarmIDKey)
}
