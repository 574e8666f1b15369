package api

import "github.com/gin-gonic/gin"

// All failures share one response shape: {"error": string}. Validation and
// not-found messages name the field or id; 500 messages stay generic so
// internal details never reach the caller.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
