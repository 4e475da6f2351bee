package handlers

import "github.com/gin-gonic/gin"

// respondData sends a success envelope wrapping the payload.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondMessage sends a success envelope carrying only a message.
func respondMessage(c *gin.Context, status int, message string) {
	respondData(c, status, gin.H{"message": message})
}
