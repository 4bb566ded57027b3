package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, message string, fields gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(code, body)
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
