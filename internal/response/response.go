// Package response holds the JSON envelope helpers. Failures are always an
// object with a message string; validation failures additionally carry a
// field→problem map. There are no structured error codes.
package response

import "github.com/gin-gonic/gin"

// Success sends a successful JSON response with the given status code and body.
func Success(c *gin.Context, statusCode int, body gin.H) {
	c.JSON(statusCode, body)
}

// Message sends a successful response containing only a message string.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// Fail sends an error response with a message.
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, message string, fields map[string]string) {
	c.JSON(statusCode, gin.H{"message": message, "fields": fields})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"message": message})
}
