// Package response renders the JSON envelope every hoteldesk endpoint
// speaks: {"success": true, "data": ...} on the happy path, and
// {"success": false, "error": {"code", "message", "details"}} otherwise.
// Error codes are stable machine-readable strings (BOOKING_OVERLAP,
// ILLEGAL_TRANSITION, ...); messages are for humans and may change.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails attaches structured context to the error, e.g. the
// conflicting bookings behind an overlap rejection or the allowed values of
// a rejected enum field.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
