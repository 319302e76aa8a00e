package middleware

import (
	"net/http"
	"os"
	"time"

	"github.com/wander-log/api-go/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// APIKeyMiddleware gates the country proxy endpoints behind the x-api-key
// header, matched against the active keys table. Usage stamps last_used.
func APIKeyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "API key is required",
			})
			c.Abort()
			return
		}

		var key models.APIKey
		if err := db.Where("key = ? AND is_active = ?", apiKey, true).First(&key).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Invalid API key",
			})
			c.Abort()
			return
		}

		now := time.Now()
		db.Model(&key).Update("last_used", &now)

		c.Next()
	}
}

// AdminTokenMiddleware protects the key-management endpoints with the
// shared admin token from the environment.
func AdminTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminToken := os.Getenv("ADMIN_TOKEN")
		if adminToken == "" || c.GetHeader("X-Admin-Token") != adminToken {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Forbidden",
				"message": "Admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
