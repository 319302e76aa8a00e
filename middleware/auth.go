package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/wander-log/api-go/models"
	"github.com/wander-log/api-go/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "Unauthorized",
		"message": message,
	})
	c.Abort()
}

// AuthMiddleware verifies a bearer token and resolves it to a live user row.
// Tokens for deleted or deactivated accounts are rejected even when the
// signature is still valid.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header is required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 {
			unauthorized(c, "Invalid token format")
			return
		}

		claims := jwt.MapClaims{}
		parsedToken, err := jwt.ParseWithClaims(bearerToken[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !parsedToken.Valid {
			unauthorized(c, "Invalid or expired token")
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			unauthorized(c, "Invalid token claims")
			return
		}

		var user models.User
		if err := db.First(&user, uint(userID)).Error; err != nil {
			unauthorized(c, "User no longer exists")
			return
		}
		if !user.IsActive {
			unauthorized(c, "Account is inactive")
			return
		}

		c.Set(string(utils.UserContextKey), &utils.UserClaims{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		})

		c.Next()
	}
}
