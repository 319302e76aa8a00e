package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/controllers"
	"github.com/wander-log/api-go/middleware"
	"gorm.io/gorm"
)

func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB, userController *controllers.UserController) {
	users := api.Group("/users")

	protected := users.Group("")
	protected.Use(middleware.AuthMiddleware(db))
	{
		protected.GET("/suggested", userController.GetSuggestedUsers)
		protected.PUT("/profile", userController.UpdateProfile)
		protected.DELETE("/account", userController.DeleteAccount)
	}

	users.GET("/:userId", userController.GetProfile)
}
