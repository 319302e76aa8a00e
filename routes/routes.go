package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/controllers"
	"github.com/wander-log/api-go/countryapi"
	"gorm.io/gorm"
)

// SetupRoutes wires the main journal API.
func SetupRoutes(r *gin.Engine, db *gorm.DB, country *countryapi.Client) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db, country)
	engagementController := controllers.NewEngagementController(db)
	followController := controllers.NewFollowController(db, country)
	userController := controllers.NewUserController(db)

	api := r.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	SetupPostRoutes(api, db, postController, engagementController)
	SetupFollowRoutes(api, db, followController)
	SetupUserRoutes(api, db, userController)
}
