package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/controllers"
	"github.com/wander-log/api-go/middleware"
	"gorm.io/gorm"
)

func SetupFollowRoutes(api *gin.RouterGroup, db *gorm.DB, followController *controllers.FollowController) {
	follow := api.Group("/follow")

	// Public reads
	{
		follow.GET("/followers/:userId", followController.GetFollowers)
		follow.GET("/following/:userId", followController.GetFollowing)
		follow.GET("/feed/:userId", followController.GetFollowedUsersPosts)
	}

	protected := follow.Group("")
	protected.Use(middleware.AuthMiddleware(db))
	{
		protected.POST("/follow", followController.FollowUser)
		protected.POST("/unfollow/:followingId", followController.UnfollowUser)
	}
}
