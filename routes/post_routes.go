package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/controllers"
	"github.com/wander-log/api-go/middleware"
	"gorm.io/gorm"
)

func SetupPostRoutes(api *gin.RouterGroup, db *gorm.DB, postController *controllers.PostController, engagementController *controllers.EngagementController) {
	posts := api.Group("/posts")

	// Public reads
	{
		posts.GET("", postController.GetFeed)
		posts.GET("/recent", postController.GetRecentPosts)
		posts.GET("/popular", postController.GetPopularPosts)
		posts.GET("/search/country", postController.SearchByCountry)
		posts.GET("/search/username", postController.SearchByUsername)
		posts.GET("/:id", postController.GetPost)
		posts.GET("/:id/like/count", engagementController.GetLikeCount)
		posts.GET("/:id/dislike/count", engagementController.GetDislikeCount)
		posts.GET("/:id/comments", engagementController.GetComments)
	}

	protected := posts.Group("")
	protected.Use(middleware.AuthMiddleware(db))
	{
		protected.GET("/my", postController.GetMyPosts)
		protected.POST("", postController.CreatePost)
		protected.PUT("/:id", postController.UpdatePost)
		protected.DELETE("/:id", postController.DeletePost)

		protected.POST("/:id/like", engagementController.ToggleLike)
		protected.POST("/:id/dislike", engagementController.ToggleDislike)
		protected.GET("/:id/like", engagementController.GetLikeStatus)
		protected.GET("/:id/dislike", engagementController.GetDislikeStatus)

		protected.POST("/:id/comments", engagementController.AddComment)
		protected.DELETE("/:id/comments/:commentId", engagementController.DeleteComment)
	}
}
