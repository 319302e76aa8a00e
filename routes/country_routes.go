package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/controllers"
	"github.com/wander-log/api-go/middleware"
	"gorm.io/gorm"
)

// SetupCountryRoutes wires the country proxy microservice: the proxy
// endpoints behind the service API key, key management behind the admin
// token.
func SetupCountryRoutes(r *gin.Engine, db *gorm.DB) {
	countriesController := controllers.NewCountriesController()
	apiKeyController := controllers.NewAPIKeyController(db)

	api := r.Group("/api")

	countries := api.Group("/countries")
	countries.Use(middleware.APIKeyMiddleware(db))
	{
		countries.GET("", countriesController.GetAllCountries)
		countries.GET("/name/:name", countriesController.GetCountryByName)
		countries.GET("/region/:region", countriesController.GetCountriesByRegion)
		countries.GET("/cca3/:cca3", countriesController.GetCountryByCca3)
	}

	keys := api.Group("/keys")
	keys.Use(middleware.AdminTokenMiddleware())
	{
		keys.POST("", apiKeyController.CreateKey)
		keys.GET("", apiKeyController.ListKeys)
		keys.DELETE("/:id", apiKeyController.RevokeKey)
	}
}
