package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/wander-log/api-go/cache"
	"github.com/wander-log/api-go/config"
	"github.com/wander-log/api-go/countryapi"
	"github.com/wander-log/api-go/routes"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db := config.InitDB()

	// Country enrichment client, with an optional redis cache in front
	countryClient := countryapi.NewFromEnv(cache.NewFromEnv())

	// Create a new Gin router
	r := gin.Default()

	// Initialize routes
	routes.SetupRoutes(r, db, countryClient)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting journal API on port %s", port)
	r.Run(":" + port)
}
