package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/wander-log/api-go/config"
	"github.com/wander-log/api-go/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// The microservice only persists service API keys.
	db := config.InitKeysDB()

	r := gin.Default()

	routes.SetupCountryRoutes(r, db)

	port := os.Getenv("COUNTRY_PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("Starting country proxy on port %s", port)
	r.Run(":" + port)
}
