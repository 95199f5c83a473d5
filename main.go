package main

import (
	"log"
	"os"

	"github.com/samer29/vascare-sub001/Controllers"
	"github.com/samer29/vascare-sub001/CronJobs"
	"github.com/samer29/vascare-sub001/Models"
	"github.com/samer29/vascare-sub001/Routes"
	"github.com/samer29/vascare-sub001/Utils/Token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// The signing secret is a startup invariant: refuse to serve without it.
	if err := Token.Setup(); err != nil {
		log.Fatal("token setup:", err)
	}

	db, err := Models.Connect()
	if err != nil {
		log.Fatal("Cannot connect to database: ", err)
	}

	if err := os.MkdirAll(Controllers.ExportDir, os.ModePerm); err != nil {
		log.Fatal("Cannot create export directory: ", err)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	api := Controllers.New(db)
	Routes.ConfigRoutes(router, api, db)

	maintenance := CronJobs.NewMaintenance(db, Controllers.ExportDir)
	maintenance.Start()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	router.Run(":" + port)
}
