package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/naruerongk-png/inventory/cmd"
	"github.com/naruerongk-png/inventory/internal/core/container"
	"github.com/naruerongk-png/inventory/internal/core/logger"
	"github.com/naruerongk-png/inventory/internal/core/routes"
	"github.com/naruerongk-png/inventory/internal/database"
	"github.com/naruerongk-png/inventory/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Do not overwrite system environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "inventory.db"
	}

	db, err := database.NewSQLiteConnection(dbPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	log.Println("Connected to the database successfully!")

	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	appContainer := container.NewAppContainer(db, zapLogger)

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.TimeoutMiddleware(60 * time.Second))

	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)
	routes.RegisterUtilityRoutes(router)

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		panic(err)
	}
}
