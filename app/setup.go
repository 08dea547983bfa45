package app

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/surveysavvy/surveysavvy/api"
	"github.com/surveysavvy/surveysavvy/config"
	"github.com/surveysavvy/surveysavvy/database"
	"github.com/surveysavvy/surveysavvy/router"
)

// SetupAndRunServer starts the read-only dashboard over an existing survey
// database. Blocks until the server exits.
func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to initialize database tables: %w", err)
	}

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store.GetDB())

	// Get the PORT & Start the Server
	return server.Run()
}
