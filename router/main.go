package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/surveysavvy/surveysavvy/handlers"
	dashboard_handlers "github.com/surveysavvy/surveysavvy/handlers/dashboard"
	"gorm.io/gorm"
)

// SetupRoutes wires the dashboard's read-only endpoints.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	dashboardHandler := dashboard_handlers.NewDashboardHandler(db)

	app.Get("/health", handlers.HandleCheckHealth)

	v1 := app.Group("/api/v1")
	v1.Get("/overview", dashboardHandler.GetOverview)
	v1.Get("/units", dashboardHandler.ListUnits)
	v1.Get("/units/:code", dashboardHandler.GetUnit)
	v1.Get("/sentiment", dashboardHandler.GetSentiment)
	v1.Get("/imports", dashboardHandler.ListImports)
}
