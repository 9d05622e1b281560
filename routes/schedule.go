package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salonworks/salon-api/controllers"
)

// SetupScheduleRoutes configures availability query and staff routes
func SetupScheduleRoutes(app *fiber.App) {
	schedule := app.Group("/schedule")
	schedule.Get("/availability", controllers.GetAvailability)
	schedule.Get("/staff/:id/slots", controllers.GetStaffDaySlots)

	staff := app.Group("/staff")
	staff.Get("/", controllers.ListStaff)
	staff.Get("/:id/availability", controllers.GetStaffAvailabilityConfig)
	staff.Get("/:id/blocks", controllers.ListManualBlocks)
	staff.Post("/:id/blocks", controllers.CreateManualBlock)
	staff.Delete("/:id/blocks/:blockId", controllers.DeleteManualBlock)
}
