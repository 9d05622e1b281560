package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salonworks/salon-api/controllers"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Get("/pending", controllers.GetPendingAppointments)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Post("/", controllers.CreateAppointment)
	appointment.Post("/:id/assign", controllers.AssignStaff)
	appointment.Post("/:id/status", controllers.UpdateAppointmentStatus)
}
