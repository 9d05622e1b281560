package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/salonworks/salon-api/db"
	"github.com/salonworks/salon-api/models"
	"github.com/salonworks/salon-api/schedule"
	"github.com/salonworks/salon-api/utils"
)

// GetPendingAppointments godoc
// @Summary Get unassigned pending appointments
// @Description Get unassigned pending appointments
// @Tags appointments
// @Accept json
// @Produce json
// @Success 200 {array} models.Appointment
// @Failure 500 {object} utils.ErrorResponse
// @Router /appointments/pending [get]
func GetPendingAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	err := db.DB.Preload("Service").
		Where("status = ?", models.StatusPending).
		Order("date asc, time asc").
		Find(&appointments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch pending appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment godoc
// @Summary Get an appointment by ID
// @Description Get an appointment by ID
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Router /appointments/{id} [get]
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Staff").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreateAppointment godoc
// @Summary Create a new pending appointment
// @Description Create a new pending appointment with no staff assigned yet
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body models.Appointment true "Appointment"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /appointments [post]
func CreateAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	// Reject malformed date/time up front instead of persisting garbage.
	day, err := schedule.DateKey(appointment.Date)
	if err != nil {
		return respondSchedulerError(c, err)
	}
	if _, err := schedule.ToMinutes(appointment.Time); err != nil {
		return respondSchedulerError(c, err)
	}
	appointment.Date = day

	// Duration comes from the service, falling back to the default length.
	var service models.Service
	if err := db.DB.First(&service, appointment.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
			Error:   err.Error(),
		})
	}
	if appointment.DurationMinutes <= 0 {
		appointment.DurationMinutes = service.BookingDuration()
	}

	// Assignment decides staff later; booking never binds anyone.
	appointment.StaffID = nil
	appointment.Status = models.StatusPending

	if err := db.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// UpdateAppointmentStatus godoc
// @Summary Advance an appointment through its lifecycle
// @Description Advance an appointment through its lifecycle (in_progress, completed, canceled)
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /appointments/{id}/status [post]
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if body.Status == models.StatusConfirmed {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Confirmation happens through staff assignment",
		})
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Staff").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	staffID := appointment.StaffID
	wasOccupying := appointment.Status.Occupies()

	if err := appointment.UpdateStatus(db.DB, body.Status); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "This appointment was already processed",
			Error:   err.Error(),
		})
	}

	// Freeing a previously occupied window changes the calendar.
	if wasOccupying && !appointment.Status.Occupies() && staffID != nil {
		schedulerSvc.InvalidateDay(c.Context(), *staffID, appointment.Date)
	}

	log.Info().
		Uint("appointment_id", appointment.ID).
		Str("status", string(appointment.Status)).
		Msg("appointment status updated")

	return c.JSON(appointment)
}

// sendAssignmentEmail notifies the customer that their appointment is
// confirmed with a named staff member.
func sendAssignmentEmail(appointment *models.Appointment) error {
	if appointment.CustomerEmail == "" {
		return nil
	}

	staffName := "our team"
	if appointment.Staff != nil {
		staffName = appointment.Staff.Name
	}

	subject := fmt.Sprintf("Appointment Confirmed - %s", appointment.Service.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been confirmed.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>With:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Your Salon Team</p>
	`, appointment.CustomerName, appointment.Service.Name, staffName,
		appointment.Date, appointment.Time)

	return utils.SendEmail(appointment.CustomerEmail, subject, body)
}
