package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/salonworks/salon-api/db"
	"github.com/salonworks/salon-api/models"
	"github.com/salonworks/salon-api/utils"
)

// AssignStaff godoc
// @Summary Assign a staff member to a pending appointment
// @Description Atomically bind a staff member to a pending appointment and confirm it
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param body body object true "Staff assignment"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /appointments/{id}/assign [post]
func AssignStaff(c *fiber.Ctx) error {
	appointmentID, err := c.ParamsInt("id")
	if err != nil || appointmentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment id",
		})
	}

	var body struct {
		StaffID uint `json:"staff_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if body.StaffID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "staff_id is required",
		})
	}

	appointment, err := schedulerSvc.AssignStaff(c.Context(), uint(appointmentID), body.StaffID)
	if err != nil {
		return respondSchedulerError(c, err)
	}

	// Reload with associations for the response and the confirmation mail.
	if err := db.DB.Preload("Service").Preload("Staff").First(appointment, appointment.ID).Error; err == nil {
		notify := *appointment
		go func(a models.Appointment) {
			if err := sendAssignmentEmail(&a); err != nil {
				log.Error().Err(err).Uint("appointment_id", a.ID).Msg("Failed to send confirmation email")
			}
		}(notify)
	}

	return c.JSON(appointment)
}
