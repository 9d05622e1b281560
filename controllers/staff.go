package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salonworks/salon-api/utils"
)

// ListStaff godoc
// @Summary List all staff members
// @Description List all staff members
// @Tags staff
// @Accept json
// @Produce json
// @Success 200 {array} models.Staff
// @Failure 500 {object} utils.ErrorResponse
// @Router /staff [get]
func ListStaff(c *fiber.Ctx) error {
	staff, err := staffStore.ListStaff(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch staff",
			Error:   err.Error(),
		})
	}
	return c.JSON(staff)
}

// GetStaffAvailabilityConfig returns a staff member's weekly availability.
// Editing it belongs to salon administration, not to scheduling.
func GetStaffAvailabilityConfig(c *fiber.Ctx) error {
	staffID, err := c.ParamsInt("id")
	if err != nil || staffID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid staff id",
		})
	}

	staff, err := staffStore.GetStaff(c.Context(), uint(staffID))
	if err != nil {
		return respondSchedulerError(c, err)
	}

	return c.JSON(fiber.Map{
		"staff_id":     staff.ID,
		"name":         staff.Name,
		"position":     staff.Position,
		"availability": staff.Availability,
		"configured":   staff.Availability.IsConfigured(),
	})
}
