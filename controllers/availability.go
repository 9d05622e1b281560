package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/salonworks/salon-api/utils"
)

// GetAvailability godoc
// @Summary Get classified time slots for a set of staff over a date range
// @Description Get classified time slots for a set of staff over a date range
// @Tags schedule
// @Accept json
// @Produce json
// @Param staff_ids query string true "Comma separated staff IDs"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /schedule/availability [get]
func GetAvailability(c *fiber.Ctx) error {
	staffIDs, err := parseStaffIDs(c.Query("staff_ids"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid staff_ids parameter",
			Error:   err.Error(),
		})
	}

	from := c.Query("from")
	to := c.Query("to", from)
	if from == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing from parameter",
		})
	}

	availability, err := schedulerSvc.GetAvailability(c.Context(), staffIDs, from, to)
	if err != nil {
		return respondSchedulerError(c, err)
	}

	return c.JSON(fiber.Map{
		"staff": availability,
		"from":  from,
		"to":    to,
	})
}

// GetStaffDaySlots returns classified slots for one staff member on one date
func GetStaffDaySlots(c *fiber.Ctx) error {
	staffID, err := c.ParamsInt("id")
	if err != nil || staffID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid staff id",
		})
	}

	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing date parameter",
		})
	}

	slots, err := schedulerSvc.StaffDaySlots(c.Context(), uint(staffID), date)
	if err != nil {
		return respondSchedulerError(c, err)
	}

	return c.JSON(fiber.Map{
		"staff_id": staffID,
		"date":     date,
		"slots":    slots,
	})
}

func parseStaffIDs(raw string) ([]uint, error) {
	if raw == "" {
		return nil, strconv.ErrSyntax
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
